// Package texttable writes column aligned text tables.
package texttable

import (
	"io"
	"strings"
)

// Table is a header with rows of cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// New returns a table with header.
func New(header ...string) *Table {
	return &Table{Header: header}
}

// Append adds a row.
// Missing cells are empty, extra cells are ignored.
func (t *Table) Append(cells ...string) {
	row := make([]string, len(t.Header))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// RowCnt returns the number of rows.
func (t *Table) RowCnt() int {
	return len(t.Rows)
}

// Write writes a table formatted as text.
//
//	colSep is the columns separator string.
//	hdr includes a header.
//
// The last column isn't padded.
func Write(table *Table, colSep string, hdr bool, output io.Writer) error {
	w := colWidth(table)

	if hdr {
		err := writeRow(output, table.Header, w, colSep)
		if err != nil {
			return err
		}
	}
	for _, row := range table.Rows {
		err := writeRow(output, row, w, colSep)
		if err != nil {
			return err
		}
	}
	return nil
}

func writeRow(output io.Writer, row []string, width []int, colSep string) error {
	var sb strings.Builder
	last := len(row) - 1
	for i, s := range row {
		sb.WriteString(s)
		if i < last {
			sb.WriteString(strings.Repeat(" ", width[i]-len(s)))
			sb.WriteString(colSep)
		}
	}
	sb.WriteString("\n")
	_, err := io.WriteString(output, sb.String())
	return err
}

func colWidth(table *Table) []int {
	result := make([]int, len(table.Header))
	for ci, h := range table.Header {
		w := len(h)
		for _, r := range table.Rows {
			if len(r[ci]) > w {
				w = len(r[ci])
			}
		}
		result[ci] = w
	}
	return result
}
