package tool

import (
	"fmt"
	"io"
	"strconv"

	"github.com/mmlt/cadence-setup/pkg/util/texttable"
)

// Artifact is a generated file.
type artifact struct {
	// Name is the file name in the output directory.
	name string
	// Origin is the template the file is rendered from, if any.
	origin string
	// Content of the file.
	content []byte
	// ID is an unique number to track artifacts.
	id int
}

func (a artifact) fprint(w io.Writer) {
	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "##%02d: %s %s\n", a.id, a.name, a.origin)
	fmt.Fprintln(w, string(a.content))
}

type artifacts struct {
	items []artifact
	count int
}

// Add add a new artifact to the list.
func (arts *artifacts) Add(a *artifact) {
	arts.count++
	a.id = arts.count
	arts.items = append(arts.items, *a)
}

func (arts *artifacts) fprint(w io.Writer) {
	for _, a := range arts.items {
		a.fprint(w)
	}
}

// Report writes a table with the artifacts to w.
func (arts *artifacts) report(w io.Writer) error {
	tb := texttable.New("FILE", "BYTES", "TEMPLATE")
	for _, a := range arts.items {
		tb.Append(a.name, strconv.Itoa(len(a.content)), a.origin)
	}
	return texttable.Write(tb, "   ", true, w)
}
