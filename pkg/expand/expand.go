// Package expand substitutes @@@NAME@@@ placeholders in a template text.
package expand

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"text/template"
)

// ErrMissingPlaceholder is matched by errors.Is for a placeholder without value.
var ErrMissingPlaceholder = errors.New("missing placeholder value")

// MissingError reports a placeholder that has no value.
type MissingError struct {
	// Template is the name of the template text.
	Template string
	// Name of the placeholder.
	Name string
	// Line is the 1-based line of the placeholder.
	Line int
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("%s:%d: %s: %s", e.Template, e.Line, ErrMissingPlaceholder, e.Name)
}

// Is makes errors.Is(err, ErrMissingPlaceholder) work.
func (e *MissingError) Is(target error) bool {
	return target == ErrMissingPlaceholder
}

// Placeholder matches @@@NAME@@@ and @@@NAME | pipeline@@@.
// A pipeline ends at the first @@@ on the same line.
var placeholder = regexp.MustCompile(`@@@([A-Z_][A-Z0-9_]*)((?:\s*\|.*?)?)@@@`)

// Run expands text by replacing each placeholder with its value from vars and returns the result.
// Name identifies text in errors.
//
// A placeholder is @@@NAME@@@ where NAME is upper case letters, digits and underscores.
// The value can be piped through template functions, for example @@@TITLE | upper@@@.
// See https://golang.org/pkg/text/template/ and http://masterminds.github.io/sprig/
// Text outside placeholders is copied as-is.
// Placeholders without value result in a MissingError.
func Run(name string, text []byte, vars map[string]string) ([]byte, error) {
	matches := placeholder.FindAllSubmatchIndex(text, -1)

	// check all values are present before producing output.
	for _, m := range matches {
		n := string(text[m[2]:m[3]])
		if _, ok := vars[n]; !ok {
			return nil, &MissingError{Template: name, Name: n, Line: lineOf(text, m[0])}
		}
	}

	functions := getDefaultFunctions()
	cache := map[string]*template.Template{}

	var out bytes.Buffer
	last := 0
	for _, m := range matches {
		out.Write(text[last:m[0]])
		last = m[1]

		n := string(text[m[2]:m[3]])
		pipe := strings.TrimSpace(string(text[m[4]:m[5]]))
		if pipe == "" {
			out.WriteString(vars[n])
			continue
		}

		expr := fmt.Sprintf("{{ index . %q %s }}", n, pipe)
		tmpl, ok := cache[expr]
		if !ok {
			var err error
			tmpl, err = template.New(name).Funcs(functions).Option("missingkey=error").Parse(expr)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: parse %s: %w", name, lineOf(text, m[0]), text[m[0]:m[1]], err)
			}
			cache[expr] = tmpl
		}
		err := tmpl.Execute(&out, vars)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: execute %s: %w", name, lineOf(text, m[0]), text[m[0]:m[1]], err)
		}
	}
	out.Write(text[last:])

	return out.Bytes(), nil
}

// Names returns the distinct placeholder names in text in order of appearance.
func Names(text []byte) []string {
	var r []string
	seen := map[string]bool{}
	for _, m := range placeholder.FindAllSubmatch(text, -1) {
		n := string(m[1])
		if !seen[n] {
			seen[n] = true
			r = append(r, n)
		}
	}
	return r
}

func lineOf(text []byte, offset int) int {
	return bytes.Count(text[:offset], []byte("\n")) + 1
}
