package yamlx

import (
	"fmt"
	"time"
)

// Lookup returns the value at path.
// It returns false when a path element doesn't exist or isn't a mapping.
func Lookup(v Value, path ...string) (Value, bool) {
	for _, k := range path {
		m, ok := v.(*Mapping)
		if !ok {
			return nil, false
		}
		v, ok = m.Get(k)
		if !ok {
			return nil, false
		}
	}
	return v, true
}

// String returns the scalar at path as a string.
// Null, missing and non-scalar values return "".
func String(v Value, path ...string) string {
	x, ok := Lookup(v, path...)
	if !ok {
		return ""
	}
	s, ok := x.(Scalar)
	if !ok || s.V == nil {
		return ""
	}
	switch t := s.V.(type) {
	case string:
		return t
	case time.Time:
		return t.Format(time.RFC3339)
	}
	return fmt.Sprint(s.V)
}

// SetPath sets the value at path creating intermediate mappings as needed.
// A non-mapping value on the way is replaced by a mapping.
func SetPath(m *Mapping, v Value, path ...string) {
	if len(path) == 0 {
		return
	}
	for _, k := range path[:len(path)-1] {
		x, _ := m.Get(k)
		next, ok := x.(*Mapping)
		if !ok || next == nil {
			next = NewMapping()
			m.Set(k, next)
		}
		m = next
	}
	m.Set(path[len(path)-1], v)
}

// Strings returns the sequence at path as strings.
// A missing or non-sequence value returns nil.
func Strings(v Value, path ...string) []string {
	x, ok := Lookup(v, path...)
	if !ok {
		return nil
	}
	s, ok := x.(Sequence)
	if !ok {
		return nil
	}
	r := make([]string, 0, len(s))
	for _, e := range s {
		r = append(r, String(e))
	}
	return r
}
