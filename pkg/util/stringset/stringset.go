// Package stringset implements Set operations on strings.
package stringset

import "sort"

// Set provides operations like difference and sorted listing on Sets with strings.
type Set map[string]struct{}

// New creates a set with a elements.
func New(a ...string) Set {
	r := make(Set)
	for _, i := range a {
		r.Add(i)
	}
	return r
}

// Add adds s to the receiver.
// Returns false if s is already in the receiver.
func (set Set) Add(s string) bool {
	_, found := set[s]
	set[s] = struct{}{}
	return !found
}

// Contains returns true if s is in the receiver.
func (set Set) Contains(s string) bool {
	_, found := set[s]
	return found
}

// Difference returns a set with items in the receiver that are not in other.
func (set Set) Difference(other Set) Set {
	r := New()
	for elem := range set {
		if !other.Contains(elem) {
			r.Add(elem)
		}
	}
	return r
}

// Cardinality returns how many items are currently in the set.
func (set Set) Cardinality() int {
	return len(set)
}

// Sorted returns the elements of the receiver as a sorted slice.
// An empty set returns an empty (non-nil) slice.
func (set Set) Sorted() []string {
	r := make([]string, 0, len(set))
	for v := range set {
		r = append(r, v)
	}
	sort.Strings(r)
	return r
}
