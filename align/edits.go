// Package align: edit-script primitives and alignment-to-script conversion.
package align

import (
	"fmt"
	"sort"
)

// Edit is one primitive list edit. Apply returns a fresh slice and never
// mutates its input.
type Edit[T any] interface {
	Apply(lst []T) []T
}

// Replacement overwrites the label at Index.
type Replacement[T any] struct {
	Index int
	Label T
}

// Apply returns a copy of lst with lst[Index] replaced by Label.
func (e Replacement[T]) Apply(lst []T) []T {
	out := make([]T, len(lst))
	copy(out, lst)
	out[e.Index] = e.Label

	return out
}

// Deletion removes the element at Index.
type Deletion[T any] struct {
	Index int
}

// Apply returns a copy of lst with lst[Index] removed.
func (e Deletion[T]) Apply(lst []T) []T {
	out := make([]T, 0, len(lst)-1)
	out = append(out, lst[:e.Index]...)
	out = append(out, lst[e.Index+1:]...)

	return out
}

// Insertion inserts Label at Index, shifting the suffix right.
type Insertion[T any] struct {
	Index int
	Label T
}

// Apply returns a copy of lst with Label inserted at Index.
func (e Insertion[T]) Apply(lst []T) []T {
	out := make([]T, 0, len(lst)+1)
	out = append(out, lst[:e.Index]...)
	out = append(out, e.Label)
	out = append(out, lst[e.Index:]...)

	return out
}

// Script is an ordered list of edits. Indices are coherent only in the
// order given; Apply runs the edits front to back.
type Script[T any] []Edit[T]

// Apply runs every edit in order on a working copy of lst.
// Complexity: O(len(s) · len(lst)).
func (s Script[T]) Apply(lst []T) []T {
	out := lst
	for _, e := range s {
		out = e.Apply(out)
	}

	return out
}

// ToScript converts an alignment of x onto y into a script such that
// script.Apply(x) equals y. Replacements (only where labels differ) come
// first on original x indices, then deletions in decreasing index, then
// insertions in increasing y index — the two gap groups keep each other's
// indices stable in that order.
func ToScript[T comparable](a Alignment, x, y []T) (Script[T], error) {
	if err := a.Validate(len(x), len(y)); err != nil {
		return nil, fmt.Errorf("align: ToScript: %w", err)
	}

	var script Script[T]
	var deletions []int
	var insertions []Insertion[T]
	for _, t := range a {
		switch {
		case t.Left >= 0 && t.Right >= 0:
			if x[t.Left] != y[t.Right] {
				script = append(script, Replacement[T]{Index: t.Left, Label: y[t.Right]})
			}
		case t.Left >= 0:
			deletions = append(deletions, t.Left)
		default:
			insertions = append(insertions, Insertion[T]{Index: t.Right, Label: y[t.Right]})
		}
	}

	// Deletions in decreasing index so earlier removals do not shift later ones.
	sort.Sort(sort.Reverse(sort.IntSlice(deletions)))
	for _, i := range deletions {
		script = append(script, Deletion[T]{Index: i})
	}
	// Insertions in increasing target index; after all deletions the list is a
	// subsequence of y, so y indices land directly.
	sort.Slice(insertions, func(i, j int) bool { return insertions[i].Index < insertions[j].Index })
	for _, ins := range insertions {
		script = append(script, ins)
	}

	return script, nil
}
