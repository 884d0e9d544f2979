// Package sed: forward dynamic programs for the general and unit-cost
// sequence edit distances.
package sed

import (
	"fmt"

	"github.com/katalvlaran/edist/align"
)

// forward fills the suffix-indexed DP table for inputs of lengths m and n.
// The table is row-major with stride n+1; cell (i,j) holds the cheapest
// cost of aligning x[i:] with y[j:]. Every kernel result is validated.
func forward[T any](x, y []T, delta align.Delta[T]) ([]float64, error) {
	m, n := len(x), len(y)
	stride := n + 1
	d := make([]float64, (m+1)*stride)

	// Gap boundaries: align a suffix against the empty sequence.
	var i, j int
	var c float64
	for i = m - 1; i >= 0; i-- {
		if c = delta(&x[i], nil); !validCost(c) {
			return nil, fmt.Errorf("sed: delta(x[%d], -) = %g: %w", i, c, align.ErrInvalidCost)
		}
		d[i*stride+n] = d[(i+1)*stride+n] + c
	}
	for j = n - 1; j >= 0; j-- {
		if c = delta(nil, &y[j]); !validCost(c) {
			return nil, fmt.Errorf("sed: delta(-, y[%d]) = %g: %w", j, c, align.ErrInvalidCost)
		}
		d[m*stride+j] = d[m*stride+j+1] + c
	}

	// Interior: three-way minimum over replacement, deletion, insertion.
	var rep, del, ins, best float64
	for i = m - 1; i >= 0; i-- {
		for j = n - 1; j >= 0; j-- {
			if c = delta(&x[i], &y[j]); !validCost(c) {
				return nil, fmt.Errorf("sed: delta(x[%d], y[%d]) = %g: %w", i, j, c, align.ErrInvalidCost)
			}
			rep = c + d[(i+1)*stride+j+1]
			if c = delta(&x[i], nil); !validCost(c) {
				return nil, fmt.Errorf("sed: delta(x[%d], -) = %g: %w", i, c, align.ErrInvalidCost)
			}
			del = c + d[(i+1)*stride+j]
			if c = delta(nil, &y[j]); !validCost(c) {
				return nil, fmt.Errorf("sed: delta(-, y[%d]) = %g: %w", j, c, align.ErrInvalidCost)
			}
			ins = c + d[i*stride+j+1]

			best = rep
			if del < best {
				best = del
			}
			if ins < best {
				best = ins
			}
			d[i*stride+j] = best
		}
	}

	return d, nil
}

// SED computes the edit distance between x and y under the cost kernel
// delta.
// Complexity: O(m·n) time and memory, O(m·n) kernel invocations.
func SED[T any](x, y []T, delta align.Delta[T]) (float64, error) {
	d, err := forward(x, y, delta)
	if err != nil {
		return 0, err
	}

	return d[0], nil
}

// StandardSED computes the unit-cost edit distance with pure integer
// arithmetic and a rolling row, avoiding kernel calls entirely.
// Equals SED(x, y, align.Kron) for every input.
// Complexity: O(m·n) time, O(n) memory.
func StandardSED[T comparable](x, y []T) int {
	m, n := len(x), len(y)
	row := make([]int, n+1)
	// Boundary row m: align the empty left suffix against y[j:].
	for j := n; j >= 0; j-- {
		row[j] = n - j
	}

	var diag, saved, best int
	for i := m - 1; i >= 0; i-- {
		diag = row[n] // d[i+1][n] before overwrite
		row[n] = m - i
		for j := n - 1; j >= 0; j-- {
			saved = row[j] // d[i+1][j]
			best = diag    // replacement path d[i+1][j+1]
			if x[i] != y[j] {
				best++
			}
			if c := saved + 1; c < best { // deletion
				best = c
			}
			if c := row[j+1] + 1; c < best { // insertion
				best = c
			}
			row[j] = best
			diag = saved
		}
	}

	return row[0]
}

// SEDString computes the unit-cost edit distance between two strings at
// rune granularity.
func SEDString(x, y string) int {
	return StandardSED([]rune(x), []rune(y))
}
