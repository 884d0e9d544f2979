// Package seted: set edit distance via one rectangular assignment.
package seted

import (
	"fmt"
	"math"

	"github.com/katalvlaran/edist/align"
	"github.com/katalvlaran/edist/munkres"
)

// costMatrix embeds the set edit problem into a square assignment matrix.
// Every kernel result is validated.
func costMatrix[T any](x, y []T, delta align.Delta[T]) ([][]float64, error) {
	m, n := len(x), len(y)
	size := m + n
	inf := math.Inf(1)
	C := make([][]float64, size)
	for r := range C {
		C[r] = make([]float64, size)
	}

	var c float64
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			if c = delta(&x[i], &y[j]); !(c >= 0) {
				return nil, fmt.Errorf("seted: delta(x[%d], y[%d]) = %g: %w", i, j, c, align.ErrInvalidCost)
			}
			C[i][j] = c
		}
		if c = delta(&x[i], nil); !(c >= 0) {
			return nil, fmt.Errorf("seted: delta(x[%d], -) = %g: %w", i, c, align.ErrInvalidCost)
		}
		for i2 := 0; i2 < m; i2++ {
			if i2 == i {
				C[i][n+i2] = c
			} else {
				C[i][n+i2] = inf
			}
		}
	}
	for j := 0; j < n; j++ {
		if c = delta(nil, &y[j]); !(c >= 0) {
			return nil, fmt.Errorf("seted: delta(-, y[%d]) = %g: %w", j, c, align.ErrInvalidCost)
		}
		for j2 := 0; j2 < n; j2++ {
			if j2 == j {
				C[m+j2][j] = c
			} else {
				C[m+j2][j] = inf
			}
		}
	}

	return C, nil
}

// resolveDelta substitutes the unit kernel for a nil delta.
func resolveDelta[T comparable](delta align.Delta[T]) align.Delta[T] {
	if delta == nil {
		return align.Kron[T]
	}

	return delta
}

// SetED computes the set edit distance between x and y. A nil delta means
// the unit cost kernel.
// Complexity: O((m+n)³) time, O((m+n)²) memory.
func SetED[T comparable](x, y []T, delta align.Delta[T]) (float64, error) {
	if len(x) == 0 && len(y) == 0 {
		return 0, nil
	}
	C, err := costMatrix(x, y, resolveDelta(delta))
	if err != nil {
		return 0, err
	}
	pi, err := munkres.Munkres(C)
	if err != nil {
		return 0, err
	}
	var total float64
	for r, c := range pi {
		total += C[r][c]
	}

	return total, nil
}

// Backtrace returns one optimal order-free alignment: matched pairs and
// deletions in left order, then insertions in right order.
func Backtrace[T comparable](x, y []T, delta align.Delta[T]) (align.Alignment, error) {
	var ali align.Alignment
	m, n := len(x), len(y)
	if m == 0 && n == 0 {
		return ali, nil
	}
	C, err := costMatrix(x, y, resolveDelta(delta))
	if err != nil {
		return nil, err
	}
	pi, err := munkres.Munkres(C)
	if err != nil {
		return nil, err
	}

	for i := 0; i < m; i++ {
		if pi[i] < n {
			ali.Append(i, pi[i])
			continue
		}
		ali.Append(i, align.Gap)
	}
	rowOf := make([]int, m+n)
	for r, c := range pi {
		rowOf[c] = r
	}
	for j := 0; j < n; j++ {
		if rowOf[j] >= m {
			ali.Append(align.Gap, j)
		}
	}

	return ali, nil
}
