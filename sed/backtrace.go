// Package sed: deterministic, stochastic and matrix backtracing over the
// sequence edit distance table.
package sed

import (
	"math/rand"

	"github.com/katalvlaran/edist/align"
)

// Backtrace returns one optimal alignment of x onto y. Ties are broken in
// the fixed order replacement, deletion, insertion.
// Complexity: O(m·n) for the forward pass, O(m+n) for the walk.
func Backtrace[T any](x, y []T, delta align.Delta[T]) (align.Alignment, error) {
	d, err := forward(x, y, delta)
	if err != nil {
		return nil, err
	}
	m, n := len(x), len(y)
	stride := n + 1

	var ali align.Alignment
	i, j := 0, 0
	for i < m || j < n {
		cur := d[i*stride+j]
		switch {
		case i < m && j < n && almostEqual(cur, delta(&x[i], &y[j])+d[(i+1)*stride+j+1]):
			ali.Append(i, j)
			i++
			j++
		case i < m && almostEqual(cur, delta(&x[i], nil)+d[(i+1)*stride+j]):
			ali.Append(i, align.Gap)
			i++
		case j < n && almostEqual(cur, delta(nil, &y[j])+d[i*stride+j+1]):
			ali.Append(align.Gap, j)
			j++
		default:
			return nil, ErrIncompletePath
		}
	}

	return ali, nil
}

// backward fills the co-optimal completion counts: b[i][j] is the number of
// co-optimal alignments of x[i:] with y[j:]. Counts are float64 so long
// inputs do not overflow.
func backward[T any](x, y []T, delta align.Delta[T], d []float64) []float64 {
	m, n := len(x), len(y)
	stride := n + 1
	b := make([]float64, (m+1)*stride)
	b[m*stride+n] = 1

	var cnt float64
	for i := m; i >= 0; i-- {
		for j := n; j >= 0; j-- {
			if i == m && j == n {
				continue
			}
			cnt = 0
			cur := d[i*stride+j]
			if i < m && j < n && almostEqual(cur, delta(&x[i], &y[j])+d[(i+1)*stride+j+1]) {
				cnt += b[(i+1)*stride+j+1]
			}
			if i < m && almostEqual(cur, delta(&x[i], nil)+d[(i+1)*stride+j]) {
				cnt += b[(i+1)*stride+j]
			}
			if j < n && almostEqual(cur, delta(nil, &y[j])+d[i*stride+j+1]) {
				cnt += b[i*stride+j+1]
			}
			b[i*stride+j] = cnt
		}
	}

	return b
}

// BacktraceStochastic draws one co-optimal alignment uniformly at random.
// At every cell the co-optimal options are weighted by their backward
// completion counts, which makes whole alignments equiprobable; rng == nil
// uses the shared global source.
// Complexity: O(m·n) time and memory.
func BacktraceStochastic[T any](x, y []T, delta align.Delta[T], rng *rand.Rand) (align.Alignment, error) {
	d, err := forward(x, y, delta)
	if err != nil {
		return nil, err
	}
	b := backward(x, y, delta, d)
	m, n := len(x), len(y)
	stride := n + 1

	var ali align.Alignment
	weights := make([]float64, 3)
	i, j := 0, 0
	for i < m || j < n {
		cur := d[i*stride+j]
		weights[0], weights[1], weights[2] = 0, 0, 0
		if i < m && j < n && almostEqual(cur, delta(&x[i], &y[j])+d[(i+1)*stride+j+1]) {
			weights[0] = b[(i+1)*stride+j+1]
		}
		if i < m && almostEqual(cur, delta(&x[i], nil)+d[(i+1)*stride+j]) {
			weights[1] = b[(i+1)*stride+j]
		}
		if j < n && almostEqual(cur, delta(nil, &y[j])+d[i*stride+j+1]) {
			weights[2] = b[i*stride+j+1]
		}
		if weights[0] == 0 && weights[1] == 0 && weights[2] == 0 {
			return nil, ErrIncompletePath
		}
		switch drawWeighted(rng, weights) {
		case 0:
			ali.Append(i, j)
			i++
			j++
		case 1:
			ali.Append(i, align.Gap)
			i++
		default:
			ali.Append(align.Gap, j)
			j++
		}
	}

	return ali, nil
}

// BacktraceMatrix summarizes all co-optimal alignments of x onto y.
// It returns:
//
//   - P — an (m+1)×(n+1) matrix; P[i][j] is the probability that a
//     uniformly drawn co-optimal alignment aligns x[i] with y[j]; the last
//     column holds deletion mass and the last row insertion mass, so every
//     row of P[:m] and every column of P[:][:n] sums to 1
//   - K — the m×n per-cell co-optimal counts, P[:m][:n] = K/k
//   - k — the total number of co-optimal alignments
//
// Counts are reported as float64 to avoid overflow on long inputs.
// Complexity: O(m·n) time and memory.
func BacktraceMatrix[T any](x, y []T, delta align.Delta[T]) (P, K [][]float64, k float64, err error) {
	d, err := forward(x, y, delta)
	if err != nil {
		return nil, nil, 0, err
	}
	b := backward(x, y, delta, d)
	m, n := len(x), len(y)
	stride := n + 1
	k = b[0]

	// Forward counts: f[i][j] co-optimal prefixes from (0,0) to (i,j).
	f := make([]float64, (m+1)*stride)
	f[0] = 1

	K = make([][]float64, m)
	for i := range K {
		K[i] = make([]float64, n)
	}
	delCount := make([]float64, m)
	insCount := make([]float64, n)

	for i := 0; i <= m; i++ {
		for j := 0; j <= n; j++ {
			fij := f[i*stride+j]
			if fij == 0 {
				continue
			}
			cur := d[i*stride+j]
			if i < m && j < n && almostEqual(cur, delta(&x[i], &y[j])+d[(i+1)*stride+j+1]) {
				K[i][j] += fij * b[(i+1)*stride+j+1]
				f[(i+1)*stride+j+1] += fij
			}
			if i < m && almostEqual(cur, delta(&x[i], nil)+d[(i+1)*stride+j]) {
				delCount[i] += fij * b[(i+1)*stride+j]
				f[(i+1)*stride+j] += fij
			}
			if j < n && almostEqual(cur, delta(nil, &y[j])+d[i*stride+j+1]) {
				insCount[j] += fij * b[i*stride+j+1]
				f[i*stride+j+1] += fij
			}
		}
	}

	P = make([][]float64, m+1)
	for i := 0; i <= m; i++ {
		P[i] = make([]float64, n+1)
	}
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			P[i][j] = K[i][j] / k
		}
		P[i][n] = delCount[i] / k
	}
	for j := 0; j < n; j++ {
		P[m][j] = insCount[j] / k
	}

	return P, K, k, nil
}

// StandardBacktrace is Backtrace under the unit cost kernel.
func StandardBacktrace[T comparable](x, y []T) (align.Alignment, error) {
	return Backtrace(x, y, align.Kron[T])
}

// StandardBacktraceStochastic is BacktraceStochastic under the unit cost
// kernel.
func StandardBacktraceStochastic[T comparable](x, y []T, rng *rand.Rand) (align.Alignment, error) {
	return BacktraceStochastic(x, y, align.Kron[T], rng)
}

// StandardBacktraceMatrix is BacktraceMatrix under the unit cost kernel.
func StandardBacktraceMatrix[T comparable](x, y []T) (P, K [][]float64, k float64, err error) {
	return BacktraceMatrix(x, y, align.Kron[T])
}
