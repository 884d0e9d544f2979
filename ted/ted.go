// Package ted: keyroot decomposition helpers and the Zhang–Shasha forward
// dynamic program, in a generic δ-driven and an integer unit-cost variant.
package ted

import (
	"fmt"

	"github.com/katalvlaran/edist/align"
)

// OutermostRightLeaves returns, for every node, the index of its outermost
// right leaf descendant: the node itself for leaves, otherwise the
// outermost right leaf of its last child.
// Complexity: O(n).
func OutermostRightLeaves(adj [][]int) []int {
	orl := make([]int, len(adj))
	for i := len(adj) - 1; i >= 0; i-- {
		if len(adj[i]) == 0 {
			orl[i] = i
			continue
		}
		orl[i] = orl[adj[i][len(adj[i])-1]]
	}

	return orl
}

// Keyroots returns the Zhang–Shasha keyroots in descending order: every
// node whose outermost right leaf is not shared with any smaller index.
// Complexity: O(n).
func Keyroots(orl []int) []int {
	seen := make(map[int]bool, len(orl))
	var roots []int
	for i, o := range orl {
		if seen[o] {
			continue
		}
		seen[o] = true
		roots = append(roots, i)
	}
	// First occurrences were collected in ascending order; emit descending
	// so inner subtree pairs are processed before outer ones.
	for l, r := 0, len(roots)-1; l < r; l, r = l+1, r-1 {
		roots[l], roots[r] = roots[r], roots[l]
	}

	return roots
}

// engine holds the precomputed cost tables and the permanent subtree
// distance matrix for one tree pair. All kernel results are validated once
// during construction, so the DP and backtrace loops are pure arithmetic.
type engine struct {
	m, n       int
	orlX, orlY []int
	delc       []float64 // δ(x[i], -)
	insc       []float64 // δ(-, y[j])
	repc       []float64 // δ(x[i], y[j]), m×n row-major
	dist       []float64 // D[i][j] subtree distances, m×n row-major
}

// newEngine validates both trees, precomputes the cost tables and fills
// the subtree distance matrix by keyroot decomposition. Both trees must be
// non-empty; empty inputs are handled by the entry points.
func newEngine[T any](xNodes []T, xAdj [][]int, yNodes []T, yAdj [][]int, delta align.Delta[T]) (*engine, error) {
	m, n := len(xNodes), len(yNodes)
	e := &engine{
		m:    m,
		n:    n,
		orlX: OutermostRightLeaves(xAdj),
		orlY: OutermostRightLeaves(yAdj),
		delc: make([]float64, m),
		insc: make([]float64, n),
		repc: make([]float64, m*n),
		dist: make([]float64, m*n),
	}

	var c float64
	for i := 0; i < m; i++ {
		if c = delta(&xNodes[i], nil); !validCost(c) {
			return nil, fmt.Errorf("ted: delta(x[%d], -) = %g: %w", i, c, align.ErrInvalidCost)
		}
		e.delc[i] = c
	}
	for j := 0; j < n; j++ {
		if c = delta(nil, &yNodes[j]); !validCost(c) {
			return nil, fmt.Errorf("ted: delta(-, y[%d]) = %g: %w", j, c, align.ErrInvalidCost)
		}
		e.insc[j] = c
	}
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			if c = delta(&xNodes[i], &yNodes[j]); !validCost(c) {
				return nil, fmt.Errorf("ted: delta(x[%d], y[%d]) = %g: %w", i, j, c, align.ErrInvalidCost)
			}
			e.repc[i*n+j] = c
		}
	}

	// Keyroot pairs in descending order: inner subtree distances are ready
	// before any outer forest needs them.
	scratch := make([]float64, (m+1)*(n+1))
	for _, k1 := range Keyroots(e.orlX) {
		for _, k2 := range Keyroots(e.orlY) {
			e.forestPass(k1, k2, scratch)
		}
	}

	return e, nil
}

// forestPass fills the forest table for the subtree pair (k1, k2) into the
// (m+1)×(n+1) scratch slice and caches subtree distances for every cell
// where both forests are whole subtrees relative to the pair. The same
// pass serves the forward DP and the backtrace recomputations.
func (e *engine) forestPass(k1, k2 int, delta []float64) {
	o1, o2 := e.orlX[k1], e.orlY[k2]
	stride := e.n + 1

	// Gap boundaries of the pair's region.
	delta[(o1+1)*stride+o2+1] = 0
	for i := o1; i >= k1; i-- {
		delta[i*stride+o2+1] = delta[(i+1)*stride+o2+1] + e.delc[i]
	}
	for j := o2; j >= k2; j-- {
		delta[(o1+1)*stride+j] = delta[(o1+1)*stride+j+1] + e.insc[j]
	}

	var del, ins, other float64
	for i := o1; i >= k1; i-- {
		for j := o2; j >= k2; j-- {
			del = e.delc[i] + delta[(i+1)*stride+j]
			ins = e.insc[j] + delta[i*stride+j+1]
			if e.orlX[i] == o1 && e.orlY[j] == o2 {
				// Both forests are whole subtrees: plain three-way recurrence,
				// and the cell doubles as the subtree distance D[i][j].
				other = e.repc[i*e.n+j] + delta[(i+1)*stride+j+1]
				if del < other {
					other = del
				}
				if ins < other {
					other = ins
				}
				delta[i*stride+j] = other
				e.dist[i*e.n+j] = other
				continue
			}
			// Partial forests: bridge over the whole subtree pair via D.
			other = e.dist[i*e.n+j] + delta[(e.orlX[i]+1)*stride+e.orlY[j]+1]
			if del < other {
				other = del
			}
			if ins < other {
				other = ins
			}
			delta[i*stride+j] = other
		}
	}
}

// gapSum prices aligning a whole tree against the empty tree.
func gapSum[T any](nodes []T, delta align.Delta[T], left bool) (float64, error) {
	var total, c float64
	for i := range nodes {
		if left {
			c = delta(&nodes[i], nil)
		} else {
			c = delta(nil, &nodes[i])
		}
		if !validCost(c) {
			return 0, fmt.Errorf("ted: delta on node %d = %g: %w", i, c, align.ErrInvalidCost)
		}
		total += c
	}

	return total, nil
}

// TED computes the tree edit distance between (xNodes, xAdj) and
// (yNodes, yAdj) under the cost kernel delta. Node indices must follow
// depth-first pre-order from root 0 (ErrShapeMismatch otherwise).
// Complexity: O(m·n·|keyroots_x|·|keyroots_y|) time, O(m·n) memory.
func TED[T any](xNodes []T, xAdj [][]int, yNodes []T, yAdj [][]int, delta align.Delta[T]) (float64, error) {
	if err := validateTree(len(xNodes), xAdj); err != nil {
		return 0, err
	}
	if err := validateTree(len(yNodes), yAdj); err != nil {
		return 0, err
	}
	if len(xNodes) == 0 {
		return gapSum(yNodes, delta, false)
	}
	if len(yNodes) == 0 {
		return gapSum(xNodes, delta, true)
	}
	e, err := newEngine(xNodes, xAdj, yNodes, yAdj, delta)
	if err != nil {
		return 0, err
	}

	return e.dist[0], nil
}

// StandardTED computes the unit-cost tree edit distance with pure integer
// arithmetic, skipping kernel calls entirely. Equals TED with align.Kron
// for every input.
// Complexity: O(m·n·|keyroots_x|·|keyroots_y|) time, O(m·n) memory.
func StandardTED[T comparable](xNodes []T, xAdj [][]int, yNodes []T, yAdj [][]int) (int, error) {
	if err := validateTree(len(xNodes), xAdj); err != nil {
		return 0, err
	}
	if err := validateTree(len(yNodes), yAdj); err != nil {
		return 0, err
	}
	m, n := len(xNodes), len(yNodes)
	if m == 0 {
		return n, nil
	}
	if n == 0 {
		return m, nil
	}

	orlX := OutermostRightLeaves(xAdj)
	orlY := OutermostRightLeaves(yAdj)
	dist := make([]int, m*n)
	delta := make([]int, (m+1)*(n+1))
	stride := n + 1

	var o1, o2, i, j, del, ins, other int
	for _, k1 := range Keyroots(orlX) {
		for _, k2 := range Keyroots(orlY) {
			o1, o2 = orlX[k1], orlY[k2]
			delta[(o1+1)*stride+o2+1] = 0
			for i = o1; i >= k1; i-- {
				delta[i*stride+o2+1] = delta[(i+1)*stride+o2+1] + 1
			}
			for j = o2; j >= k2; j-- {
				delta[(o1+1)*stride+j] = delta[(o1+1)*stride+j+1] + 1
			}
			for i = o1; i >= k1; i-- {
				for j = o2; j >= k2; j-- {
					del = 1 + delta[(i+1)*stride+j]
					ins = 1 + delta[i*stride+j+1]
					if orlX[i] == o1 && orlY[j] == o2 {
						other = delta[(i+1)*stride+j+1]
						if xNodes[i] != yNodes[j] {
							other++
						}
						if del < other {
							other = del
						}
						if ins < other {
							other = ins
						}
						delta[i*stride+j] = other
						dist[i*n+j] = other
						continue
					}
					other = dist[i*n+j] + delta[(orlX[i]+1)*stride+orlY[j]+1]
					if del < other {
						other = del
					}
					if ins < other {
						other = ins
					}
					delta[i*stride+j] = other
				}
			}
		}
	}

	return dist[0], nil
}
