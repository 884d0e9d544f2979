// Package adp: the forward dynamic program over (nonterminal, i, j).
package adp

import (
	"fmt"
	"math"

	"github.com/katalvlaran/edist/align"
	"github.com/katalvlaran/edist/grammar"
)

// table is the 3-D forward table in one flat slice.
type table struct {
	vals    []float64
	numNT   int
	m, n    int
	strideI int // (n+1)
	strideA int // (m+1)*(n+1)
}

// newTable allocates a +Inf-initialized table.
func newTable(numNT, m, n int) *table {
	t := &table{
		numNT:   numNT,
		m:       m,
		n:       n,
		strideI: n + 1,
		strideA: (m + 1) * (n + 1),
	}
	t.vals = make([]float64, numNT*t.strideA)
	inf := math.Inf(1)
	for i := range t.vals {
		t.vals[i] = inf
	}

	return t
}

// at returns the flat index of (a, i, j).
func (t *table) at(a, i, j int) int { return a*t.strideA + i*t.strideI + j }

// edgeCost prices one transition at cell (i, j); the gap side is nil.
func edgeCost[T any](x, y []T, k *kernels[T], kind int, op, i, j int) (float64, error) {
	var c float64
	switch kind {
	case kindRep:
		c = k.reps[op](&x[i], &y[j])
	case kindDel:
		c = k.dels[op](&x[i], nil)
	default:
		c = k.inss[op](nil, &y[j])
	}
	if !validCost(c) {
		return 0, fmt.Errorf("adp: delta for operation %q returned %g: %w", opName(k.adj, kind, op), c, align.ErrInvalidCost)
	}

	return c, nil
}

// Transition categories, in deterministic tie-break order.
const (
	kindRep = iota
	kindDel
	kindIns
)

// opName resolves an operation index back to its name for diagnostics and
// alignment labels.
func opName(adj *grammar.Adjacency, kind, op int) string {
	switch kind {
	case kindRep:
		return adj.RepOps[op]
	case kindDel:
		return adj.DelOps[op]
	default:
		return adj.InsOps[op]
	}
}

// forward fills the suffix-indexed table for the compiled grammar:
// T[a][i][j] is the cheapest accepting derivation cost aligning x[i:] with
// y[j:] starting in nonterminal a.
func forward[T any](x, y []T, k *kernels[T]) (*table, error) {
	m, n := len(x), len(y)
	t := newTable(k.adj.NumNonterminals(), m, n)

	// Accepting boundary: both inputs exhausted.
	for _, a := range k.adj.Accepting {
		t.vals[t.at(a, m, n)] = 0
	}

	var a, i, j int
	var c, best, cand float64
	var err error
	for i = m; i >= 0; i-- {
		for j = n; j >= 0; j-- {
			if i == m && j == n {
				continue
			}
			for a = 0; a < t.numNT; a++ {
				best = math.Inf(1)
				if i < m && j < n {
					for _, e := range k.adj.Reps[a] {
						if c, err = edgeCost(x, y, k, kindRep, e.Op, i, j); err != nil {
							return nil, err
						}
						if cand = c + t.vals[t.at(e.Target, i+1, j+1)]; cand < best {
							best = cand
						}
					}
				}
				if i < m {
					for _, e := range k.adj.Dels[a] {
						if c, err = edgeCost(x, y, k, kindDel, e.Op, i, j); err != nil {
							return nil, err
						}
						if cand = c + t.vals[t.at(e.Target, i+1, j)]; cand < best {
							best = cand
						}
					}
				}
				if j < n {
					for _, e := range k.adj.Inss[a] {
						if c, err = edgeCost(x, y, k, kindIns, e.Op, i, j); err != nil {
							return nil, err
						}
						if cand = c + t.vals[t.at(e.Target, i, j+1)]; cand < best {
							best = cand
						}
					}
				}
				t.vals[t.at(a, i, j)] = best
			}
		}
	}

	return t, nil
}

// EditDistance computes the grammar-driven edit distance between x and y.
// deltas maps operation names to cost kernels (see Uniform for the
// single-kernel case). Fails with ErrNoAcceptingParse when the grammar
// admits no accepting derivation.
// Complexity: O(|transitions|·m·n) time, O(|nonterminals|·m·n) memory.
func EditDistance[T any](x, y []T, g *grammar.Grammar, deltas Deltas[T]) (float64, error) {
	k, err := compile(g, deltas)
	if err != nil {
		return 0, err
	}
	t, err := forward(x, y, k)
	if err != nil {
		return 0, err
	}
	d := t.vals[t.at(k.adj.Start, 0, 0)]
	if math.IsInf(d, 1) {
		return 0, fmt.Errorf("start nonterminal %q: %w", g.Start(), ErrNoAcceptingParse)
	}

	return d, nil
}
