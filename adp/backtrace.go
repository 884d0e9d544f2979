// Package adp: deterministic, stochastic and matrix backtracing over
// grammar-driven edit distance tables.
package adp

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/edist/align"
	"github.com/katalvlaran/edist/grammar"
)

// move is one co-optimal continuation out of a cell, in tie-break order.
type move struct {
	kind   int
	op     int
	target int
}

// coOptimalMoves lists the co-optimal continuations of cell (a, i, j) in
// deterministic tie-break order: replacements, deletions, insertions, each
// in declaration order. weights receives the backward count of each move's
// successor when b != nil.
func coOptimalMoves[T any](x, y []T, k *kernels[T], t *table, b []float64, a, i, j int, moves []move, weights []float64) ([]move, []float64, error) {
	moves = moves[:0]
	weights = weights[:0]
	cur := t.vals[t.at(a, i, j)]
	appendMove := func(kind, op, target, succ int) {
		moves = append(moves, move{kind: kind, op: op, target: target})
		if b != nil {
			weights = append(weights, b[succ])
		}
	}

	var c float64
	var err error
	if i < t.m && j < t.n {
		for _, e := range k.adj.Reps[a] {
			if c, err = edgeCost(x, y, k, kindRep, e.Op, i, j); err != nil {
				return nil, nil, err
			}
			if succ := t.at(e.Target, i+1, j+1); almostEqual(cur, c+t.vals[succ]) {
				appendMove(kindRep, e.Op, e.Target, succ)
			}
		}
	}
	if i < t.m {
		for _, e := range k.adj.Dels[a] {
			if c, err = edgeCost(x, y, k, kindDel, e.Op, i, j); err != nil {
				return nil, nil, err
			}
			if succ := t.at(e.Target, i+1, j); almostEqual(cur, c+t.vals[succ]) {
				appendMove(kindDel, e.Op, e.Target, succ)
			}
		}
	}
	if j < t.n {
		for _, e := range k.adj.Inss[a] {
			if c, err = edgeCost(x, y, k, kindIns, e.Op, i, j); err != nil {
				return nil, nil, err
			}
			if succ := t.at(e.Target, i, j+1); almostEqual(cur, c+t.vals[succ]) {
				appendMove(kindIns, e.Op, e.Target, succ)
			}
		}
	}

	return moves, weights, nil
}

// apply emits the chosen move and advances the walk state.
func (mv move) apply(ali *align.Alignment, adj *grammar.Adjacency, i, j int) (int, int, int) {
	switch mv.kind {
	case kindRep:
		ali.AppendOp(i, j, adj.RepOps[mv.op])
		return mv.target, i + 1, j + 1
	case kindDel:
		ali.AppendOp(i, align.Gap, adj.DelOps[mv.op])
		return mv.target, i + 1, j
	default:
		ali.AppendOp(align.Gap, j, adj.InsOps[mv.op])
		return mv.target, i, j + 1
	}
}

// Backtrace returns one optimal labeled alignment of x onto y under the
// grammar. Ties are broken by transition declaration order, categories
// ordered replacement → deletion → insertion.
func Backtrace[T any](x, y []T, g *grammar.Grammar, deltas Deltas[T]) (align.Alignment, error) {
	k, err := compile(g, deltas)
	if err != nil {
		return nil, err
	}
	t, err := forward(x, y, k)
	if err != nil {
		return nil, err
	}
	if math.IsInf(t.vals[t.at(k.adj.Start, 0, 0)], 1) {
		return nil, fmt.Errorf("start nonterminal %q: %w", g.Start(), ErrNoAcceptingParse)
	}

	var ali align.Alignment
	var moves []move
	a, i, j := k.adj.Start, 0, 0
	for i < t.m || j < t.n {
		if moves, _, err = coOptimalMoves(x, y, k, t, nil, a, i, j, moves, nil); err != nil {
			return nil, err
		}
		if len(moves) == 0 {
			return nil, ErrIncompletePath
		}
		a, i, j = moves[0].apply(&ali, k.adj, i, j)
	}

	return ali, nil
}

// backward fills the co-optimal derivation counts: b[a][i][j] is the number
// of distinct co-optimal derivations completing from (a, i, j).
func backward[T any](x, y []T, k *kernels[T], t *table) ([]float64, error) {
	b := make([]float64, len(t.vals))
	for _, a := range k.adj.Accepting {
		b[t.at(a, t.m, t.n)] = 1
	}

	var moves []move
	var err error
	for i := t.m; i >= 0; i-- {
		for j := t.n; j >= 0; j-- {
			if i == t.m && j == t.n {
				continue
			}
			for a := 0; a < t.numNT; a++ {
				if math.IsInf(t.vals[t.at(a, i, j)], 1) {
					continue
				}
				if moves, _, err = coOptimalMoves(x, y, k, t, nil, a, i, j, moves, nil); err != nil {
					return nil, err
				}
				var cnt float64
				for _, mv := range moves {
					switch mv.kind {
					case kindRep:
						cnt += b[t.at(mv.target, i+1, j+1)]
					case kindDel:
						cnt += b[t.at(mv.target, i+1, j)]
					default:
						cnt += b[t.at(mv.target, i, j+1)]
					}
				}
				b[t.at(a, i, j)] = cnt
			}
		}
	}

	return b, nil
}

// BacktraceStochastic draws one co-optimal labeled alignment uniformly at
// random over all co-optimal derivations; options are weighted by backward
// derivation counts. rng == nil uses the shared global source.
func BacktraceStochastic[T any](x, y []T, g *grammar.Grammar, deltas Deltas[T], rng *rand.Rand) (align.Alignment, error) {
	k, err := compile(g, deltas)
	if err != nil {
		return nil, err
	}
	t, err := forward(x, y, k)
	if err != nil {
		return nil, err
	}
	if math.IsInf(t.vals[t.at(k.adj.Start, 0, 0)], 1) {
		return nil, fmt.Errorf("start nonterminal %q: %w", g.Start(), ErrNoAcceptingParse)
	}
	b, err := backward(x, y, k, t)
	if err != nil {
		return nil, err
	}

	var ali align.Alignment
	var moves []move
	var weights []float64
	a, i, j := k.adj.Start, 0, 0
	for i < t.m || j < t.n {
		if moves, weights, err = coOptimalMoves(x, y, k, t, b, a, i, j, moves, weights); err != nil {
			return nil, err
		}
		if len(moves) == 0 {
			return nil, ErrIncompletePath
		}
		a, i, j = moves[drawWeighted(rng, weights)].apply(&ali, k.adj, i, j)
	}

	return ali, nil
}

// BacktraceMatrix summarizes all co-optimal derivations of x onto y.
// It returns one marginal tensor per transition category:
//
//   - PRep — |repOps|×m×n; PRep[op][i][j] is the probability that a
//     uniformly drawn co-optimal derivation replaces x[i] with y[j] via op
//   - PDel — |delOps|×m; deletion mass per left position and operation
//   - PIns — |insOps|×n; insertion mass per right position and operation
//   - K — the total number of co-optimal derivations; distinct
//     (nonterminal path, index path) pairs count separately
//
// The forward-count pass runs by backward induction over the grammar's
// inverse adjacency lists. Fails with ErrNoAcceptingParse when no
// derivation exists.
func BacktraceMatrix[T any](x, y []T, g *grammar.Grammar, deltas Deltas[T]) (PRep [][][]float64, PDel, PIns [][]float64, K float64, err error) {
	k, err := compile(g, deltas)
	if err != nil {
		return nil, nil, nil, 0, err
	}
	t, err := forward(x, y, k)
	if err != nil {
		return nil, nil, nil, 0, err
	}
	b, err := backward(x, y, k, t)
	if err != nil {
		return nil, nil, nil, 0, err
	}
	K = b[t.at(k.adj.Start, 0, 0)]
	if K == 0 {
		return nil, nil, nil, 0, fmt.Errorf("start nonterminal %q: %w", g.Start(), ErrNoAcceptingParse)
	}
	inv, err := g.InverseAdjacencyLists()
	if err != nil {
		return nil, nil, nil, 0, err
	}

	m, n := t.m, t.n

	// Forward counts by backward induction: f[bNT][i][j] sums the counts of
	// every co-optimal prefix ending in bNT at (i, j), gathered over the
	// edges entering bNT.
	f := make([]float64, len(t.vals))
	f[t.at(k.adj.Start, 0, 0)] = 1
	var c float64
	for i := 0; i <= m; i++ {
		for j := 0; j <= n; j++ {
			for bNT := 0; bNT < t.numNT; bNT++ {
				if i == 0 && j == 0 {
					break // only the seeded start cell exists at the origin
				}
				cell := t.at(bNT, i, j)
				if math.IsInf(t.vals[cell], 1) {
					continue
				}
				var sum float64
				if i > 0 && j > 0 {
					for _, e := range inv.Reps[bNT] {
						prev := t.at(e.Target, i-1, j-1)
						if f[prev] == 0 {
							continue
						}
						if c, err = edgeCost(x, y, k, kindRep, e.Op, i-1, j-1); err != nil {
							return nil, nil, nil, 0, err
						}
						if almostEqual(t.vals[prev], c+t.vals[cell]) {
							sum += f[prev]
						}
					}
				}
				if i > 0 {
					for _, e := range inv.Dels[bNT] {
						prev := t.at(e.Target, i-1, j)
						if f[prev] == 0 {
							continue
						}
						if c, err = edgeCost(x, y, k, kindDel, e.Op, i-1, j); err != nil {
							return nil, nil, nil, 0, err
						}
						if almostEqual(t.vals[prev], c+t.vals[cell]) {
							sum += f[prev]
						}
					}
				}
				if j > 0 {
					for _, e := range inv.Inss[bNT] {
						prev := t.at(e.Target, i, j-1)
						if f[prev] == 0 {
							continue
						}
						if c, err = edgeCost(x, y, k, kindIns, e.Op, i, j-1); err != nil {
							return nil, nil, nil, 0, err
						}
						if almostEqual(t.vals[prev], c+t.vals[cell]) {
							sum += f[prev]
						}
					}
				}
				f[cell] += sum
			}
		}
	}

	PRep = make([][][]float64, len(k.adj.RepOps))
	for op := range PRep {
		PRep[op] = make([][]float64, m)
		for i := range PRep[op] {
			PRep[op][i] = make([]float64, n)
		}
	}
	PDel = make([][]float64, len(k.adj.DelOps))
	for op := range PDel {
		PDel[op] = make([]float64, m)
	}
	PIns = make([][]float64, len(k.adj.InsOps))
	for op := range PIns {
		PIns[op] = make([]float64, n)
	}

	// Accumulate edge marginals: an edge taken at (a,i,j) occurs in
	// f[a][i][j] · b[successor] of the K co-optimal derivations.
	var moves []move
	for i := 0; i <= m; i++ {
		for j := 0; j <= n; j++ {
			for a := 0; a < t.numNT; a++ {
				fij := f[t.at(a, i, j)]
				if fij == 0 {
					continue
				}
				if moves, _, err = coOptimalMoves(x, y, k, t, nil, a, i, j, moves, nil); err != nil {
					return nil, nil, nil, 0, err
				}
				for _, mv := range moves {
					switch mv.kind {
					case kindRep:
						PRep[mv.op][i][j] += fij * b[t.at(mv.target, i+1, j+1)] / K
					case kindDel:
						PDel[mv.op][i] += fij * b[t.at(mv.target, i+1, j)] / K
					default:
						PIns[mv.op][j] += fij * b[t.at(mv.target, i, j+1)] / K
					}
				}
			}
		}
	}

	return PRep, PDel, PIns, K, nil
}
