// Package adp: cost-map resolution, sentinel errors and numeric helpers.
package adp

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/edist/align"
	"github.com/katalvlaran/edist/grammar"
)

// Sentinel errors of the ADP engine.
var (
	// ErrNoAcceptingParse indicates the grammar admits no accepting
	// derivation for the given inputs (the start cell is +Inf).
	ErrNoAcceptingParse = errors.New("adp: no accepting derivation exists")

	// ErrIncompletePath indicates a backtrace walk got stuck; with a pure
	// cost kernel this cannot happen.
	ErrIncompletePath = errors.New("adp: backtrace walk incomplete")
)

// Deltas assigns one cost kernel per grammar operation name. The align.Any
// ("*") entry, when present, serves every operation without an explicit
// entry — use Uniform to broadcast a single kernel to the whole grammar.
type Deltas[T any] map[string]align.Delta[T]

// Uniform wraps a single cost kernel so that every operation of a grammar
// shares it.
func Uniform[T any](delta align.Delta[T]) Deltas[T] {
	return Deltas[T]{align.Any: delta}
}

// resolve maps the operation registry of one category to a dense kernel
// table. A name with neither an explicit nor a wildcard entry is an
// ErrUnknownSymbol.
func resolve[T any](ops []string, deltas Deltas[T]) ([]align.Delta[T], error) {
	table := make([]align.Delta[T], len(ops))
	for i, op := range ops {
		delta, ok := deltas[op]
		if !ok {
			delta, ok = deltas[align.Any]
		}
		if !ok {
			return nil, fmt.Errorf("adp: no cost kernel for operation %q: %w", op, grammar.ErrUnknownSymbol)
		}
		table[i] = delta
	}

	return table, nil
}

// kernels bundles the compiled adjacency with its dense kernel tables.
type kernels[T any] struct {
	adj  *grammar.Adjacency
	reps []align.Delta[T]
	dels []align.Delta[T]
	inss []align.Delta[T]
}

// compile resolves a grammar and its cost map into index-only form, so the
// DP inner loops never perform a string lookup.
func compile[T any](g *grammar.Grammar, deltas Deltas[T]) (*kernels[T], error) {
	adj, err := g.AdjacencyLists()
	if err != nil {
		return nil, err
	}
	k := &kernels[T]{adj: adj}
	if k.reps, err = resolve(adj.RepOps, deltas); err != nil {
		return nil, err
	}
	if k.dels, err = resolve(adj.DelOps, deltas); err != nil {
		return nil, err
	}
	if k.inss, err = resolve(adj.InsOps, deltas); err != nil {
		return nil, err
	}

	return k, nil
}

// validCost reports whether a kernel result satisfies the numeric policy;
// the comparison is false for NaN as well as for negative values.
func validCost(c float64) bool { return c >= 0 }

// almostEqual reports co-optimality of two costs under the shared
// relative+absolute tolerance. Two infinities never compare equal, which
// keeps unreachable cells out of every co-optimality scan.
func almostEqual(a, b float64) bool {
	const eps = 1e-9
	if math.IsInf(a, 1) || math.IsInf(b, 1) {
		return false
	}
	scale := 1.0
	if abs := math.Abs(a); abs > scale {
		scale = abs
	}
	if abs := math.Abs(b); abs > scale {
		scale = abs
	}

	return math.Abs(a-b) <= eps*scale
}

// drawWeighted samples an index proportional to the given non-negative
// weights. rng == nil uses the shared global source.
func drawWeighted(rng *rand.Rand, weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	var r float64
	if rng != nil {
		r = rng.Float64() * total
	} else {
		r = rand.Float64() * total
	}
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		r -= w
		if r <= 0 {
			return i
		}
	}
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}

	return 0
}
