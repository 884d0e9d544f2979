// Package aed: the prebuilt affine-gap grammar and its entry points.
package aed

import (
	"math/rand"

	"github.com/katalvlaran/edist/adp"
	"github.com/katalvlaran/edist/align"
	"github.com/katalvlaran/edist/grammar"
)

// Nonterminal and operation names of the affine grammar.
const (
	stateAligned = "A"
	stateSkipDel = "Skdel"
	stateSkipIns = "Skins"

	opRep     = "rep"
	opDel     = "del"
	opIns     = "ins"
	opSkipDel = "skdel"
	opSkipIns = "skins"
)

// extensionCost is the default price of extending an open gap by one symbol.
const extensionCost = 0.5

// Grammar builds the affine-gap grammar: replacements keep or re-enter the
// aligned state, a first gap symbol opens a skip state, further gap symbols
// extend it. All states are accepting.
func Grammar() *grammar.Grammar {
	g := grammar.New(stateAligned, []string{stateAligned, stateSkipDel, stateSkipIns})
	g.AppendReplacement(stateAligned, stateAligned, opRep)
	g.AppendDeletion(stateAligned, stateSkipDel, opDel)
	g.AppendInsertion(stateAligned, stateSkipIns, opIns)
	g.AppendReplacement(stateSkipDel, stateAligned, opRep)
	g.AppendDeletion(stateSkipDel, stateSkipDel, opSkipDel)
	g.AppendReplacement(stateSkipIns, stateAligned, opRep)
	g.AppendInsertion(stateSkipIns, stateSkipIns, opSkipIns)

	return g
}

// DefaultDeltas prices rep/del/ins with the unit kernel and the two
// extension operations at half a unit.
func DefaultDeltas[T comparable]() adp.Deltas[T] {
	extend := func(a, b *T) float64 { return extensionCost }

	return adp.Deltas[T]{
		align.Any: align.Kron[T],
		opSkipDel: extend,
		opSkipIns: extend,
	}
}

// AED computes the affine edit distance between x and y under the default
// costs.
// Complexity: O(m·n) time (constant grammar size), O(m·n) memory.
func AED[T comparable](x, y []T) (float64, error) {
	return adp.EditDistance(x, y, Grammar(), DefaultDeltas[T]())
}

// Backtrace returns one optimal labeled alignment under the affine costs.
func Backtrace[T comparable](x, y []T) (align.Alignment, error) {
	return adp.Backtrace(x, y, Grammar(), DefaultDeltas[T]())
}

// BacktraceStochastic draws one co-optimal labeled alignment uniformly at
// random. rng == nil uses the shared global source.
func BacktraceStochastic[T comparable](x, y []T, rng *rand.Rand) (align.Alignment, error) {
	return adp.BacktraceStochastic(x, y, Grammar(), DefaultDeltas[T](), rng)
}

// BacktraceMatrix folds the ADP marginal tensors into one (m+2)×(n+2)
// matrix P and returns it with the co-optimal derivation count k.
// P[i][j] for i<m, j<n is the replacement mass; rows m and m+1 hold the
// ins/skins mass per right position; columns n and n+1 the del/skdel mass
// per left position.
func BacktraceMatrix[T comparable](x, y []T) (P [][]float64, k float64, err error) {
	pRep, pDel, pIns, k, err := adp.BacktraceMatrix(x, y, Grammar(), DefaultDeltas[T]())
	if err != nil {
		return nil, 0, err
	}
	m, n := len(x), len(y)

	P = make([][]float64, m+2)
	for i := range P {
		P[i] = make([]float64, n+2)
	}
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			P[i][j] = pRep[0][i][j]
		}
		P[i][n] = pDel[0][i]
		P[i][n+1] = pDel[1][i]
	}
	for j := 0; j < n; j++ {
		P[m][j] = pIns[0][j]
		P[m+1][j] = pIns[1][j]
	}

	return P, k, nil
}
