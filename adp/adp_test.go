package adp_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/edist/adp"
	"github.com/katalvlaran/edist/align"
	"github.com/katalvlaran/edist/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainGrammar is the single-state grammar equivalent to plain sequence
// edit distance.
func plainGrammar() *grammar.Grammar {
	g := grammar.New("A", []string{"A"})
	g.AppendReplacement("A", "A", "rep")
	g.AppendDeletion("A", "A", "del")
	g.AppendInsertion("A", "A", "ins")

	return g
}

// skipGrammar discounts the second and later symbols of a gap run via one
// shared skip state.
func skipGrammar() *grammar.Grammar {
	g := grammar.New("A", []string{"A", "Sk"})
	g.AppendReplacement("A", "A", "rep")
	g.AppendDeletion("A", "Sk", "del")
	g.AppendInsertion("A", "Sk", "ins")
	g.AppendReplacement("Sk", "A", "rep")
	g.AppendDeletion("Sk", "Sk", "skdel")
	g.AppendInsertion("Sk", "Sk", "skins")

	return g
}

// splitSkipGrammar keeps separate skip states for deletions and
// insertions, so a gap run never mixes directions.
func splitSkipGrammar() *grammar.Grammar {
	g := grammar.New("A", []string{"A", "Skdel", "Skins"})
	g.AppendReplacement("A", "A", "rep")
	g.AppendDeletion("A", "Skdel", "del")
	g.AppendInsertion("A", "Skins", "ins")
	g.AppendReplacement("Skdel", "A", "rep")
	g.AppendDeletion("Skdel", "Skdel", "skdel")
	g.AppendReplacement("Skins", "A", "rep")
	g.AppendInsertion("Skins", "Skins", "skins")

	return g
}

// skipDeltas prices the core operations with the unit kernel and the skip
// operations at half a unit.
func skipDeltas() adp.Deltas[string] {
	half := func(a, b *string) float64 { return 0.5 }

	return adp.Deltas[string]{
		"rep":   align.Kron[string],
		"del":   align.Kron[string],
		"ins":   align.Kron[string],
		"skdel": half,
		"skins": half,
	}
}

// labeled builds an alignment from (left, right, op) entries.
func labeled(entries []struct {
	l, r int
	op   string
}) align.Alignment {
	var a align.Alignment
	for _, e := range entries {
		a.AppendOp(e.l, e.r, e.op)
	}

	return a
}

// TestEditDistance verifies the plain grammar against sequence edit
// distance, for both a per-operation map and a broadcast kernel.
func TestEditDistance(t *testing.T) {
	left := []string{"a", "b", "c"}
	right := []string{"a", "d", "e", "f", "c"}

	d, err := adp.EditDistance(left, right, plainGrammar(), adp.Deltas[string]{
		"rep": align.Kron[string],
		"del": align.Kron[string],
		"ins": align.Kron[string],
	})
	require.NoError(t, err)
	assert.Equal(t, 3.0, d)

	d, err = adp.EditDistance(left, right, plainGrammar(), adp.Uniform(align.Kron[string]))
	require.NoError(t, err)
	assert.Equal(t, 3.0, d)
}

// TestEditDistance_SkipGrammar verifies the discounted gap runs.
func TestEditDistance_SkipGrammar(t *testing.T) {
	left := []string{"a", "b", "c"}
	right := []string{"a", "d", "e", "f", "c"}

	d, err := adp.EditDistance(left, right, skipGrammar(), skipDeltas())
	require.NoError(t, err)
	assert.Equal(t, 2.5, d)
}

// TestEditDistance_Errors verifies the unknown-operation and
// no-accepting-parse sentinels.
func TestEditDistance_Errors(t *testing.T) {
	left := []string{"a"}
	right := []string{"b"}

	// The skip grammar needs kernels for skdel/skins as well.
	_, err := adp.EditDistance(left, right, skipGrammar(), adp.Deltas[string]{
		"rep": align.Kron[string],
		"del": align.Kron[string],
		"ins": align.Kron[string],
	})
	assert.ErrorIs(t, err, grammar.ErrUnknownSymbol, "missing kernel for skdel must error")

	// Replacements alone cannot absorb a length difference.
	onlyRep := grammar.New("A", []string{"A"})
	onlyRep.AppendReplacement("A", "A", "rep")
	_, err = adp.EditDistance([]string{"a", "b"}, right, onlyRep, adp.Uniform(align.Kron[string]))
	assert.ErrorIs(t, err, adp.ErrNoAcceptingParse)
}

// TestBacktrace verifies the deterministic labeled alignments on the plain
// and skip grammars.
func TestBacktrace(t *testing.T) {
	left := []string{"a", "b", "c"}
	right := []string{"a", "d", "e", "f", "c"}

	expected := labeled([]struct {
		l, r int
		op   string
	}{
		{0, 0, "rep"}, {1, 1, "rep"}, {-1, 2, "ins"}, {-1, 3, "ins"}, {2, 4, "rep"},
	})
	ali, err := adp.Backtrace(left, right, plainGrammar(), adp.Uniform(align.Kron[string]))
	require.NoError(t, err)
	assert.True(t, expected.Equal(ali), "got %v", ali)

	expected = labeled([]struct {
		l, r int
		op   string
	}{
		{0, 0, "rep"}, {1, 1, "rep"}, {-1, 2, "ins"}, {-1, 3, "skins"}, {2, 4, "rep"},
	})
	ali, err = adp.Backtrace(left, right, skipGrammar(), skipDeltas())
	require.NoError(t, err)
	assert.True(t, expected.Equal(ali), "got %v", ali)

	// Alignment cost under the per-operation kernels equals the distance.
	cost, err := align.CostWithOps(ali, left, right, skipDeltas())
	require.NoError(t, err)
	assert.Equal(t, 2.5, cost)
}

// TestBacktraceStochastic verifies unique-optimum determinism and the
// uniform distribution over an ambiguous pair.
func TestBacktraceStochastic(t *testing.T) {
	left := []string{"a", "b", "c", "d"}
	right := []string{"a", "d", "c"}

	expected := labeled([]struct {
		l, r int
		op   string
	}{
		{0, 0, "rep"}, {1, 1, "rep"}, {2, 2, "rep"}, {3, -1, "del"},
	})
	rng := rand.New(rand.NewSource(5))
	ali, err := adp.BacktraceStochastic(left, right, plainGrammar(), adp.Uniform(align.Kron[string]), rng)
	require.NoError(t, err)
	assert.True(t, expected.Equal(ali), "got %v", ali)

	// Split skip grammar on a richer pair still has a unique optimum.
	left = []string{"a", "b", "c"}
	right = []string{"a", "b", "e", "f", "c"}
	expected = labeled([]struct {
		l, r int
		op   string
	}{
		{0, 0, "rep"}, {1, 1, "rep"}, {-1, 2, "ins"}, {-1, 3, "skins"}, {2, 4, "rep"},
	})
	ali, err = adp.BacktraceStochastic(left, right, splitSkipGrammar(), skipDeltas(), rng)
	require.NoError(t, err)
	assert.True(t, expected.Equal(ali), "got %v", ali)

	// "aa" vs "b": two co-optimal derivations, each drawn half the time.
	x := []string{"a", "a"}
	y := []string{"b"}
	options := []align.Alignment{
		labeled([]struct {
			l, r int
			op   string
		}{{0, 0, "rep"}, {1, -1, "del"}}),
		labeled([]struct {
			l, r int
			op   string
		}{{0, -1, "del"}, {1, 0, "rep"}}),
	}
	const T = 600
	histogram := make([]int, len(options))
	for trial := 0; trial < T; trial++ {
		ali, err = adp.BacktraceStochastic(x, y, splitSkipGrammar(), skipDeltas(), rng)
		require.NoError(t, err)
		found := -1
		for idx, opt := range options {
			if opt.Equal(ali) {
				found = idx
				break
			}
		}
		require.GreaterOrEqual(t, found, 0, "unexpected alignment %v", ali)
		histogram[found]++
	}
	for idx, count := range histogram {
		assert.InDelta(t, 0.5, float64(count)/T, 0.1, "option %d must be drawn uniformly", idx)
	}
}

// TestBacktraceMatrix verifies the per-operation marginal tensors on the
// reference cases.
func TestBacktraceMatrix(t *testing.T) {
	// Unique optimum on the plain grammar.
	left := []string{"a", "b", "c", "d"}
	right := []string{"a", "d", "c"}
	pRep, pDel, pIns, k, err := adp.BacktraceMatrix(left, right, plainGrammar(), adp.Uniform(align.Kron[string]))
	require.NoError(t, err)
	assert.Equal(t, 1.0, k)
	assert.Equal(t, [][][]float64{{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{0, 0, 0},
	}}, pRep)
	assert.Equal(t, [][]float64{{0, 0, 0, 1}}, pDel)
	assert.Equal(t, [][]float64{{0, 0, 0}}, pIns)

	// Unique optimum on the split skip grammar.
	left = []string{"a", "b", "c"}
	right = []string{"a", "b", "e", "f", "c"}
	pRep, pDel, pIns, k, err = adp.BacktraceMatrix(left, right, splitSkipGrammar(), skipDeltas())
	require.NoError(t, err)
	assert.Equal(t, 1.0, k)
	assert.Equal(t, [][][]float64{{
		{1, 0, 0, 0, 0},
		{0, 1, 0, 0, 0},
		{0, 0, 0, 0, 1},
	}}, pRep)
	assert.Equal(t, [][]float64{{0, 0, 0}, {0, 0, 0}}, pDel)
	assert.Equal(t, [][]float64{{0, 0, 1, 0, 0}, {0, 0, 0, 1, 0}}, pIns)

	// Ambiguous pair: mass splits evenly between the two derivations.
	x := []string{"a", "a"}
	y := []string{"b"}
	pRep, pDel, pIns, k, err = adp.BacktraceMatrix(x, y, splitSkipGrammar(), skipDeltas())
	require.NoError(t, err)
	assert.Equal(t, 2.0, k)
	assert.Equal(t, [][][]float64{{{0.5}, {0.5}}}, pRep)
	assert.Equal(t, [][]float64{{0.5, 0.5}, {0, 0}}, pDel)
	assert.Equal(t, [][]float64{{0}, {0}}, pIns)
}

// TestBacktraceMatrix_NoParse verifies the failure sentinel.
func TestBacktraceMatrix_NoParse(t *testing.T) {
	onlyRep := grammar.New("A", []string{"A"})
	onlyRep.AppendReplacement("A", "A", "rep")
	_, _, _, _, err := adp.BacktraceMatrix([]string{"a", "b"}, []string{"c"}, onlyRep, adp.Uniform(align.Kron[string]))
	assert.ErrorIs(t, err, adp.ErrNoAcceptingParse)
}
