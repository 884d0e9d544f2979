package aed_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/edist/aed"
	"github.com/katalvlaran/edist/align"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runes splits a string into single-character labels.
func runes(s string) []rune { return []rune(s) }

// TestAED verifies the affine distance: one mismatch, one gap opening and
// one half-price extension.
func TestAED(t *testing.T) {
	d, err := aed.AED(runes("abc"), runes("adefc"))
	require.NoError(t, err)
	assert.Equal(t, 2.5, d)
}

// TestAED_Identity verifies zero self-distance.
func TestAED_Identity(t *testing.T) {
	d, err := aed.AED(runes("abc"), runes("abc"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)
}

// TestBacktrace verifies the labeled alignment: the gap opens with "ins"
// and extends with "skins".
func TestBacktrace(t *testing.T) {
	var expected align.Alignment
	expected.AppendOp(0, 0, "rep")
	expected.AppendOp(1, 1, "rep")
	expected.AppendOp(align.Gap, 2, "ins")
	expected.AppendOp(align.Gap, 3, "skins")
	expected.AppendOp(2, 4, "rep")

	ali, err := aed.Backtrace(runes("abc"), runes("adefc"))
	require.NoError(t, err)
	assert.True(t, expected.Equal(ali), "got %v", ali)
}

// TestBacktraceStochastic verifies unique-optimum determinism and the
// uniform split on an ambiguous pair.
func TestBacktraceStochastic(t *testing.T) {
	var expected align.Alignment
	expected.AppendOp(0, 0, "rep")
	expected.AppendOp(1, 1, "rep")
	expected.AppendOp(align.Gap, 2, "ins")
	expected.AppendOp(align.Gap, 3, "skins")
	expected.AppendOp(2, 4, "rep")

	rng := rand.New(rand.NewSource(11))
	ali, err := aed.BacktraceStochastic(runes("abc"), runes("abefc"), rng)
	require.NoError(t, err)
	assert.True(t, expected.Equal(ali), "got %v", ali)

	options := make([]align.Alignment, 2)
	options[0] = align.Alignment{}
	options[0].AppendOp(0, 0, "rep")
	options[0].AppendOp(1, align.Gap, "del")
	options[1] = align.Alignment{}
	options[1].AppendOp(0, align.Gap, "del")
	options[1].AppendOp(1, 0, "rep")

	const T = 600
	histogram := make([]int, len(options))
	for trial := 0; trial < T; trial++ {
		ali, err = aed.BacktraceStochastic(runes("aa"), runes("b"), rng)
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

// TestBacktraceMatrix verifies the folded (m+2)×(n+2) marginal matrix.
func TestBacktraceMatrix(t *testing.T) {
	P, k, err := aed.BacktraceMatrix(runes("abc"), runes("abefc"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, k)
	expected := [][]float64{
		{1, 0, 0, 0, 0, 0, 0},
		{0, 1, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 1, 0, 0},
		{0, 0, 1, 0, 0, 0, 0},
		{0, 0, 0, 1, 0, 0, 0},
	}
	assert.Equal(t, expected, P)

	P, k, err = aed.BacktraceMatrix(runes("aa"), runes("b"))
	require.NoError(t, err)
	assert.Equal(t, 2.0, k)
	expected = [][]float64{
		{0.5, 0.5, 0},
		{0.5, 0.5, 0},
		{0, 0, 0},
		{0, 0, 0},
	}
	assert.Equal(t, expected, P)
}
