package sed_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/edist/align"
	"github.com/katalvlaran/edist/sed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// expectedAlignment builds an alignment from (left, right) pairs.
func expectedAlignment(pairs [][2]int) align.Alignment {
	var a align.Alignment
	for _, p := range pairs {
		a.Append(p[0], p[1])
	}

	return a
}

// checkMatrix asserts the shared matrix-backtrace properties: P = K/k on
// the non-gap block and unit row/column sums.
func checkMatrix(t *testing.T, P, K [][]float64, k float64, m, n int) {
	t.Helper()
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			assert.InDelta(t, K[i][j]/k, P[i][j], 1e-9, "P[%d][%d] must equal K/k", i, j)
		}
	}
	for i := 0; i < m; i++ {
		var sum float64
		for j := 0; j <= n; j++ {
			sum += P[i][j]
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "row %d of P must sum to 1", i)
	}
	for j := 0; j < n; j++ {
		var sum float64
		for i := 0; i <= m; i++ {
			sum += P[i][j]
		}
		assert.InDelta(t, 1.0, sum, 1e-9, "column %d of P must sum to 1", j)
	}
}

// TestSED_Distance verifies the general and unit-cost distances agree on
// the reference inputs.
func TestSED_Distance(t *testing.T) {
	x := []byte("aabbccdd")
	y := []byte("aaabcccde")

	d, err := sed.SED(x, y, align.Kron[byte])
	require.NoError(t, err)
	assert.Equal(t, 3.0, d)

	assert.Equal(t, 3, sed.StandardSED(x, y))
	assert.Equal(t, 3, sed.SEDString("aabbccdd", "aaabcccde"))
}

// TestSED_Empty verifies the identity and gap-sum boundary cases.
func TestSED_Empty(t *testing.T) {
	d, err := sed.SED(nil, nil, align.Kron[byte])
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)

	d, err = sed.SED([]byte("abc"), nil, align.Kron[byte])
	require.NoError(t, err)
	assert.Equal(t, 3.0, d, "distance to the empty sequence is the gap sum")

	assert.Equal(t, 3, sed.StandardSED(nil, []byte("abc")))
}

// TestSED_Symmetry verifies d(x,y) = d(y,x) for the symmetric unit kernel.
func TestSED_Symmetry(t *testing.T) {
	x := []byte("kitten")
	y := []byte("sitting")
	dxy, err := sed.SED(x, y, align.Kron[byte])
	require.NoError(t, err)
	dyx, err := sed.SED(y, x, align.Kron[byte])
	require.NoError(t, err)
	assert.Equal(t, dxy, dyx)
	assert.Equal(t, 3.0, dxy)
}

// TestSED_InvalidCost verifies that a misbehaving kernel surfaces
// align.ErrInvalidCost.
func TestSED_InvalidCost(t *testing.T) {
	bad := func(a, b *byte) float64 { return math.NaN() }
	_, err := sed.SED([]byte("a"), []byte("b"), bad)
	assert.ErrorIs(t, err, align.ErrInvalidCost)

	negative := func(a, b *byte) float64 { return -1 }
	_, err = sed.SED([]byte("a"), []byte("b"), negative)
	assert.ErrorIs(t, err, align.ErrInvalidCost)
}

// TestBacktrace verifies the deterministic alignment and that its cost
// equals the distance.
func TestBacktrace(t *testing.T) {
	x := []byte("abcde")
	y := []byte("bdef")

	expected := expectedAlignment([][2]int{{0, -1}, {1, 0}, {2, -1}, {3, 1}, {4, 2}, {-1, 3}})

	ali, err := sed.Backtrace(x, y, align.Kron[byte])
	require.NoError(t, err)
	assert.True(t, expected.Equal(ali), "got %v", ali)

	cost, err := align.Cost(ali, x, y, align.Kron[byte])
	require.NoError(t, err)
	d, err := sed.SED(x, y, align.Kron[byte])
	require.NoError(t, err)
	assert.Equal(t, d, cost, "alignment cost must equal the distance")

	// The optimum is unique here, so sampling returns the same alignment.
	ali, err = sed.BacktraceStochastic(x, y, align.Kron[byte], rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.True(t, expected.Equal(ali), "got %v", ali)
}

// TestBacktraceStochastic_Uniform verifies that sampling is uniform over
// the co-optimal set: "aaa" vs "aa" has exactly three co-optimal
// alignments, each drawn with probability 1/3.
func TestBacktraceStochastic_Uniform(t *testing.T) {
	x := []byte("aaa")
	y := []byte("aa")

	options := []align.Alignment{
		expectedAlignment([][2]int{{0, 0}, {1, 1}, {2, -1}}),
		expectedAlignment([][2]int{{0, 0}, {1, -1}, {2, 1}}),
		expectedAlignment([][2]int{{0, -1}, {1, 0}, {2, 1}}),
	}

	rng := rand.New(rand.NewSource(42))
	const T = 900
	histogram := make([]int, len(options))
	for trial := 0; trial < T; trial++ {
		ali, err := sed.BacktraceStochastic(x, y, align.Kron[byte], rng)
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
		assert.InDelta(t, 1.0/3.0, float64(count)/T, 0.1, "option %d must be drawn uniformly", idx)
	}
}

// TestBacktraceMatrix verifies the reference count matrices.
func TestBacktraceMatrix(t *testing.T) {
	cases := []struct {
		x, y string
		K    [][]float64
		k    float64
	}{
		{"aaa", "aa", [][]float64{{2, 0}, {1, 1}, {0, 2}}, 3},
		{"abc", "aa", [][]float64{{2, 0}, {0, 1}, {0, 1}}, 2},
		{"abc", "bc", [][]float64{{0, 0}, {1, 0}, {0, 1}}, 1},
	}
	for _, tc := range cases {
		x, y := []byte(tc.x), []byte(tc.y)
		P, K, k, err := sed.BacktraceMatrix(x, y, align.Kron[byte])
		require.NoError(t, err)
		assert.Equal(t, tc.k, k, "%s/%s: co-optimal count", tc.x, tc.y)
		assert.Equal(t, tc.K, K, "%s/%s: count matrix", tc.x, tc.y)
		checkMatrix(t, P, K, k, len(x), len(y))
	}
}

// TestStandardBacktrace verifies the unit-kernel wrappers agree with the
// generic path.
func TestStandardBacktrace(t *testing.T) {
	x := []byte("abcde")
	y := []byte("bdef")

	expected := expectedAlignment([][2]int{{0, -1}, {1, 0}, {2, -1}, {3, 1}, {4, 2}, {-1, 3}})

	ali, err := sed.StandardBacktrace(x, y)
	require.NoError(t, err)
	assert.True(t, expected.Equal(ali))

	ali, err = sed.StandardBacktraceStochastic(x, y, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	assert.True(t, expected.Equal(ali))

	P, K, k, err := sed.StandardBacktraceMatrix([]byte("aaa"), []byte("aa"))
	require.NoError(t, err)
	assert.Equal(t, 3.0, k)
	assert.Equal(t, [][]float64{{2, 0}, {1, 1}, {0, 2}}, K)
	checkMatrix(t, P, K, k, 3, 2)
}

// TestStandardSED_MatchesGeneric cross-checks the integer fast path on
// mixed inputs.
func TestStandardSED_MatchesGeneric(t *testing.T) {
	inputs := []struct{ x, y string }{
		{"", ""},
		{"a", ""},
		{"abcabc", "abc"},
		{"intention", "execution"},
		{"aaaa", "bbbb"},
	}
	for _, in := range inputs {
		d, err := sed.SED([]byte(in.x), []byte(in.y), align.Kron[byte])
		require.NoError(t, err)
		assert.Equal(t, int(d), sed.StandardSED([]byte(in.x), []byte(in.y)), "%q vs %q", in.x, in.y)
	}
}
