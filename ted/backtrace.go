// Package ted: deterministic, stochastic and matrix backtracing over the
// Zhang–Shasha tables.
//
// Counting semantics: the stochastic and matrix variants enumerate
// distinct co-optimal tree mappings, not DP paths. Two rules make mappings
// and counted walks one-to-one: within a forest walk a deletion edge is
// never taken directly after an insertion edge (canonical gap ordering),
// and a subtree jump stands for matching the two subtree roots — inner
// alignments that gap a root are reached through the outer deletion and
// insertion edges instead.
package ted

import (
	"math/rand"

	"github.com/katalvlaran/edist/align"
)

// Backtrace returns one optimal alignment of the tree pair. Ties break in
// the order deletion, insertion, replacement/subtree-match.
func Backtrace[T any](xNodes []T, xAdj [][]int, yNodes []T, yAdj [][]int, delta align.Delta[T]) (align.Alignment, error) {
	if err := validateTree(len(xNodes), xAdj); err != nil {
		return nil, err
	}
	if err := validateTree(len(yNodes), yAdj); err != nil {
		return nil, err
	}
	var ali align.Alignment
	if gapOnly(&ali, len(xNodes), len(yNodes)) {
		return ali, nil
	}
	e, err := newEngine(xNodes, xAdj, yNodes, yAdj, delta)
	if err != nil {
		return nil, err
	}
	if err = e.walk(0, 0, 0, 0, &ali); err != nil {
		return nil, err
	}

	return ali, nil
}

// gapOnly fills the alignment for an empty-tree side and reports whether
// it applied.
func gapOnly(ali *align.Alignment, m, n int) bool {
	switch {
	case m == 0:
		for j := 0; j < n; j++ {
			ali.Append(align.Gap, j)
		}
		return true
	case n == 0:
		for i := 0; i < m; i++ {
			ali.Append(i, align.Gap)
		}
		return true
	}

	return false
}

// walk traverses the forest table of the subtree pair (k1, k2) from cell
// (a, b), emitting tuples. A subtree jump emits the matched roots and
// recurses into the pair's own table from just past the roots.
func (e *engine) walk(k1, k2, a, b int, ali *align.Alignment) error {
	delta := make([]float64, (e.m+1)*(e.n+1))
	e.forestPass(k1, k2, delta)
	o1, o2 := e.orlX[k1], e.orlY[k2]
	stride := e.n + 1

	for a <= o1 || b <= o2 {
		cur := delta[a*stride+b]
		if a <= o1 && almostEqual(cur, e.delc[a]+delta[(a+1)*stride+b]) {
			ali.Append(a, align.Gap)
			a++
			continue
		}
		if b <= o2 && almostEqual(cur, e.insc[b]+delta[a*stride+b+1]) {
			ali.Append(align.Gap, b)
			b++
			continue
		}
		if a <= o1 && b <= o2 {
			if e.orlX[a] == o1 && e.orlY[b] == o2 {
				if almostEqual(cur, e.repc[a*e.n+b]+delta[(a+1)*stride+b+1]) {
					ali.Append(a, b)
					a++
					b++
					continue
				}
			} else if almostEqual(cur, e.dist[a*e.n+b]+delta[(e.orlX[a]+1)*stride+e.orlY[b]+1]) {
				// Subtree jump. A gap-rooted optimum inside the pair would have
				// made the deletion or insertion edge above co-optimal, so the
				// roots can be matched here.
				ali.Append(a, b)
				if err := e.walk(a, b, a+1, b+1, ali); err != nil {
					return err
				}
				a = e.orlX[a] + 1
				b = e.orlY[b] + 1
				continue
			}
		}

		return ErrIncompletePath
	}

	return nil
}

// counter augments an engine with co-optimal mapping counts. rooted
// memoizes, per node pair, the number of co-optimal alignments of the
// subtree pair that match the two roots (-1 = not yet computed).
type counter struct {
	e      *engine
	rooted []float64
}

func newCounter(e *engine) *counter {
	c := &counter{e: e, rooted: make([]float64, e.m*e.n)}
	for i := range c.rooted {
		c.rooted[i] = -1
	}

	return c
}

// cbTable returns the forest table of pair (k1, k2) together with the
// backward mapping counts cb. cb is indexed (cell*2 + s) where s=1 means
// the cell was entered via an insertion, which forbids the deletion edge
// (canonical gap ordering).
func (c *counter) cbTable(k1, k2 int) (delta, cb []float64) {
	e := c.e
	delta = make([]float64, (e.m+1)*(e.n+1))
	e.forestPass(k1, k2, delta)
	o1, o2 := e.orlX[k1], e.orlY[k2]
	stride := e.n + 1
	cb = make([]float64, len(delta)*2)
	cb[((o1+1)*stride+o2+1)*2] = 1
	cb[((o1+1)*stride+o2+1)*2+1] = 1

	var cur, anyState, insOnly, w float64
	for a := o1 + 1; a >= k1; a-- {
		for b := o2 + 1; b >= k2; b-- {
			if a == o1+1 && b == o2+1 {
				continue
			}
			cur = delta[a*stride+b]
			anyState, insOnly = 0, 0
			if a <= o1 && almostEqual(cur, e.delc[a]+delta[(a+1)*stride+b]) {
				anyState += cb[((a+1)*stride+b)*2]
			}
			if b <= o2 && almostEqual(cur, e.insc[b]+delta[a*stride+b+1]) {
				w = cb[(a*stride+b+1)*2+1]
				anyState += w
				insOnly += w
			}
			if a <= o1 && b <= o2 {
				if e.orlX[a] == o1 && e.orlY[b] == o2 {
					if almostEqual(cur, e.repc[a*e.n+b]+delta[(a+1)*stride+b+1]) {
						w = cb[((a+1)*stride+b+1)*2]
						anyState += w
						insOnly += w
					}
				} else if almostEqual(cur, e.dist[a*e.n+b]+delta[(e.orlX[a]+1)*stride+e.orlY[b]+1]) {
					w = c.rootedCount(a, b) * cb[((e.orlX[a]+1)*stride+e.orlY[b]+1)*2]
					anyState += w
					insOnly += w
				}
			}
			cb[(a*stride+b)*2] = anyState
			cb[(a*stride+b)*2+1] = insOnly
		}
	}

	return delta, cb
}

// rootedCount returns the number of co-optimal alignments of subtree pair
// (a, b) whose roots are matched to each other; zero when every optimum
// gaps a root.
func (c *counter) rootedCount(a, b int) float64 {
	e := c.e
	if v := c.rooted[a*e.n+b]; v >= 0 {
		return v
	}
	delta, cb := c.cbTable(a, b)
	stride := e.n + 1
	var v float64
	if almostEqual(e.dist[a*e.n+b], e.repc[a*e.n+b]+delta[(a+1)*stride+b+1]) {
		v = cb[((a+1)*stride+b+1)*2]
	}
	c.rooted[a*e.n+b] = v

	return v
}

// sampleWalk mirrors walk but draws each move proportional to the number
// of co-optimal mappings it leads to, which makes whole mappings uniform.
func (c *counter) sampleWalk(k1, k2, a, b int, rng *rand.Rand, ali *align.Alignment) error {
	e := c.e
	delta, cb := c.cbTable(k1, k2)
	o1, o2 := e.orlX[k1], e.orlY[k2]
	stride := e.n + 1

	const (
		moveDel = iota
		moveIns
		moveRep
		moveJump
	)
	weights := make([]float64, 4)
	s := 0
	for a <= o1 || b <= o2 {
		cur := delta[a*stride+b]
		weights[moveDel], weights[moveIns], weights[moveRep], weights[moveJump] = 0, 0, 0, 0
		if s == 0 && a <= o1 && almostEqual(cur, e.delc[a]+delta[(a+1)*stride+b]) {
			weights[moveDel] = cb[((a+1)*stride+b)*2]
		}
		if b <= o2 && almostEqual(cur, e.insc[b]+delta[a*stride+b+1]) {
			weights[moveIns] = cb[(a*stride+b+1)*2+1]
		}
		if a <= o1 && b <= o2 {
			if e.orlX[a] == o1 && e.orlY[b] == o2 {
				if almostEqual(cur, e.repc[a*e.n+b]+delta[(a+1)*stride+b+1]) {
					weights[moveRep] = cb[((a+1)*stride+b+1)*2]
				}
			} else if almostEqual(cur, e.dist[a*e.n+b]+delta[(e.orlX[a]+1)*stride+e.orlY[b]+1]) {
				weights[moveJump] = c.rootedCount(a, b) * cb[((e.orlX[a]+1)*stride+e.orlY[b]+1)*2]
			}
		}

		switch drawWeighted(rng, weights) {
		case moveDel:
			if weights[moveDel] == 0 {
				return ErrIncompletePath
			}
			ali.Append(a, align.Gap)
			a++
			s = 0
		case moveIns:
			if weights[moveIns] == 0 {
				return ErrIncompletePath
			}
			ali.Append(align.Gap, b)
			b++
			s = 1
		case moveRep:
			if weights[moveRep] == 0 {
				return ErrIncompletePath
			}
			ali.Append(a, b)
			a++
			b++
			s = 0
		default:
			if weights[moveJump] == 0 {
				return ErrIncompletePath
			}
			ali.Append(a, b)
			if err := c.sampleWalk(a, b, a+1, b+1, rng, ali); err != nil {
				return err
			}
			a = e.orlX[a] + 1
			b = e.orlY[b] + 1
			s = 0
		}
	}

	return nil
}

// BacktraceStochastic draws one co-optimal alignment uniformly at random
// over all distinct co-optimal tree mappings. rng == nil uses the shared
// global source.
func BacktraceStochastic[T any](xNodes []T, xAdj [][]int, yNodes []T, yAdj [][]int, delta align.Delta[T], rng *rand.Rand) (align.Alignment, error) {
	if err := validateTree(len(xNodes), xAdj); err != nil {
		return nil, err
	}
	if err := validateTree(len(yNodes), yAdj); err != nil {
		return nil, err
	}
	var ali align.Alignment
	if gapOnly(&ali, len(xNodes), len(yNodes)) {
		return ali, nil
	}
	e, err := newEngine(xNodes, xAdj, yNodes, yAdj, delta)
	if err != nil {
		return nil, err
	}
	if err = newCounter(e).sampleWalk(0, 0, 0, 0, rng, &ali); err != nil {
		return nil, err
	}

	return ali, nil
}

// BacktraceMatrix summarizes all co-optimal tree mappings. It returns:
//
//   - P — (m+1)×(n+1); P[i][j] is the probability that a uniformly drawn
//     co-optimal mapping aligns x node i with y node j; the last column
//     holds deletion mass, the last row insertion mass
//   - K — m×n per-pair mapping counts, P[:m][:n] = K/k
//   - k — the total number of co-optimal mappings
//
// Counts are reported as float64 to avoid overflow on large trees.
func BacktraceMatrix[T any](xNodes []T, xAdj [][]int, yNodes []T, yAdj [][]int, delta align.Delta[T]) (P, K [][]float64, k float64, err error) {
	if err = validateTree(len(xNodes), xAdj); err != nil {
		return nil, nil, 0, err
	}
	if err = validateTree(len(yNodes), yAdj); err != nil {
		return nil, nil, 0, err
	}
	m, n := len(xNodes), len(yNodes)
	if m == 0 || n == 0 {
		return gapOnlyMatrix(m, n)
	}
	e, err := newEngine(xNodes, xAdj, yNodes, yAdj, delta)
	if err != nil {
		return nil, nil, 0, err
	}

	c := newCounter(e)
	repK := make([]float64, m*n)
	delK := make([]float64, m)
	insK := make([]float64, n)
	k = c.accumulate(repK, delK, insK)

	P = make([][]float64, m+1)
	for i := range P {
		P[i] = make([]float64, n+1)
	}
	K = make([][]float64, m)
	for i := 0; i < m; i++ {
		K[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			K[i][j] = repK[i*n+j]
			P[i][j] = repK[i*n+j] / k
		}
		P[i][n] = delK[i] / k
	}
	for j := 0; j < n; j++ {
		P[m][j] = insK[j] / k
	}

	return P, K, k, nil
}

// gapOnlyMatrix is the degenerate matrix result for an empty-tree side.
func gapOnlyMatrix(m, n int) (P, K [][]float64, k float64, err error) {
	P = make([][]float64, m+1)
	for i := range P {
		P[i] = make([]float64, n+1)
	}
	for i := 0; i < m; i++ {
		P[i][n] = 1
	}
	for j := 0; j < n; j++ {
		P[m][j] = 1
	}
	K = make([][]float64, m)
	for i := range K {
		K[i] = make([]float64, n)
	}

	return P, K, 1, nil
}

// accumulate distributes the co-optimal mapping mass over node pairs and
// gaps. Pairs are processed in row-major order: a jump discovered inside
// one pair always seeds a pair that is strictly later in that order, with
// the seed scaled by the outer prefix and suffix counts.
func (c *counter) accumulate(repK, delK, insK []float64) (total float64) {
	e := c.e
	stride := e.n + 1

	// seeds[pair] is the pending prefix·suffix mass for the pair's walk;
	// the root pair starts at its own table origin, jumped pairs start just
	// past their matched roots.
	seeds := make(map[[2]int]float64)
	seeds[[2]int{0, 0}] = 1

	var k1, k2 int
	for k1 = 0; k1 < e.m; k1++ {
		for k2 = 0; k2 < e.n; k2++ {
			seed, ok := seeds[[2]int{k1, k2}]
			if !ok || seed == 0 {
				continue
			}
			delta, cb := c.cbTable(k1, k2)
			o1, o2 := e.orlX[k1], e.orlY[k2]

			startA, startB := k1, k2
			if k1 != 0 || k2 != 0 {
				startA, startB = k1+1, k2+1
			} else {
				total = cb[(0*stride+0)*2] // mapping count of the whole tree pair
			}

			// Forward mass per cell and entry state.
			f := make([]float64, len(cb))
			f[(startA*stride+startB)*2] = seed
			for a := startA; a <= o1+1; a++ {
				for b := startB; b <= o2+1; b++ {
					cur := delta[a*stride+b]
					for s := 0; s <= 1; s++ {
						mass := f[(a*stride+b)*2+s]
						if mass == 0 {
							continue
						}
						if s == 0 && a <= o1 && almostEqual(cur, e.delc[a]+delta[(a+1)*stride+b]) {
							delK[a] += mass * cb[((a+1)*stride+b)*2]
							f[((a+1)*stride+b)*2] += mass
						}
						if b <= o2 && almostEqual(cur, e.insc[b]+delta[a*stride+b+1]) {
							insK[b] += mass * cb[(a*stride+b+1)*2+1]
							f[(a*stride+b+1)*2+1] += mass
						}
						if a > o1 || b > o2 {
							continue
						}
						if e.orlX[a] == o1 && e.orlY[b] == o2 {
							if almostEqual(cur, e.repc[a*e.n+b]+delta[(a+1)*stride+b+1]) {
								repK[a*e.n+b] += mass * cb[((a+1)*stride+b+1)*2]
								f[((a+1)*stride+b+1)*2] += mass
							}
						} else if almostEqual(cur, e.dist[a*e.n+b]+delta[(e.orlX[a]+1)*stride+e.orlY[b]+1]) {
							rc := c.rootedCount(a, b)
							if rc == 0 {
								continue
							}
							suffix := cb[((e.orlX[a]+1)*stride+e.orlY[b]+1)*2]
							repK[a*e.n+b] += mass * rc * suffix
							seeds[[2]int{a, b}] += mass * suffix
							f[((e.orlX[a]+1)*stride+e.orlY[b]+1)*2] += mass * rc
						}
					}
				}
			}
		}
	}

	return total
}

// StandardBacktrace is Backtrace under the unit cost kernel.
func StandardBacktrace[T comparable](xNodes []T, xAdj [][]int, yNodes []T, yAdj [][]int) (align.Alignment, error) {
	return Backtrace(xNodes, xAdj, yNodes, yAdj, align.Kron[T])
}

// StandardBacktraceStochastic is BacktraceStochastic under the unit cost
// kernel.
func StandardBacktraceStochastic[T comparable](xNodes []T, xAdj [][]int, yNodes []T, yAdj [][]int, rng *rand.Rand) (align.Alignment, error) {
	return BacktraceStochastic(xNodes, xAdj, yNodes, yAdj, align.Kron[T], rng)
}

// StandardBacktraceMatrix is BacktraceMatrix under the unit cost kernel.
func StandardBacktraceMatrix[T comparable](xNodes []T, xAdj [][]int, yNodes []T, yAdj [][]int) (P, K [][]float64, k float64, err error) {
	return BacktraceMatrix(xNodes, xAdj, yNodes, yAdj, align.Kron[T])
}
