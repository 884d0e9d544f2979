// Package uted: the constrained unordered tree edit distance and its
// backtrace.
package uted

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/edist/align"
	"github.com/katalvlaran/edist/munkres"
	"github.com/katalvlaran/edist/ted"
)

// Sentinel errors for tree inputs.
var (
	// ErrShapeMismatch indicates an adjacency list whose length differs from
	// the node list, or node indices that do not follow depth-first
	// pre-order from root 0.
	ErrShapeMismatch = errors.New("uted: tree shape mismatch")

	// ErrIncompletePath indicates a backtrace walk got stuck; with a pure
	// cost kernel this cannot happen.
	ErrIncompletePath = errors.New("uted: backtrace walk incomplete")
)

// validCost reports whether a kernel result satisfies the numeric policy;
// the comparison is false for NaN as well as for negative values.
func validCost(c float64) bool { return c >= 0 }

// almostEqual reports co-optimality of two costs under the shared
// relative+absolute tolerance. Two infinities never compare equal, which
// keeps infeasible options (a leaf has no child to take over) out of the
// backtrace.
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

// validateTree checks adjacency length and DFS pre-order indexing.
func validateTree(numNodes int, adj [][]int) error {
	if len(adj) != numNodes {
		return fmt.Errorf("%d nodes but %d adjacency entries: %w", numNodes, len(adj), ErrShapeMismatch)
	}
	if numNodes == 0 {
		return nil
	}
	next := 1
	var walk func(i int) error
	walk = func(i int) error {
		for _, c := range adj[i] {
			if c != next {
				return fmt.Errorf("node %d lists child %d, want %d (non-DFS order): %w", i, c, next, ErrShapeMismatch)
			}
			next++
			if err := walk(c); err != nil {
				return err
			}
		}

		return nil
	}
	if err := walk(0); err != nil {
		return err
	}
	if next != numNodes {
		return fmt.Errorf("DFS from root reaches %d of %d nodes: %w", next, numNodes, ErrShapeMismatch)
	}

	return nil
}

// engine holds the bottom-up tables of one tree pair.
type engine struct {
	m, n       int
	xAdj, yAdj [][]int
	orlX, orlY []int
	delc, insc []float64 // per-node gap costs
	subDel     []float64 // whole-subtree deletion costs
	subIns     []float64 // whole-subtree insertion costs
	repc       []float64 // δ(x[i], y[j]), m×n row-major
	dist       []float64 // D[i][j], m×n row-major
}

// newEngine validates inputs, precomputes costs and fills D bottom-up.
func newEngine[T any](xNodes []T, xAdj [][]int, yNodes []T, yAdj [][]int, delta align.Delta[T]) (*engine, error) {
	m, n := len(xNodes), len(yNodes)
	e := &engine{
		m: m, n: n,
		xAdj: xAdj, yAdj: yAdj,
		orlX: ted.OutermostRightLeaves(xAdj),
		orlY: ted.OutermostRightLeaves(yAdj),
		delc: make([]float64, m),
		insc: make([]float64, n),
		repc: make([]float64, m*n),
		dist: make([]float64, m*n),
	}

	var c float64
	for i := 0; i < m; i++ {
		if c = delta(&xNodes[i], nil); !validCost(c) {
			return nil, fmt.Errorf("uted: delta(x[%d], -) = %g: %w", i, c, align.ErrInvalidCost)
		}
		e.delc[i] = c
	}
	for j := 0; j < n; j++ {
		if c = delta(nil, &yNodes[j]); !validCost(c) {
			return nil, fmt.Errorf("uted: delta(-, y[%d]) = %g: %w", j, c, align.ErrInvalidCost)
		}
		e.insc[j] = c
	}
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			if c = delta(&xNodes[i], &yNodes[j]); !validCost(c) {
				return nil, fmt.Errorf("uted: delta(x[%d], y[%d]) = %g: %w", i, j, c, align.ErrInvalidCost)
			}
			e.repc[i*n+j] = c
		}
	}

	// Whole-subtree gap costs: a subtree spans the contiguous pre-order
	// interval [i, orl(i)].
	e.subDel = make([]float64, m)
	for i := m - 1; i >= 0; i-- {
		e.subDel[i] = e.delc[i]
		for _, ch := range xAdj[i] {
			e.subDel[i] += e.subDel[ch]
		}
	}
	e.subIns = make([]float64, n)
	for j := n - 1; j >= 0; j-- {
		e.subIns[j] = e.insc[j]
		for _, ch := range yAdj[j] {
			e.subIns[j] += e.subIns[ch]
		}
	}

	// Bottom-up over reverse DFS order: children before parents.
	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			d, err := e.pairDistance(i, j)
			if err != nil {
				return nil, err
			}
			e.dist[i*n+j] = d
		}
	}

	return e, nil
}

// childMatrix embeds the child-forest assignment of pair (i, j) into a
// square (p+q)×(p+q) cost matrix: subtree distances in the p×q match
// block, whole-subtree gap costs on the deletion/insertion diagonals,
// +Inf elsewhere and a zero filler block.
func (e *engine) childMatrix(i, j int) [][]float64 {
	cx, cy := e.xAdj[i], e.yAdj[j]
	p, q := len(cx), len(cy)
	size := p + q
	inf := math.Inf(1)
	C := make([][]float64, size)
	for r := range C {
		C[r] = make([]float64, size)
	}
	for a, ca := range cx {
		for b, db := range cy {
			C[a][b] = e.dist[ca*e.n+db]
		}
		for a2 := 0; a2 < p; a2++ {
			if a2 == a {
				C[a][q+a2] = e.subDel[ca]
			} else {
				C[a][q+a2] = inf
			}
		}
	}
	for b2 := 0; b2 < q; b2++ {
		for b, db := range cy {
			if b2 == b {
				C[p+b2][b] = e.subIns[db]
			} else {
				C[p+b2][b] = inf
			}
		}
	}

	return C
}

// matchCost prices the match option of pair (i, j): label replacement plus
// the optimal child assignment.
func (e *engine) matchCost(i, j int) (float64, error) {
	C := e.childMatrix(i, j)
	pi, err := munkres.Munkres(C)
	if err != nil {
		return 0, fmt.Errorf("uted: child assignment at (%d,%d): %w", i, j, err)
	}
	total := e.repc[i*e.n+j]
	for r, c := range pi {
		total += C[r][c]
	}

	return total, nil
}

// deleteCost prices deleting node i: one child subtree takes over against
// j, the remaining child subtrees are deleted wholesale.
func (e *engine) deleteCost(i, j int) float64 {
	best := math.Inf(1)
	var siblings float64
	for _, ch := range e.xAdj[i] {
		siblings += e.subDel[ch]
	}
	for _, ch := range e.xAdj[i] {
		if c := e.dist[ch*e.n+j] + siblings - e.subDel[ch]; c < best {
			best = c
		}
	}

	return e.delc[i] + best
}

// insertCost prices inserting node j, symmetric to deleteCost.
func (e *engine) insertCost(i, j int) float64 {
	best := math.Inf(1)
	var siblings float64
	for _, ch := range e.yAdj[j] {
		siblings += e.subIns[ch]
	}
	for _, ch := range e.yAdj[j] {
		if c := e.dist[i*e.n+ch] + siblings - e.subIns[ch]; c < best {
			best = c
		}
	}

	return e.insc[j] + best
}

// pairDistance resolves the three-way minimum for pair (i, j).
func (e *engine) pairDistance(i, j int) (float64, error) {
	best, err := e.matchCost(i, j)
	if err != nil {
		return 0, err
	}
	if c := e.deleteCost(i, j); c < best {
		best = c
	}
	if c := e.insertCost(i, j); c < best {
		best = c
	}

	return best, nil
}

// resolveDelta substitutes the unit kernel for a nil delta.
func resolveDelta[T comparable](delta align.Delta[T]) align.Delta[T] {
	if delta == nil {
		return align.Kron[T]
	}

	return delta
}

// UTED computes the constrained unordered tree edit distance. A nil delta
// means the unit cost kernel. Node indices must follow depth-first
// pre-order from root 0 (ErrShapeMismatch otherwise).
func UTED[T comparable](xNodes []T, xAdj [][]int, yNodes []T, yAdj [][]int, delta align.Delta[T]) (float64, error) {
	if err := validateTree(len(xNodes), xAdj); err != nil {
		return 0, err
	}
	if err := validateTree(len(yNodes), yAdj); err != nil {
		return 0, err
	}
	delta = resolveDelta(delta)
	m, n := len(xNodes), len(yNodes)
	switch {
	case m == 0 && n == 0:
		return 0, nil
	case m == 0:
		return sumGaps(yNodes, delta, false)
	case n == 0:
		return sumGaps(xNodes, delta, true)
	}
	e, err := newEngine(xNodes, xAdj, yNodes, yAdj, delta)
	if err != nil {
		return 0, err
	}

	return e.dist[0], nil
}

// sumGaps prices a whole tree against the empty tree.
func sumGaps[T any](nodes []T, delta align.Delta[T], left bool) (float64, error) {
	var total, c float64
	for i := range nodes {
		if left {
			c = delta(&nodes[i], nil)
		} else {
			c = delta(nil, &nodes[i])
		}
		if !validCost(c) {
			return 0, fmt.Errorf("uted: delta on node %d = %g: %w", i, c, align.ErrInvalidCost)
		}
		total += c
	}

	return total, nil
}

// Backtrace returns one optimal alignment of the unordered tree pair.
// Ties break match, delete, insert; tuples follow DFS order of the left
// tree with insertion chains merged in at their local position.
func Backtrace[T comparable](xNodes []T, xAdj [][]int, yNodes []T, yAdj [][]int, delta align.Delta[T]) (align.Alignment, error) {
	if err := validateTree(len(xNodes), xAdj); err != nil {
		return nil, err
	}
	if err := validateTree(len(yNodes), yAdj); err != nil {
		return nil, err
	}
	delta = resolveDelta(delta)
	m, n := len(xNodes), len(yNodes)
	var ali align.Alignment
	switch {
	case m == 0:
		for j := 0; j < n; j++ {
			ali.Append(align.Gap, j)
		}
		return ali, nil
	case n == 0:
		for i := 0; i < m; i++ {
			ali.Append(i, align.Gap)
		}
		return ali, nil
	}
	e, err := newEngine(xNodes, xAdj, yNodes, yAdj, delta)
	if err != nil {
		return nil, err
	}
	if err = e.walkPair(0, 0, &ali); err != nil {
		return nil, err
	}

	return ali, nil
}

// emitDeleted appends deletion tuples for the whole subtree rooted at i.
func (e *engine) emitDeleted(i int, ali *align.Alignment) {
	for k := i; k <= e.orlX[i]; k++ {
		ali.Append(k, align.Gap)
	}
}

// emitInserted appends insertion tuples for the whole subtree rooted at j.
func (e *engine) emitInserted(j int, ali *align.Alignment) {
	for k := j; k <= e.orlY[j]; k++ {
		ali.Append(align.Gap, k)
	}
}

// walkPair reconstructs the alignment of pair (i, j) along the option that
// achieved D[i][j].
func (e *engine) walkPair(i, j int, ali *align.Alignment) error {
	cur := e.dist[i*e.n+j]

	// Match: replay the child assignment.
	match, err := e.matchCost(i, j)
	if err != nil {
		return err
	}
	if almostEqual(cur, match) {
		ali.Append(i, j)
		C := e.childMatrix(i, j)
		pi, err := munkres.Munkres(C)
		if err != nil {
			return fmt.Errorf("uted: child assignment at (%d,%d): %w", i, j, err)
		}
		cx, cy := e.xAdj[i], e.yAdj[j]
		p, q := len(cx), len(cy)
		for a, ca := range cx {
			if pi[a] < q {
				if err = e.walkPair(ca, cy[pi[a]], ali); err != nil {
					return err
				}
				continue
			}
			e.emitDeleted(ca, ali)
		}
		// Unmatched right children are those assigned to a filler row;
		// emit their insertion chains in sibling order.
		rowOf := make([]int, p+q)
		for r, col := range pi {
			rowOf[col] = r
		}
		for b, db := range cy {
			if rowOf[b] >= p {
				e.emitInserted(db, ali)
			}
		}

		return nil
	}

	// Delete node i: the cheapest child takes over against j.
	if almostEqual(cur, e.deleteCost(i, j)) {
		ali.Append(i, align.Gap)
		var siblings float64
		for _, ch := range e.xAdj[i] {
			siblings += e.subDel[ch]
		}
		takeOver := -1
		for _, ch := range e.xAdj[i] {
			if almostEqual(cur, e.delc[i]+e.dist[ch*e.n+j]+siblings-e.subDel[ch]) {
				takeOver = ch
				break
			}
		}
		if takeOver < 0 {
			return ErrIncompletePath
		}
		for _, ch := range e.xAdj[i] {
			if ch == takeOver {
				if err = e.walkPair(ch, j, ali); err != nil {
					return err
				}
				continue
			}
			e.emitDeleted(ch, ali)
		}

		return nil
	}

	// Insert node j: symmetric take-over on the right side.
	if almostEqual(cur, e.insertCost(i, j)) {
		ali.Append(align.Gap, j)
		var siblings float64
		for _, ch := range e.yAdj[j] {
			siblings += e.subIns[ch]
		}
		takeOver := -1
		for _, ch := range e.yAdj[j] {
			if almostEqual(cur, e.insc[j]+e.dist[i*e.n+ch]+siblings-e.subIns[ch]) {
				takeOver = ch
				break
			}
		}
		if takeOver < 0 {
			return ErrIncompletePath
		}
		for _, ch := range e.yAdj[j] {
			if ch == takeOver {
				if err = e.walkPair(i, ch, ali); err != nil {
					return err
				}
				continue
			}
			e.emitInserted(ch, ali)
		}

		return nil
	}

	return ErrIncompletePath
}
