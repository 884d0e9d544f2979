// Package ted: sentinel errors, tree validation and numeric helpers.
package ted

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// Sentinel errors for tree inputs and backtrace walks.
var (
	// ErrShapeMismatch indicates an adjacency list whose length differs from
	// the node list, or node indices that do not follow depth-first
	// pre-order from root 0.
	ErrShapeMismatch = errors.New("ted: tree shape mismatch")

	// ErrIncompletePath indicates a backtrace walk got stuck; with a pure
	// cost kernel this cannot happen.
	ErrIncompletePath = errors.New("ted: backtrace walk incomplete")
)

// validateTree checks that adj matches the node count and that a DFS from
// root 0 visits exactly 0, 1, ..., n-1 in order (pre-order indexing).
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

// validCost reports whether a kernel result satisfies the numeric policy;
// the comparison is false for NaN as well as for negative values.
func validCost(c float64) bool { return c >= 0 }

// almostEqual reports co-optimality of two costs under the shared
// relative+absolute tolerance.
func almostEqual(a, b float64) bool {
	const eps = 1e-9
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
