// Package munkres: Hungarian algorithm with dual potentials over float64
// costs, tolerating +Inf entries.
package munkres

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for assignment input validation and feasibility.
var (
	// ErrNonSquare indicates a ragged or non-square cost matrix.
	ErrNonSquare = errors.New("munkres: cost matrix is not square")

	// ErrInvalidCost indicates a NaN entry in the cost matrix.
	ErrInvalidCost = errors.New("munkres: cost matrix contains NaN")

	// ErrDegenerateAssignment indicates that no finite assignment exists,
	// e.g. a row or column consisting only of +Inf entries.
	ErrDegenerateAssignment = errors.New("munkres: no finite assignment exists")
)

// Munkres returns a permutation pi minimizing Σ C[i][pi[i]] over the square
// cost matrix C. Entries may be +Inf to forbid a pairing.
//
// The search maintains dual potentials on rows and columns (dual
// feasibility: rowPot[i] + colPot[j] ≤ C[i][j]) and repeatedly grows an
// alternating path along tight edges until an unmatched column is reached,
// then flips the matches along the recorded trail. This is the classic
// augmenting-path formulation of the Hungarian algorithm.
//
// Complexity: O(n³) time, O(n) extra memory.
func Munkres(C [][]float64) ([]int, error) {
	n := len(C)
	for i, row := range C {
		if len(row) != n {
			return nil, fmt.Errorf("row %d has %d columns, want %d: %w", i, len(row), n, ErrNonSquare)
		}
		for j, c := range row {
			if math.IsNaN(c) {
				return nil, fmt.Errorf("entry (%d,%d): %w", i, j, ErrInvalidCost)
			}
		}
	}
	if n == 0 {
		return []int{}, nil
	}

	inf := math.Inf(1)

	// rowPot[i] and colPot[j] are the dual potentials. Edges with
	// rowPot[i]+colPot[j] == C[i][j] are tight and form the equality
	// subgraph the alternating paths walk on.
	rowPot := make([]float64, n+1)
	colPot := make([]float64, n+1)

	// colRow[j] = i means column j is matched with row i; n means unmatched.
	// Index n is a virtual column used to seed each augmenting search.
	colRow := make([]int, n+1)
	for j := range colRow {
		colRow[j] = n
	}

	minSlack := make([]float64, n+1) // minimum slack seen per column
	trail := make([]int, n+1)        // previous column in the alternating path
	visited := make([]bool, n+1)     // columns already on the path

	var i, j, current, next, row int
	var slack, delta float64
	for i = 0; i < n; i++ {
		// Seed the search: the virtual column temporarily holds row i.
		colRow[n] = i
		current = n
		for j = 0; j <= n; j++ {
			minSlack[j] = inf
			trail[j] = n
			visited[j] = false
		}

		// Extend the path until an unmatched real column is reached.
		for colRow[current] != n {
			visited[current] = true
			row = colRow[current]
			delta = inf
			next = 0

			// Find the unvisited column with minimum slack from the current row.
			for j = 0; j < n; j++ {
				if visited[j] {
					continue
				}
				slack = C[row][j] - rowPot[row] - colPot[j]
				if slack < minSlack[j] {
					minSlack[j] = slack
					trail[j] = current
				}
				if minSlack[j] < delta {
					delta = minSlack[j]
					next = j
				}
			}

			// All remaining columns are forbidden: no finite assignment.
			if math.IsInf(delta, 1) {
				return nil, fmt.Errorf("row %d: %w", i, ErrDegenerateAssignment)
			}

			// Shift potentials by delta: path edges stay tight, at least one
			// new edge becomes tight, dual feasibility is preserved.
			for j = 0; j <= n; j++ {
				if visited[j] {
					rowPot[colRow[j]] += delta
					colPot[j] -= delta
				} else {
					minSlack[j] -= delta
				}
			}

			current = next
		}

		// Flip the matching along the recorded trail.
		for current != n {
			previous := trail[current]
			colRow[current] = colRow[previous]
			current = previous
		}
	}

	// Invert col→row into the row→col permutation.
	pi := make([]int, n)
	for j = 0; j < n; j++ {
		pi[colRow[j]] = j
	}

	return pi, nil
}
