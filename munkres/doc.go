// Package munkres solves the minimum-cost assignment problem on square
// cost matrices (Hungarian algorithm, also known as Munkres or Kuhn–Munkres).
//
// 🚀 What is the assignment problem?
//
//	Given an n×n cost matrix C, find a permutation π minimizing
//	Σ C[i][π(i)] — the cheapest perfect matching between rows and columns.
//
// ✨ Key features:
//   - +Inf entries mark forbidden pairings and are never selected while a
//     finite assignment exists
//   - zero rows/blocks are handled exactly (the tree and set edit
//     distances embed rectangular problems into square matrices padded
//     with zero filler blocks and Inf-forbidden regions)
//   - O(n³) via dual potentials and augmenting paths
//
// ⚙️ Usage:
//
//	pi, err := munkres.Munkres(C)   // pi[i] = column assigned to row i
//
// ErrDegenerateAssignment is returned when no finite assignment exists
// (e.g. an all-Inf row), ErrNonSquare on ragged or non-square input, and
// ErrInvalidCost on NaN entries.
package munkres
