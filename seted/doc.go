// Package seted computes the set edit distance: the cheapest way to turn
// one multiset of labels into another, ignoring order entirely.
//
// 🚀 How does it work?
//
//	One minimum-cost assignment over the (m+n)×(m+n) embedding decides
//	everything: the m×n match block holds δ(x[i], y[j]), the deletion and
//	insertion diagonals hold the per-element gap costs, every other gap
//	cell is +Inf and the filler block is zero. The distance is the cost
//	of the optimal assignment.
//
// ✨ Key features:
//   - SetED — distance under any cost kernel (nil means the unit kernel)
//   - Backtrace — matched pairs and deletions in left order, then
//     insertions in right order
//
// Performance: O((m+n)³) time via the Hungarian algorithm.
package seted
