// Package uted computes the constrained unordered tree edit distance:
// sibling order carries no meaning, so children are matched by a
// minimum-cost assignment instead of an ordered forest alignment.
//
// 🚀 How does it work?
//
//	Nodes are processed bottom-up. For a node pair (i, j) with children
//	c_1..c_p and d_1..d_q, three options compete:
//
//	  match:    δ(x_i, y_j) + Munkres assignment over the children — a
//	            (p+q)×(p+q) matrix with subtree distances in the match
//	            block, whole-subtree gap costs on the two diagonals, +Inf
//	            elsewhere and a zero filler block
//	  delete i: δ(x_i, -) + the best child takes over against j, all
//	            other child subtrees pay their deletion cost
//	  insert j: δ(-, y_j) + symmetric with one child of j taking over
//
//	The distance is D[0][0].
//
// ✨ Key features:
//   - UTED — distance under any cost kernel (nil means the unit kernel)
//   - Backtrace — one optimal alignment; ties break match, delete,
//     insert; tuples follow DFS order of the left tree with insertion
//     chains merged in at their local position
//
// The "constrained" in the name is load-bearing: a deleted node hands its
// entire remaining child set to gaps except for the single child that
// takes over, which keeps the problem polynomial (general unordered TED
// is NP-hard).
//
// Performance: O(Σ over node pairs of (p+q)³) time via the Hungarian
// algorithm at every pair, O(m·n) memory.
package uted
