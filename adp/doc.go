// Package adp implements grammar-driven edit distances via algebraic
// dynamic programming (ADP).
//
// 🚀 What is ADP?
//
//	A regular grammar over "states" decides which edit operations are
//	legal at which point of the alignment. The DP table is indexed by
//	(nonterminal, left position, right position):
//
//	  T[a][m][n] = 0 if a is accepting, +Inf otherwise
//	  T[a][i][j] = min over the transitions leaving a:
//	    replacement (op,b): δ_op(x[i], y[j]) + T[b][i+1][j+1]   (i<m, j<n)
//	    deletion    (op,b): δ_op(x[i],  - ) + T[b][i+1][j]      (i<m)
//	    insertion   (op,b): δ_op( - , y[j]) + T[b][i][j+1]      (j<n)
//
//	The distance is T[start][0][0]; +Inf means no accepting derivation
//	exists (ErrNoAcceptingParse). Plain edit distance, affine-gap
//	distance and skip-cost variants are all instances of this one engine.
//
// ✨ Key features:
//   - Deltas maps operation names to cost kernels; the align.Any ("*")
//     entry broadcasts one kernel to every remaining operation
//   - Backtrace — deterministic, tie-break = declaration order within a
//     category, categories replacement → deletion → insertion; every
//     tuple carries its operation name
//   - BacktraceStochastic — uniform over co-optimal derivations, weighted
//     by backward derivation counts
//   - BacktraceMatrix — per-operation marginal tensors (PRep, PDel, PIns)
//     plus the total derivation count K; the forward-count pass runs by
//     backward induction over the grammar's inverse adjacency lists
//
// Note on counting: K counts every distinct (nonterminal path, index
// path) derivation, so a grammar that reaches the same alignment through
// different states inflates the count. This is the intended, literal
// behavior.
//
// Performance: O(|transitions| · m · n) time, O(|nonterminals| · m · n)
// memory.
package adp
