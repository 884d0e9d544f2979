// Package sed computes sequence edit distances (Levenshtein / Wagner–
// Fischer) with deterministic, stochastic and matrix backtracing.
//
// 🚀 What is SED?
//
//	The minimal total cost of turning one sequence into another using
//	per-symbol replacements, deletions and insertions, priced by a cost
//	kernel δ. The DP table is indexed by suffixes:
//
//	  D[m][n] = 0
//	  D[i][j] = min( δ(x[i],y[j]) + D[i+1][j+1],
//	                 δ(x[i], - ) + D[i+1][j],
//	                 δ( - ,y[j]) + D[i][j+1] )
//
//	and the distance is D[0][0].
//
// ✨ Key features:
//   - SED — generic δ-driven distance over any label type
//   - StandardSED / SEDString — unit-cost integer fast paths
//   - Backtrace — one optimal alignment (tie-break: replacement,
//     deletion, insertion)
//   - BacktraceStochastic — a uniformly-drawn co-optimal alignment;
//     options are weighted by backward co-optimal counts, so whole
//     alignments are equiprobable (naive per-step uniform choice is not)
//   - BacktraceMatrix — (P, K, k): marginal probabilities with gap
//     row/column, per-cell co-optimal counts, and the total count
//
// ⚙️ Usage:
//
//	d, err := sed.SED(x, y, align.Kron[byte])
//	ali, err := sed.Backtrace(x, y, delta)
//
// Performance: O(m·n) time and memory for distance and all backtraces.
// Co-optimality of float costs is decided with a relative+absolute 1e-9
// tolerance; the integer fast paths compare exactly.
package sed
