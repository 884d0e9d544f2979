// Package ted computes the ordered tree edit distance (Zhang–Shasha) with
// deterministic, stochastic and matrix backtracing.
//
// 🚀 What is TED?
//
//	The minimal total cost of turning one rooted ordered labeled tree
//	into another via node replacements, deletions and insertions.
//	Trees are given as (nodes, adj) with indices in depth-first
//	pre-order from root 0, so a subtree spans the contiguous interval
//	[i, orl(i)] where orl(i) is i's outermost right leaf descendant.
//
//	Zhang–Shasha decomposes both trees at their keyroots — nodes whose
//	outermost right leaf differs from their parent's — and fills one
//	permanent table D of pairwise subtree distances plus a temporary
//	forest table per keyroot pair:
//
//	  whole subtrees:  Δ[i][j] = min(del, ins, δ(x[i],y[j]) + Δ[i+1][j+1])
//	                   and D[i][j] ← Δ[i][j]
//	  partial forests: Δ[i][j] = min(del, ins, D[i][j] + Δ[orl(i)+1][orl(j)+1])
//
// ✨ Key features:
//   - TED — generic δ-driven distance over any label type
//   - StandardTED — unit-cost integer fast path
//   - OutermostRightLeaves / Keyroots — the exported decomposition helpers
//   - Backtrace — one optimal alignment; ties break deletion, insertion,
//     replacement/subtree-match, which reproduces the reference behavior
//   - BacktraceStochastic / BacktraceMatrix — uniform over distinct
//     co-optimal tree mappings: gap runs are canonicalized (no deletion
//     directly after an insertion) and a subtree jump stands for matching
//     the two subtree roots, so every mapping is counted exactly once
//
// Performance: O(m·n·|keyroots_x|·|keyroots_y|) worst-case time, O(m·n)
// memory per forest table. Co-optimality of float costs uses the shared
// relative+absolute 1e-9 tolerance.
package ted
