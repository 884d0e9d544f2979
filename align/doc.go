// Package align provides the alignment model shared by every edit-distance
// kernel in edist, plus edit scripts derived from alignments.
//
// 🚀 What is an alignment?
//
//	An ordered interleaving of two sequences' positions with gaps:
//
//	  x = a b c d e        tuples: (0,-1) (1,0) (2,-1) (3,1) (4,2) (-1,3)
//	  y =   b   d e f
//
//	Tuple (i, j) aligns x[i] with y[j]; (i, -1) deletes x[i]; (-1, j)
//	inserts y[j]. ADP kernels additionally label every tuple with the
//	grammar operation that produced it.
//
// ✨ Key features:
//   - Cost / CostWithOps — price an alignment under any cost kernel
//   - Delta — the pairwise cost kernel type; nil arguments denote gaps
//   - Scripts — Replacement/Deletion/Insertion primitives, convertible
//     from alignments so that script.Apply(x) == y
//
// Invariants (holding for every kernel-produced alignment):
//   - non-negative left indices are strictly increasing, likewise right
//   - a tuple never has both indices negative
//
// See the tests for round-trip properties and rendering examples.
package align
