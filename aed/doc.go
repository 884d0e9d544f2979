// Package aed computes the affine edit distance: gaps pay a full opening
// cost once and a cheaper extension cost afterwards.
//
// 🚀 How does it work?
//
//	AED is a prebuilt ADP grammar run on the generic engine:
//
//	  A     --rep-->   A        (aligned symbols)
//	  A     --del-->   Skdel    (open a deletion gap)
//	  A     --ins-->   Skins    (open an insertion gap)
//	  Skdel --rep-->   A        (close the gap)
//	  Skdel --skdel--> Skdel    (extend the gap at half price)
//	  Skins --rep-->   A
//	  Skins --skins--> Skins
//
//	with all three states accepting. Default costs: the unit kernel for
//	rep/del/ins and 0.5 for the extensions skdel/skins.
//
// ✨ Key features:
//   - AED — distance under the default affine costs
//   - Backtrace / BacktraceStochastic — labeled alignments; extension
//     tuples carry "skdel"/"skins"
//   - BacktraceMatrix — the ADP tensors folded into one (m+2)×(n+2)
//     matrix: rows m and m+1 hold the ins/skins mass per right position,
//     columns n and n+1 the del/skdel mass per left position
//
// Use Grammar and DefaultDeltas directly with package adp to customize
// the costs while keeping the affine state machine.
package aed
