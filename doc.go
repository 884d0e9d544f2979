// Package edist is a library of edit-distance algorithms over sequences
// and rooted labeled trees, together with their backtracing facilities.
//
// 🚀 What is edist?
//
//	A collection of tightly related dynamic-programming kernels that all
//	share one alignment model:
//
//	  • sed     — sequence edit distance (Wagner–Fischer) + backtraces
//	  • adp     — algebraic dynamic programming: a regular grammar decides
//	              which edit operations are legal in which state
//	  • aed     — affine-gap edit distance, a prebuilt ADP grammar
//	  • ted     — ordered tree edit distance (Zhang–Shasha)
//	  • uted    — constrained unordered tree edit distance
//	  • seted   — set edit distance (order-free sequences)
//	  • munkres — minimum-cost assignment (Hungarian algorithm)
//	  • grammar — ADP grammars and their compiled adjacency lists
//	  • align   — alignments, cost kernels and edit scripts
//
// ✨ Why choose edist?
//
//   - One backtrace framework — sed, adp, aed and ted recover a single
//     optimal alignment, a uniformly sampled co-optimal alignment, and
//     marginal co-optimal alignment matrices from the same forward tables;
//     uted and seted provide the single optimal alignment only
//   - Pure functions — no hidden state, no I/O; every call allocates its
//     own DP tables and releases them with the call frame
//   - Generic label types — cost kernels are plain Go functions over
//     your element type; integer fast paths for the unit-cost cases
//   - Pure Go — no cgo, no hidden dependencies
//
// Quick ASCII example (sequence alignment, unit costs):
//
//	x = a b c d e          alignment:  a→-, b→b, c→-, d→d, e→e, -→f
//	y =   b   d e f        distance:   3
//
// Dive into the per-package doc.go files for recurrences, tie-break rules
// and complexity notes.
package edist
