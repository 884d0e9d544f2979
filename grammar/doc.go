// Package grammar defines the regular grammars that drive algebraic
// dynamic programming (ADP) edit distances.
//
// 🚀 What is an ADP grammar?
//
//	A set of nonterminals ("states") with typed edit transitions between
//	them. Three transition categories exist:
//
//	  • replacement — consumes one symbol from both inputs
//	  • deletion    — consumes one symbol from the left input
//	  • insertion   — consumes one symbol from the right input
//
//	Each transition carries an operation name; the ADP kernel prices the
//	consumed symbols with the cost kernel registered for that name. A
//	derivation is accepting when both inputs are exhausted in an
//	accepting nonterminal.
//
// ✨ Key features:
//   - appenders auto-register nonterminals and operations in declaration
//     order — declaration order is the ADP deterministic tie-break order
//   - AdjacencyLists compiles all names to dense integer indices, so the
//     ADP inner loop never touches a string
//   - InverseAdjacencyLists keys the same edges by target nonterminal for
//     backward induction
//
// ⚙️ Usage:
//
//	g := grammar.New("A", []string{"A"})
//	g.AppendReplacement("A", "A", "rep")
//	g.AppendDeletion("A", "A", "del")
//	g.AppendInsertion("A", "A", "ins")
//	adj, err := g.AdjacencyLists()
//
// Compilation fails with ErrUnknownSymbol when an accepting nonterminal
// was never registered, and with ErrDuplicateOperation when one operation
// name appears in more than one category.
package grammar
