package ted_test

import (
	"testing"

	"github.com/katalvlaran/edist/align"
	"github.com/katalvlaran/edist/ted"
)

// BenchmarkTED_Generic measures the δ-driven distance on the 201-node
// caterpillar pair (101 keyroots per tree).
func BenchmarkTED_Generic(b *testing.B) {
	nodes, adj := caterpillar(100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ted.TED(nodes, adj, nodes, adj, align.Kron[string]); err != nil {
			b.Fatalf("TED failed: %v", err)
		}
	}
}

// BenchmarkTED_Standard measures the integer fast path on the same pair.
func BenchmarkTED_Standard(b *testing.B) {
	nodes, adj := caterpillar(100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ted.StandardTED(nodes, adj, nodes, adj); err != nil {
			b.Fatalf("StandardTED failed: %v", err)
		}
	}
}

// BenchmarkTED_Backtrace measures alignment reconstruction on the running
// example pair.
func BenchmarkTED_Backtrace(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := ted.Backtrace(yNodes, yAdj, zNodes, zAdj, align.Kron[string]); err != nil {
			b.Fatalf("Backtrace failed: %v", err)
		}
	}
}
