package partition_test

import (
	"testing"

	"github.com/katalvlaran/gerrysim/partition"
	"github.com/katalvlaran/gerrysim/unitgraph"
)

// BenchmarkNew measures seeded multi-source growth on a 50×50 grid with
// 10 districts.
// Complexity: O(N + E) expected
func BenchmarkNew(b *testing.B) {
	g, err := unitgraph.NewGrid(50, 50)
	if err != nil {
		b.Fatalf("setup NewGrid failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := partition.New(g, 10, partition.WithSeed(int64(i+1))); err != nil {
			b.Fatalf("New failed: %v", err)
		}
	}
}

// BenchmarkReassign measures the O(1) move primitive by ping-ponging one
// unit between two districts.
func BenchmarkReassign(b *testing.B) {
	g, err := unitgraph.NewGrid(50, 50)
	if err != nil {
		b.Fatalf("setup NewGrid failed: %v", err)
	}
	p, err := partition.New(g, 10, partition.WithSeed(1))
	if err != nil {
		b.Fatalf("setup New failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := p.Reassign(0, i%p.K()); err != nil {
			b.Fatalf("Reassign failed: %v", err)
		}
	}
}
