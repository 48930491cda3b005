package core

import (
	"slices"
	"testing"
)

func TestLatticeIndex(t *testing.T) {
	l := Lattice{W: 7, H: 3}
	for j := 0; j < l.H; j++ {
		for i := 0; i < l.W; i++ {
			idx := l.Index(i, j)
			if idx != i+j*7 {
				t.Fatalf("Index(%d,%d) = %d", i, j, idx)
			}
		}
	}
	if l.InBounds(7, 0) || l.InBounds(0, 3) || l.InBounds(-1, 1) || !l.InBounds(6, 2) {
		t.Fatal("InBounds disagrees with the lattice shape")
	}
}

func TestLatticeNeighbors(t *testing.T) {
	l := Lattice{W: 4, H: 4}
	if got := l.Neighbors(0, 0); !slices.Equal(got, []int{l.Index(0, 1), l.Index(1, 0)}) {
		t.Fatalf("corner neighbours = %v", got)
	}
	if got := len(l.Neighbors(2, 0)); got != 3 {
		t.Fatalf("edge has %d neighbours", got)
	}
	if got := len(l.Neighbors(1, 2)); got != 4 {
		t.Fatalf("interior has %d neighbours", got)
	}

	table := l.NeighborTable()
	if len(table) != l.Len() {
		t.Fatalf("table has %d rows", len(table))
	}
	total := 0
	for _, row := range table {
		total += len(row)
	}
	// 4 corners x2 + 8 edges x3 + 4 interior x4
	if total != 48 {
		t.Fatalf("neighbour table holds %d links, want 48", total)
	}
}

func TestLatticeSingleCell(t *testing.T) {
	l := Lattice{W: 1, H: 1}
	if n := l.Neighbors(0, 0); len(n) != 0 {
		t.Fatalf("single cell has neighbours %v", n)
	}
}
