package core

// Lattice describes a fixed rectangular grid addressed by (i, j) with a
// column-fastest linear index. It never wraps at the edges.
type Lattice struct {
	W, H int
}

// Len reports the number of cells in the lattice.
func (l Lattice) Len() int { return l.W * l.H }

// Index returns the linear slice index for coordinates (i, j).
func (l Lattice) Index(i, j int) int { return i + j*l.W }

// InBounds reports whether (i, j) lies on the lattice.
func (l Lattice) InBounds(i, j int) bool {
	return i >= 0 && i < l.W && j >= 0 && j < l.H
}

// vonNeumann lists the orthogonal offsets in left, down, right, up order.
var vonNeumann = [4][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}

// Neighbors returns the indices of the orthogonally adjacent cells of (i, j)
// that lie on the lattice. Edge cells have three, corners two.
func (l Lattice) Neighbors(i, j int) []int {
	out := make([]int, 0, len(vonNeumann))
	for _, d := range vonNeumann {
		ni, nj := i+d[0], j+d[1]
		if !l.InBounds(ni, nj) {
			continue
		}
		out = append(out, l.Index(ni, nj))
	}
	return out
}

// NeighborTable precomputes Neighbors for every cell. The result is indexed
// by linear cell index.
func (l Lattice) NeighborTable() [][]int {
	table := make([][]int, l.Len())
	for j := 0; j < l.H; j++ {
		for i := 0; i < l.W; i++ {
			table[l.Index(i, j)] = l.Neighbors(i, j)
		}
	}
	return table
}
