// Package excitable implements a cellular automaton of excitable tissue:
// cells fire when enough orthogonal neighbours are active, stay refractory
// for a per-cell period and can pace themselves.
package excitable

import (
	"errors"
	"fmt"
	"math"

	"excitable-cells/internal/core"
)

// State is the externally visible phase of a cell.
type State uint8

const (
	Resting State = iota
	Active
	Refractory
)

func (s State) String() string {
	switch s {
	case Resting:
		return "resting"
	case Active:
		return "active"
	case Refractory:
		return "refractory"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

var (
	// ErrInvalidDimension is returned when a lattice is requested with a
	// non-positive width or height.
	ErrInvalidDimension = errors.New("excitable: invalid lattice dimension")
	// ErrInvalidParameter is returned for default cell timings that are
	// negative, out of range, or a non-positive refractory period.
	ErrInvalidParameter = errors.New("excitable: invalid cell parameter")
)

// RandSource supplies the uniform integer draws used for excitation
// thresholds. *math/rand/v2.Rand and *core.RNG both satisfy it.
type RandSource interface {
	IntN(n int) int
}

// GridConfig holds the lattice shape and the per-cell defaults every cell
// starts with.
type GridConfig struct {
	Cols, Rows     int
	RefractoryTime int
	ExciteTime     int
	PreexciteTime  int
	PaceTime       int
}

// DefaultGridConfig returns a configuration with the standard timings for the
// given lattice.
func DefaultGridConfig(cols, rows, refractoryTime int) GridConfig {
	return GridConfig{
		Cols:           cols,
		Rows:           rows,
		RefractoryTime: refractoryTime,
		ExciteTime:     10,
	}
}

func (c GridConfig) validate() error {
	if c.Cols <= 0 || c.Rows <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimension, c.Cols, c.Rows)
	}
	if c.RefractoryTime <= 0 || c.RefractoryTime > math.MaxUint16 {
		return fmt.Errorf("%w: refractory time %d", ErrInvalidParameter, c.RefractoryTime)
	}
	for _, v := range [...]struct {
		name  string
		value int
	}{
		{"excite time", c.ExciteTime},
		{"preexcite time", c.PreexciteTime},
		{"pace time", c.PaceTime},
	} {
		if v.value < 0 || v.value > math.MaxUint16 {
			return fmt.Errorf("%w: %s %d", ErrInvalidParameter, v.name, v.value)
		}
	}
	return nil
}

// Grid owns the lattice of cells as parallel slices indexed by i + j*cols.
// It is not safe for concurrent use; edits and steps must be serialized by
// the caller.
type Grid struct {
	lat core.Lattice
	cfg GridConfig

	state          []State
	nextState      []State
	active         []bool
	time           []uint16
	refractoryTime []uint16
	exciteTime     []uint16
	preexciteTime  []uint16
	paceTime       []uint16
	dead           []bool

	neighbors [][]int

	rand  RandSource
	noise Noise2D
}

// New creates a cols x rows lattice where every cell rests with the given
// refractory period and the standard excite/preexcite/pace defaults.
func New(cols, rows, refractoryTime int) (*Grid, error) {
	return NewWithConfig(DefaultGridConfig(cols, rows, refractoryTime))
}

// NewWithConfig creates a lattice using cfg for shape and per-cell defaults.
func NewWithConfig(cfg GridConfig) (*Grid, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	lat := core.Lattice{W: cfg.Cols, H: cfg.Rows}
	total := lat.Len()
	g := &Grid{
		lat:            lat,
		cfg:            cfg,
		state:          make([]State, total),
		nextState:      make([]State, total),
		active:         make([]bool, total),
		time:           make([]uint16, total),
		refractoryTime: make([]uint16, total),
		exciteTime:     make([]uint16, total),
		preexciteTime:  make([]uint16, total),
		paceTime:       make([]uint16, total),
		dead:           make([]bool, total),
		neighbors:      lat.NeighborTable(),
		rand:           core.NewRNG(1),
		noise:          NewSimplexNoise(1),
	}
	g.Reset()
	return g, nil
}

// Reset returns every cell to rest with the construction defaults. Dead
// cells are revived.
func (g *Grid) Reset() {
	fill(g.state, Resting)
	fill(g.nextState, Resting)
	fill(g.active, false)
	fill(g.time, 0)
	fill(g.refractoryTime, uint16(g.cfg.RefractoryTime))
	fill(g.exciteTime, uint16(g.cfg.ExciteTime))
	fill(g.preexciteTime, uint16(g.cfg.PreexciteTime))
	fill(g.paceTime, uint16(g.cfg.PaceTime))
	fill(g.dead, false)
}

func fill[T any](s []T, v T) {
	for i := range s {
		s[i] = v
	}
}

// SetRandSource replaces the source of excitation threshold draws.
func (g *Grid) SetRandSource(src RandSource) {
	if src != nil {
		g.rand = src
	}
}

// SetNoise replaces the coherent noise used by SetRefractoryNoise.
func (g *Grid) SetNoise(n Noise2D) {
	if n != nil {
		g.noise = n
	}
}

// Config returns the configuration the grid was built with.
func (g *Grid) Config() GridConfig { return g.cfg }

// Cols returns the lattice width.
func (g *Grid) Cols() int { return g.lat.W }

// Rows returns the lattice height.
func (g *Grid) Rows() int { return g.lat.H }

// Len returns the number of cells.
func (g *Grid) Len() int { return g.lat.Len() }

// CellIndex returns the linear index of (i, j).
func (g *Grid) CellIndex(i, j int) int { return g.lat.Index(i, j) }

// IsValidPosition reports whether (i, j) is on the lattice.
func (g *Grid) IsValidPosition(i, j int) bool { return g.lat.InBounds(i, j) }

// Neighbors returns the precomputed orthogonal neighbours of (i, j). The
// returned slice must not be modified.
func (g *Grid) Neighbors(i, j int) []int {
	if !g.lat.InBounds(i, j) {
		return nil
	}
	return g.neighbors[g.lat.Index(i, j)]
}

// The accessors below expose the backing slices directly so renderers can
// read them without copying. Writes through them bypass clamping.

func (g *Grid) State() []State { return g.state }
func (g *Grid) NextState() []State { return g.nextState }
func (g *Grid) Active() []bool { return g.active }
func (g *Grid) Time() []uint16 { return g.time }
func (g *Grid) RefractoryTime() []uint16 { return g.refractoryTime }
func (g *Grid) ExciteTime() []uint16 { return g.exciteTime }
func (g *Grid) PreexciteTime() []uint16 { return g.preexciteTime }
func (g *Grid) PaceTime() []uint16 { return g.paceTime }
func (g *Grid) Dead() []bool { return g.dead }

// ActiveCount returns the number of cells in their excitation lifecycle.
func (g *Grid) ActiveCount() int {
	n := 0
	for _, a := range g.active {
		if a {
			n++
		}
	}
	return n
}

// CountState returns the number of cells whose visible state is s.
func (g *Grid) CountState(s State) int {
	n := 0
	for _, v := range g.state {
		if v == s {
			n++
		}
	}
	return n
}

// Step advances the lattice by one tick. Every cell decides its next state
// from the pre-step snapshot of state; the snapshot is replaced only once
// all cells have been visited.
func (g *Grid) Step() {
	copy(g.nextState, g.state)

	w, h := g.lat.W, g.lat.H
	for i := 0; i < w; i++ {
		for j := 0; j < h; j++ {
			idx := i + j*w
			if g.dead[idx] {
				continue
			}
			if g.active[idx] {
				g.advance(idx)
				continue
			}
			if g.paceTime[idx] > 0 {
				if g.time[idx] >= g.paceTime[idx] {
					g.ignite(idx)
					continue
				}
				g.time[idx]++
			}
			excited := 0
			for _, n := range g.neighbors[idx] {
				if g.state[n] == Active {
					excited++
				}
			}
			if excited >= g.rand.IntN(3)+1 {
				g.ignite(idx)
			}
		}
	}

	copy(g.state, g.nextState)
}

// advance moves an active cell one tick through its lifecycle. Recovery
// leaves time as it is; ignition always zeroes it again.
func (g *Grid) advance(idx int) {
	t := g.time[idx]
	if t >= g.refractoryTime[idx] {
		g.active[idx] = false
		g.nextState[idx] = Resting
		return
	}
	switch {
	case t >= g.exciteTime[idx]:
		g.nextState[idx] = Refractory
	case t >= g.preexciteTime[idx]:
		g.nextState[idx] = Active
	default:
		g.nextState[idx] = Resting
	}
	g.time[idx] = t + 1
}

func (g *Grid) ignite(idx int) {
	g.active[idx] = true
	g.time[idx] = 0
}
