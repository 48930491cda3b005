package excitable

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Field names one per-cell attribute that AssignCircle can overwrite.
type Field uint8

const (
	FieldState Field = iota
	FieldNextState
	FieldActive
	FieldTime
	FieldRefractoryTime
	FieldExciteTime
	FieldPreexciteTime
	FieldPaceTime
	FieldDead
)

var fieldNames = [...]string{
	FieldState:          "state",
	FieldNextState:      "nextState",
	FieldActive:         "active",
	FieldTime:           "time",
	FieldRefractoryTime: "refractoryTime",
	FieldExciteTime:     "exciteTime",
	FieldPreexciteTime:  "preexciteTime",
	FieldPaceTime:       "paceTime",
	FieldDead:           "dead",
}

// ErrUnknownField is returned by ParseField for names that match no attribute.
var ErrUnknownField = errors.New("excitable: unknown cell field")

func (f Field) String() string {
	if int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return fmt.Sprintf("Field(%d)", uint8(f))
}

// ParseField resolves an attribute name. Both the camelCase names and their
// snake_case spellings are accepted, case-insensitively.
func ParseField(name string) (Field, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", ""))
	for f, n := range fieldNames {
		if strings.ToLower(n) == key {
			return Field(f), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Props maps attributes to the values AssignCircle writes. Booleans are
// true for any non-zero value, states clamp to [Resting, Refractory] and
// timings clamp to the 16-bit range.
type Props map[Field]int

func (p Props) String() string {
	parts := make([]string, 0, len(p))
	for f := FieldState; f <= FieldDead; f++ {
		if v, ok := p[f]; ok {
			parts = append(parts, fmt.Sprintf("%s=%d", f, v))
		}
	}
	return strings.Join(parts, ",")
}

// AssignCircle overwrites the given attributes of every on-lattice cell whose
// centre lies within radius of (ci, cj). It returns the number of cells
// written. A zero radius selects only the cell at the centre, if the centre
// falls exactly on one.
func (g *Grid) AssignCircle(ci, cj, radius float64, props Props) int {
	if radius < 0 || len(props) == 0 {
		return 0
	}
	written := 0
	for i := int(math.Floor(ci - radius)); float64(i) <= ci+radius; i++ {
		for j := int(math.Floor(cj - radius)); float64(j) <= cj+radius; j++ {
			if !g.lat.InBounds(i, j) {
				continue
			}
			if math.Hypot(ci-float64(i), cj-float64(j)) > radius {
				continue
			}
			idx := g.lat.Index(i, j)
			for f, v := range props {
				g.set(idx, f, v)
			}
			written++
		}
	}
	return written
}

func (g *Grid) set(idx int, f Field, v int) {
	switch f {
	case FieldState:
		g.state[idx] = clampState(v)
	case FieldNextState:
		g.nextState[idx] = clampState(v)
	case FieldActive:
		g.active[idx] = v != 0
	case FieldTime:
		g.time[idx] = clampU16(v)
	case FieldRefractoryTime:
		g.refractoryTime[idx] = clampU16(v)
	case FieldExciteTime:
		g.exciteTime[idx] = clampU16(v)
	case FieldPreexciteTime:
		g.preexciteTime[idx] = clampU16(v)
	case FieldPaceTime:
		g.paceTime[idx] = clampU16(v)
	case FieldDead:
		g.dead[idx] = v != 0
	}
}

func clampState(v int) State {
	if v < int(Resting) {
		return Resting
	}
	if v > int(Refractory) {
		return Refractory
	}
	return State(v)
}

func clampU16(v int) uint16 {
	if v < 0 {
		return 0
	}
	if v > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(v)
}

// Defibrillate restarts the excitation lifecycle of every living cell at
// once. Per-cell parameters and dead cells are left alone.
func (g *Grid) Defibrillate() {
	for idx := range g.active {
		if g.dead[idx] {
			continue
		}
		g.active[idx] = true
		g.time[idx] = 0
	}
}

// HandleActivation excites the cell at (i, j) if it is on the lattice,
// visibly resting and alive. It reports whether the cell was excited.
func (g *Grid) HandleActivation(i, j int) bool {
	if !g.lat.InBounds(i, j) {
		return false
	}
	idx := g.lat.Index(i, j)
	if g.state[idx] != Resting || g.dead[idx] {
		return false
	}
	g.ignite(idx)
	return true
}

// SetRefractoryNoise assigns every cell a refractory period drawn from
// coherent noise sampled at (i/noiseScale, j/noiseScale), blended with the
// 150 tick baseline by noisePercent. A non-positive scale is treated as 1
// and the percentage is clamped to [0, 100].
func (g *Grid) SetRefractoryNoise(noiseScale, noisePercent float64) {
	if noiseScale <= 0 {
		noiseScale = 1
	}
	weight := math.Min(math.Max(noisePercent, 0), 100) / 100
	for i := 0; i < g.lat.W; i++ {
		for j := 0; j < g.lat.H; j++ {
			n := g.noise.Eval2(float64(i)/noiseScale, float64(j)/noiseScale)
			g.refractoryTime[g.lat.Index(i, j)] = RefractoryFromNoise(n, weight)
		}
	}
}
