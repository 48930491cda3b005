package excitable

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrUnknownScenario is returned when a scenario name is not registered.
var ErrUnknownScenario = errors.New("excitable: unknown scenario")

// Circle is a disc in lattice coordinates.
type Circle struct {
	I, J, R float64
}

// Stamp is one circle assignment applied when a scenario is set up.
type Stamp struct {
	Circle
	Props Props
}

// NoiseSpec parameterises SetRefractoryNoise.
type NoiseSpec struct {
	Scale   float64
	Percent float64
}

// Scenario is a named starting configuration for the tissue.
type Scenario struct {
	Name        string
	Description string

	Cols, Rows     int
	RefractoryTime int

	TPS           int
	StepsPerFrame int

	// Noise, when set, assigns heterogeneous refractory periods before any
	// stamp is applied.
	Noise *NoiseSpec
	// Pacer is the circle rewritten by the pace_time parameter. PaceTime is
	// its initial period; zero leaves the circle untouched until adjusted.
	Pacer    *Circle
	PaceTime int

	Stamps []Stamp
}

const (
	defaultTPS           = 20
	defaultStepsPerFrame = 5
)

var corner = Circle{I: 1, J: 1, R: 2.5}

func pacemaker(period int) Stamp {
	return Stamp{Circle: corner, Props: Props{FieldPaceTime: period, FieldActive: 1, FieldState: int(Active)}}
}

var scenarios = map[string]Scenario{
	"tiny": {
		Name:           "tiny",
		Description:    "small resting sheet; click to start a wave",
		Cols:           15,
		Rows:           15,
		RefractoryTime: 30,
		TPS:            8,
		StepsPerFrame:  1,
	},
	"pace": {
		Name:           "pace",
		Description:    "corner pacemaker driving regular wavefronts",
		Cols:           20,
		Rows:           20,
		RefractoryTime: 100,
		TPS:            defaultTPS,
		StepsPerFrame:  defaultStepsPerFrame,
		Pacer:          &Circle{I: 5, J: 5, R: 2},
		Stamps:         []Stamp{pacemaker(160)},
	},
	"reentry1": {
		Name:           "reentry1",
		Description:    "one-way block around a dead core sets up a reentry circuit",
		Cols:           30,
		Rows:           30,
		RefractoryTime: 100,
		TPS:            defaultTPS,
		StepsPerFrame:  defaultStepsPerFrame,
		Pacer:          &corner,
		PaceTime:       250,
		Stamps: []Stamp{
			{Circle: Circle{I: 10, J: 1, R: 2.5}, Props: Props{FieldActive: 1, FieldState: int(Active)}},
			{Circle: Circle{I: 20, J: 8, R: 8.5}, Props: Props{FieldActive: 1, FieldState: int(Refractory), FieldTime: 50}},
			{Circle: Circle{I: 15, J: 15, R: 5.5}, Props: Props{FieldDead: 1}},
			pacemaker(250),
		},
	},
	"reentry2": {
		Name:           "reentry2",
		Description:    "short refractory tissue with a long-refractory zone beside a dead core",
		Cols:           30,
		Rows:           30,
		RefractoryTime: 60,
		TPS:            defaultTPS,
		StepsPerFrame:  defaultStepsPerFrame,
		Pacer:          &corner,
		PaceTime:       200,
		Stamps: []Stamp{
			pacemaker(200),
			{Circle: Circle{I: 15, J: 15, R: 6.5}, Props: Props{FieldDead: 1}},
			{Circle: Circle{I: 5, J: 20, R: 10.5}, Props: Props{FieldRefractoryTime: 140}},
		},
	},
	"afib": {
		Name:           "afib",
		Description:    "heterogeneous refractory periods break wavefronts into fibrillation",
		Cols:           80,
		Rows:           80,
		RefractoryTime: 100,
		TPS:            defaultTPS,
		StepsPerFrame:  defaultStepsPerFrame,
		Noise:          &NoiseSpec{Scale: 20, Percent: 40},
		Pacer:          &corner,
		PaceTime:       300,
		Stamps:         []Stamp{pacemaker(300)},
	},
}

// Scenarios lists the built-in scenario names in lexical order.
func Scenarios() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupScenario returns a copy of the named scenario.
func LookupScenario(name string) (Scenario, error) {
	s, ok := scenarios[name]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %q (have %s)", ErrUnknownScenario, name, strings.Join(Scenarios(), ", "))
	}
	s.Stamps = append([]Stamp(nil), s.Stamps...)
	return s, nil
}

// Apply stamps the scenario onto g: noise first, then each stamp in order.
func (s Scenario) Apply(g *Grid) {
	if s.Noise != nil {
		g.SetRefractoryNoise(s.Noise.Scale, s.Noise.Percent)
	}
	for _, st := range s.Stamps {
		g.AssignCircle(st.I, st.J, st.R, st.Props)
	}
}

// ParseStamp reads a stamp written as "i,j,r:field=value,field=value", for
// example "15,15,5.5:dead=1".
func ParseStamp(text string) (Stamp, error) {
	geom, assigns, ok := strings.Cut(text, ":")
	if !ok {
		return Stamp{}, fmt.Errorf("stamp %q: missing ':' before assignments", text)
	}
	coords := strings.Split(geom, ",")
	if len(coords) != 3 {
		return Stamp{}, fmt.Errorf("stamp %q: want i,j,r", text)
	}
	var vals [3]float64
	for k, c := range coords {
		v, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
		if err != nil {
			return Stamp{}, fmt.Errorf("stamp %q: %w", text, err)
		}
		vals[k] = v
	}
	if vals[2] < 0 {
		return Stamp{}, fmt.Errorf("stamp %q: negative radius", text)
	}
	props := Props{}
	for _, kv := range strings.Split(assigns, ",") {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return Stamp{}, fmt.Errorf("stamp %q: assignment %q missing '='", text, kv)
		}
		f, err := ParseField(name)
		if err != nil {
			return Stamp{}, fmt.Errorf("stamp %q: %w", text, err)
		}
		v, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return Stamp{}, fmt.Errorf("stamp %q: %s: %w", text, name, err)
		}
		props[f] = v
	}
	return Stamp{Circle: Circle{I: vals[0], J: vals[1], R: vals[2]}, Props: props}, nil
}
