package excitable

import (
	"fmt"
	"image/color"

	"excitable-cells/internal/core"
)

// Simulation runs a scenario on a Grid and adapts it to core.Sim, keeping a
// palette-encoded display buffer in sync with the lattice.
type Simulation struct {
	cfg  Config
	scn  Scenario
	grid *Grid

	display []uint8

	noise         NoiseSpec
	paceTime      int
	paceSet       bool
	stepsPerFrame int
	tick          int
}

// NewSimulation builds the configured scenario and resets it with the
// config seed.
func NewSimulation(cfg Config) (*Simulation, error) {
	scn, err := LookupScenario(cfg.Scenario)
	if err != nil {
		return nil, err
	}
	gc := GridConfig{
		Cols:           scn.Cols,
		Rows:           scn.Rows,
		RefractoryTime: scn.RefractoryTime,
		ExciteTime:     cfg.ExciteTime,
		PreexciteTime:  cfg.PreexciteTime,
	}
	if cfg.Width > 0 {
		gc.Cols = cfg.Width
	}
	if cfg.Height > 0 {
		gc.Rows = cfg.Height
	}
	if cfg.RefractoryTime > 0 {
		gc.RefractoryTime = cfg.RefractoryTime
	}
	grid, err := NewWithConfig(gc)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scn.Name, err)
	}

	s := &Simulation{
		cfg:           cfg,
		scn:           scn,
		grid:          grid,
		display:       make([]uint8, grid.Len()),
		paceTime:      scn.PaceTime,
		stepsPerFrame: scn.StepsPerFrame,
	}
	if scn.Noise != nil {
		s.noise = *scn.Noise
	}
	if cfg.NoiseScale > 0 {
		s.noise.Scale = float64(cfg.NoiseScale)
		if s.scn.Noise == nil {
			s.noise.Percent = 40
		}
	}
	if cfg.NoisePercent >= 0 {
		if s.noise.Scale == 0 {
			s.noise.Scale = 20
		}
		s.noise.Percent = float64(cfg.NoisePercent)
	}
	if s.noise.Scale > 0 {
		s.scn.Noise = &s.noise
	}
	if cfg.PaceTime >= 0 && scn.Pacer != nil {
		s.paceTime = cfg.PaceTime
		s.paceSet = true
	}
	if cfg.StepsPerFrame > 0 {
		s.stepsPerFrame = cfg.StepsPerFrame
	}
	if s.stepsPerFrame <= 0 {
		s.stepsPerFrame = 1
	}
	s.Reset(0)
	return s, nil
}

// Name identifies the simulation.
func (s *Simulation) Name() string { return "excitable" }

// Size returns the lattice dimensions.
func (s *Simulation) Size() core.Size { return core.Size{W: s.grid.Cols(), H: s.grid.Rows()} }

// Cells exposes the palette-encoded display buffer.
func (s *Simulation) Cells() []uint8 { return s.display }

// Palette returns the colours for the values in Cells.
func (s *Simulation) Palette() []color.RGBA { return Palette() }

// Grid exposes the underlying engine.
func (s *Simulation) Grid() *Grid { return s.grid }

// Scenario returns the scenario as currently tuned.
func (s *Simulation) Scenario() Scenario { return s.scn }

// TPS is the preferred number of frames per second.
func (s *Simulation) TPS() int {
	if s.scn.TPS <= 0 {
		return defaultTPS
	}
	return s.scn.TPS
}

// StepsPerFrame is how many ticks the host should advance per frame.
func (s *Simulation) StepsPerFrame() int { return s.stepsPerFrame }

// Tick returns the number of steps since the last reset.
func (s *Simulation) Tick() int { return s.tick }

// RefractoryField exposes per-cell refractory periods for overlays.
func (s *Simulation) RefractoryField() []uint16 { return s.grid.RefractoryTime() }

// DeadMask exposes the per-cell dead flags for overlays.
func (s *Simulation) DeadMask() []bool { return s.grid.Dead() }

// RefractoryColor shades a refractory period for the overlay.
func (s *Simulation) RefractoryColor(v uint16) color.RGBA { return RefractoryOverlayColor(v) }

// Reset rebuilds the scenario from scratch. A zero seed reuses the config
// seed. Tuned noise and pacing values survive the reset.
func (s *Simulation) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = s.cfg.Seed
	}
	s.grid.SetRandSource(core.NewRNG(effective))
	s.grid.SetNoise(NewSimplexNoise(effective))
	s.grid.Reset()
	s.scn.Apply(s.grid)
	s.applyPacer()
	s.tick = 0
	s.grid.EncodeDisplay(s.display)
}

// Step advances the lattice by one tick.
func (s *Simulation) Step() {
	s.grid.Step()
	s.tick++
	s.grid.EncodeDisplay(s.display)
}

// Defibrillate shocks the whole sheet.
func (s *Simulation) Defibrillate() {
	s.grid.Defibrillate()
	s.grid.EncodeDisplay(s.display)
}

// HandleActivation excites the cell at (i, j) if it is resting and alive.
func (s *Simulation) HandleActivation(i, j int) bool {
	if !s.grid.HandleActivation(i, j) {
		return false
	}
	s.grid.EncodeDisplay(s.display)
	return true
}

// Stamp applies one circle assignment to the running lattice and returns the
// number of cells touched.
func (s *Simulation) Stamp(st Stamp) int {
	n := s.grid.AssignCircle(st.I, st.J, st.R, st.Props)
	if n > 0 {
		s.grid.EncodeDisplay(s.display)
	}
	return n
}

// applyPacer rewrites the pacer circle once a period has been chosen, zero
// included, so a silenced pacemaker stays silent across resets.
func (s *Simulation) applyPacer() {
	if s.scn.Pacer == nil || (!s.paceSet && s.paceTime <= 0) {
		return
	}
	p := s.scn.Pacer
	s.grid.AssignCircle(p.I, p.J, p.R, Props{FieldPaceTime: s.paceTime})
}

var controls = []core.ParameterControl{
	{Key: "noise_scale", Label: "Noise scale", Step: 1, Min: 1, Max: 100},
	{Key: "noise_percent", Label: "Noise percent", Step: 5, Min: 0, Max: 100},
	{Key: "pace_time", Label: "Pace period", Step: 10, Min: 0, Max: 1000},
	{Key: "steps_per_frame", Label: "Steps per frame", Step: 1, Min: 1, Max: 50},
}

// ParameterControls lists the HUD-adjustable parameters.
func (s *Simulation) ParameterControls() []core.ParameterControl {
	out := make([]core.ParameterControl, 0, len(controls))
	for _, c := range controls {
		if c.Key == "pace_time" && s.scn.Pacer == nil {
			continue
		}
		out = append(out, c)
	}
	return out
}

func lookupControl(key string) (core.ParameterControl, bool) {
	for _, c := range controls {
		if c.Key == key {
			return c, true
		}
	}
	return core.ParameterControl{}, false
}

// SetIntParameter applies a HUD adjustment to the running lattice. Values
// are clamped to the control bounds.
func (s *Simulation) SetIntParameter(key string, value int) bool {
	ctrl, ok := lookupControl(key)
	if !ok {
		return false
	}
	value = ctrl.Clamp(value)
	switch key {
	case "noise_scale", "noise_percent":
		if s.scn.Noise == nil {
			s.noise = NoiseSpec{Scale: 20, Percent: 40}
			s.scn.Noise = &s.noise
		}
		if key == "noise_scale" {
			s.noise.Scale = float64(value)
		} else {
			s.noise.Percent = float64(value)
		}
		s.grid.SetRefractoryNoise(s.noise.Scale, s.noise.Percent)
	case "pace_time":
		if s.scn.Pacer == nil {
			return false
		}
		s.paceTime = value
		s.paceSet = true
		p := s.scn.Pacer
		s.grid.AssignCircle(p.I, p.J, p.R, Props{FieldPaceTime: value})
	case "steps_per_frame":
		s.stepsPerFrame = value
	}
	s.grid.EncodeDisplay(s.display)
	return true
}

// Parameters reports the current tunables.
func (s *Simulation) Parameters() core.ParameterSnapshot {
	gc := s.grid.Config()
	groups := []core.ParameterGroup{
		{
			Name: "Lattice",
			Params: []core.Parameter{
				core.IntParam("w", "Width", gc.Cols),
				core.IntParam("h", "Height", gc.Rows),
				core.Int64Param("seed", "Seed", s.cfg.Seed),
			},
		},
		{
			Name: "Tissue",
			Params: []core.Parameter{
				core.IntParam("refractory_time", "Refractory time", gc.RefractoryTime),
				core.IntParam("excite_time", "Excite time", gc.ExciteTime),
				core.IntParam("preexcite_time", "Preexcite time", gc.PreexciteTime),
			},
		},
		{
			Name: "Noise",
			Params: []core.Parameter{
				core.IntParam("noise_scale", "Noise scale", int(s.noise.Scale)),
				core.IntParam("noise_percent", "Noise percent", int(s.noise.Percent)),
			},
		},
		{
			Name: "Run",
			Params: []core.Parameter{
				core.IntParam("steps_per_frame", "Steps per frame", s.stepsPerFrame),
				core.IntParam("tick", "Tick", s.tick),
				core.IntParam("active_cells", "Active cells", s.grid.ActiveCount()),
			},
		},
	}
	if s.scn.Pacer != nil {
		groups = append(groups, core.ParameterGroup{
			Name:   "Pacing",
			Params: []core.Parameter{core.IntParam("pace_time", "Pace period", s.paceTime)},
		})
	}
	return core.ParameterSnapshot{Groups: groups}
}

func init() {
	core.Register("excitable", func(cfg map[string]string) (core.Sim, error) {
		sim, err := NewSimulation(FromMap(cfg))
		if err != nil {
			return nil, err
		}
		return sim, nil
	})
}
