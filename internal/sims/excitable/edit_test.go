package excitable

import (
	"errors"
	"math"
	"testing"
)

func TestAssignCircleZeroRadiusSelectsCentre(t *testing.T) {
	g := newTestGrid(t, DefaultGridConfig(10, 10, 50))
	if n := g.AssignCircle(5, 5, 0, Props{FieldDead: 1}); n != 1 {
		t.Fatalf("radius 0 wrote %d cells, want 1", n)
	}
	for idx, dead := range g.Dead() {
		if dead != (idx == g.CellIndex(5, 5)) {
			t.Fatalf("cell %d dead=%v", idx, dead)
		}
	}
	if n := g.AssignCircle(5.5, 5, 0, Props{FieldDead: 1}); n != 0 {
		t.Fatalf("off-lattice-point centre with radius 0 wrote %d cells", n)
	}
}

func TestAssignCircleDisc(t *testing.T) {
	g := newTestGrid(t, DefaultGridConfig(9, 9, 50))
	n := g.AssignCircle(4, 4, 2, Props{FieldRefractoryTime: 77, FieldPaceTime: 12})
	if n != 13 {
		t.Fatalf("radius 2 disc covered %d cells, want 13", n)
	}
	for j := 0; j < 9; j++ {
		for i := 0; i < 9; i++ {
			idx := g.CellIndex(i, j)
			inside := math.Hypot(float64(i-4), float64(j-4)) <= 2
			if got := g.RefractoryTime()[idx] == 77; got != inside {
				t.Fatalf("cell (%d,%d) refractory assigned=%v, inside=%v", i, j, got, inside)
			}
			if inside && g.PaceTime()[idx] != 12 {
				t.Fatalf("cell (%d,%d) missing pace time", i, j)
			}
		}
	}
}

func TestAssignCircleClipsAtEdges(t *testing.T) {
	g := newTestGrid(t, DefaultGridConfig(4, 4, 50))
	if n := g.AssignCircle(0, 0, 1, Props{FieldActive: 1}); n != 3 {
		t.Fatalf("corner disc wrote %d cells, want 3", n)
	}
	if n := g.AssignCircle(-10, -10, 2, Props{FieldActive: 1}); n != 0 {
		t.Fatalf("off-lattice disc wrote %d cells", n)
	}
	if n := g.AssignCircle(1, 1, -1, Props{FieldActive: 1}); n != 0 {
		t.Fatalf("negative radius wrote %d cells", n)
	}
}

func TestAssignCircleClampsValues(t *testing.T) {
	g := newTestGrid(t, DefaultGridConfig(3, 3, 50))
	g.AssignCircle(1, 1, 0, Props{FieldState: 9, FieldTime: -4, FieldRefractoryTime: 1 << 20, FieldActive: 5})
	idx := g.CellIndex(1, 1)
	if g.State()[idx] != Refractory {
		t.Fatalf("state = %v, want clamped to refractory", g.State()[idx])
	}
	if g.Time()[idx] != 0 {
		t.Fatalf("time = %d, want 0", g.Time()[idx])
	}
	if g.RefractoryTime()[idx] != math.MaxUint16 {
		t.Fatalf("refractory = %d, want %d", g.RefractoryTime()[idx], math.MaxUint16)
	}
	if !g.Active()[idx] {
		t.Fatal("non-zero active value should set the flag")
	}
}

func TestAssignedDeathTakesEffectNextStep(t *testing.T) {
	g := newTestGrid(t, DefaultGridConfig(3, 1, 50))
	g.HandleActivation(1, 0)
	g.Step()
	g.AssignCircle(1, 0, 0, Props{FieldDead: 1})
	before := g.Time()[1]
	g.Step()
	if g.Time()[1] != before {
		t.Fatal("cell kept advancing after being marked dead")
	}
}

func TestDefibrillate(t *testing.T) {
	g := newTestGrid(t, DefaultGridConfig(6, 6, 50))
	g.AssignCircle(2, 2, 1, Props{FieldDead: 1, FieldTime: 33})
	g.AssignCircle(5, 5, 1, Props{FieldRefractoryTime: 90, FieldPaceTime: 40, FieldTime: 12})

	g.Defibrillate()

	for idx := range g.Active() {
		if g.Dead()[idx] {
			if g.Active()[idx] || g.Time()[idx] != 33 {
				t.Fatalf("dead cell %d was shocked", idx)
			}
			continue
		}
		if !g.Active()[idx] || g.Time()[idx] != 0 {
			t.Fatalf("living cell %d not reset by shock", idx)
		}
	}
	idx := g.CellIndex(5, 5)
	if g.RefractoryTime()[idx] != 90 || g.PaceTime()[idx] != 40 {
		t.Fatal("defibrillation changed per-cell parameters")
	}
}

func TestHandleActivation(t *testing.T) {
	g := newTestGrid(t, DefaultGridConfig(4, 4, 50))
	g.AssignCircle(0, 0, 0, Props{FieldDead: 1})
	g.AssignCircle(3, 3, 0, Props{FieldState: int(Refractory)})

	if g.HandleActivation(0, 0) {
		t.Fatal("dead cell accepted activation")
	}
	if g.HandleActivation(3, 3) {
		t.Fatal("refractory cell accepted activation")
	}
	if g.HandleActivation(4, 0) || g.HandleActivation(-1, 2) {
		t.Fatal("off-lattice activation reported success")
	}
	g.Time()[g.CellIndex(1, 2)] = 9
	if !g.HandleActivation(1, 2) {
		t.Fatal("resting cell rejected activation")
	}
	idx := g.CellIndex(1, 2)
	if !g.Active()[idx] || g.Time()[idx] != 0 {
		t.Fatal("activation should set active and zero time")
	}
}

type constNoise float64

func (c constNoise) Eval2(x, y float64) float64 { return float64(c) }

type recordNoise struct{ xs, ys []float64 }

func (r *recordNoise) Eval2(x, y float64) float64 {
	r.xs = append(r.xs, x)
	r.ys = append(r.ys, y)
	return 0
}

func TestRefractoryFromNoise(t *testing.T) {
	cases := []struct {
		n, w float64
		want uint16
	}{
		{-1, 1, 50},
		{0, 1, 90},
		{1, 1, 290},
		{0.5, 0, 150},
		{0, 0.4, 126},
		{-1, 0.5, 100},
		{3, 1, 290},
	}
	for _, tc := range cases {
		if got := RefractoryFromNoise(tc.n, tc.w); got != tc.want {
			t.Fatalf("RefractoryFromNoise(%v, %v) = %d, want %d", tc.n, tc.w, got, tc.want)
		}
	}
}

func TestSetRefractoryNoise(t *testing.T) {
	g := newTestGrid(t, DefaultGridConfig(5, 3, 50))
	g.SetNoise(constNoise(0))
	g.SetRefractoryNoise(20, 40)
	for idx, rt := range g.RefractoryTime() {
		if rt != 126 {
			t.Fatalf("cell %d refractory = %d, want 126", idx, rt)
		}
	}

	g.SetRefractoryNoise(20, 250)
	if g.RefractoryTime()[0] != 90 {
		t.Fatalf("percent above 100 should clamp, got %d", g.RefractoryTime()[0])
	}

	rec := &recordNoise{}
	g.SetNoise(rec)
	g.SetRefractoryNoise(4, 100)
	if len(rec.xs) != g.Len() {
		t.Fatalf("noise sampled %d times, want %d", len(rec.xs), g.Len())
	}
	for k := range rec.xs {
		if rec.xs[k] > 1 || rec.ys[k] > 0.5 {
			t.Fatalf("sample (%v,%v) not divided by the scale", rec.xs[k], rec.ys[k])
		}
	}
}

func TestSimplexNoiseIsCoherent(t *testing.T) {
	a := NewSimplexNoise(5)
	b := NewSimplexNoise(5)
	for _, p := range [][2]float64{{0.1, 0.2}, {3.3, 1.7}, {10, 10}} {
		va, vb := a.Eval2(p[0], p[1]), b.Eval2(p[0], p[1])
		if va != vb {
			t.Fatalf("same seed gave %v and %v at %v", va, vb, p)
		}
		if va < -1 || va > 1 {
			t.Fatalf("noise %v out of range at %v", va, p)
		}
		if d := math.Abs(a.Eval2(p[0]+0.001, p[1]) - va); d > 0.05 {
			t.Fatalf("noise jumped by %v over a tiny step at %v", d, p)
		}
	}
}

func TestParseField(t *testing.T) {
	for name, want := range map[string]Field{
		"state":           FieldState,
		"refractoryTime":  FieldRefractoryTime,
		"refractory_time": FieldRefractoryTime,
		"PACE_TIME":       FieldPaceTime,
		" dead ":          FieldDead,
	} {
		got, err := ParseField(name)
		if err != nil || got != want {
			t.Fatalf("ParseField(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
	if _, err := ParseField("voltage"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("unknown field error = %v", err)
	}
	if s := (Props{FieldDead: 1, FieldState: 2}).String(); s != "state=2,dead=1" {
		t.Fatalf("Props.String() = %q", s)
	}
}
