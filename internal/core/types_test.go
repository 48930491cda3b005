package core

import (
	"slices"
	"testing"
)

type stubSim struct{ name string }

func (s stubSim) Name() string { return s.name }
func (s stubSim) Size() Size { return Size{W: 1, H: 1} }
func (s stubSim) Reset(int64) {}
func (s stubSim) Step() {}
func (s stubSim) Cells() []uint8 { return []uint8{0} }

func TestRegistry(t *testing.T) {
	Register("zz-stub", func(map[string]string) (Sim, error) { return stubSim{"zz-stub"}, nil })
	Register("aa-stub", func(map[string]string) (Sim, error) { return stubSim{"aa-stub"}, nil })
	Register("", func(map[string]string) (Sim, error) { return nil, nil })
	Register("nil-factory", nil)

	names := Names()
	if !slices.IsSorted(names) {
		t.Fatalf("Names() not sorted: %v", names)
	}
	if !slices.Contains(names, "zz-stub") || !slices.Contains(names, "aa-stub") {
		t.Fatalf("registered sims missing from %v", names)
	}
	if slices.Contains(names, "") || slices.Contains(names, "nil-factory") {
		t.Fatalf("invalid registrations accepted: %v", names)
	}
	sim, err := Sims()["aa-stub"](nil)
	if err != nil || sim.Name() != "aa-stub" {
		t.Fatalf("factory returned %v, %v", sim, err)
	}
}

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(5), NewRNG(5)
	for i := 0; i < 100; i++ {
		if x, y := a.IntN(3), b.IntN(3); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
	if NewRNG(1).IntN(0) != 0 {
		t.Fatal("IntN(0) should be 0")
	}
}

func TestParameterHelpers(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "A", Params: []Parameter{IntParam("w", "Width", 3)}},
		{Name: "B", Params: []Parameter{IntParam("p", "P", -4), Int64Param("seed", "Seed", 1<<40)}},
	}}
	if p, ok := snap.Lookup("p"); !ok || p.Value != "-4" || p.Type != ParamTypeInt {
		t.Fatalf("Lookup(p) = %+v, %v", p, ok)
	}
	if p, _ := snap.Lookup("seed"); p.Value != "1099511627776" {
		t.Fatalf("seed value %q", p.Value)
	}
	if _, ok := snap.Lookup("missing"); ok {
		t.Fatal("missing key found")
	}
	c := ParameterControl{Min: 1, Max: 10}
	if c.Clamp(0) != 1 || c.Clamp(11) != 10 || c.Clamp(5) != 5 {
		t.Fatal("Clamp wrong")
	}
}
