package excitable

import "testing"

func TestFromMapDefaults(t *testing.T) {
	if got := FromMap(nil); got != DefaultConfig() {
		t.Fatalf("FromMap(nil) = %+v", got)
	}
}

func TestFromMapParsesValues(t *testing.T) {
	c := FromMap(map[string]string{
		"scenario":        "reentry2",
		"w":               "40",
		"h":               "-3",
		"seed":            "9",
		"refractory_time": "75",
		"preexcite_time":  "2",
		"noise_scale":     "12",
		"noise_percent":   "130",
		"pace_time":       "nope",
		"steps_per_frame": "3",
	})
	if c.Scenario != "reentry2" || c.Width != 40 || c.Height != 0 || c.Seed != 9 {
		t.Fatalf("lattice fields parsed wrong: %+v", c)
	}
	if c.RefractoryTime != 75 || c.PreexciteTime != 2 || c.ExciteTime != 10 {
		t.Fatalf("timing fields parsed wrong: %+v", c)
	}
	if c.NoiseScale != 12 || c.NoisePercent != 100 {
		t.Fatalf("noise fields parsed wrong: %+v", c)
	}
	if c.PaceTime != -1 || c.StepsPerFrame != 3 {
		t.Fatalf("run fields parsed wrong: %+v", c)
	}
}
