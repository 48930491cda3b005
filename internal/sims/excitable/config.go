package excitable

import "strconv"

// Config controls which scenario the simulation builds and lets individual
// values of that scenario be overridden. Zero values keep the scenario's own
// setting.
type Config struct {
	Scenario string

	Width  int
	Height int
	Seed   int64

	RefractoryTime int
	ExciteTime     int
	PreexciteTime  int

	NoiseScale    int
	NoisePercent  int
	PaceTime      int
	StepsPerFrame int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Scenario:     "afib",
		Seed:         42,
		ExciteTime:   10,
		NoisePercent: -1,
		PaceTime:     -1,
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparsable or out-of-range values are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["scenario"]; ok && v != "" {
		c.Scenario = v
	}
	positive := func(key string, dst *int) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
				*dst = parsed
			}
		}
	}
	nonNegative := func(key string, dst *int) {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
				*dst = parsed
			}
		}
	}
	positive("w", &c.Width)
	positive("h", &c.Height)
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	positive("refractory_time", &c.RefractoryTime)
	nonNegative("excite_time", &c.ExciteTime)
	nonNegative("preexcite_time", &c.PreexciteTime)
	positive("noise_scale", &c.NoiseScale)
	nonNegative("noise_percent", &c.NoisePercent)
	if c.NoisePercent > 100 {
		c.NoisePercent = 100
	}
	nonNegative("pace_time", &c.PaceTime)
	positive("steps_per_frame", &c.StepsPerFrame)
	return c
}
