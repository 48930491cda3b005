package app

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Sim      string
	Scenario string
	Scale    int
	TPS      int
	Seed     int64
	HUDWidth int
	Sets     KVList
}

// KVList collects repeated key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

// Set appends one key=value pair.
func (l *KVList) Set(value string) error {
	key, _, ok := strings.Cut(value, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	*l = append(*l, value)
	return nil
}

// NewConfig returns a Config populated with sensible defaults. A TPS of zero
// defers to the simulation's preferred rate.
func NewConfig() *Config {
	return &Config{Sim: "excitable", Scenario: "afib", Scale: 8, Seed: 42, HUDWidth: 260}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.StringVar(&c.Scenario, "scenario", c.Scenario, "scenario to load")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second (0 uses the scenario rate)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "width of the parameter panel in pixels (0 hides it)")
	fs.Var(&c.Sets, "set", "parameter override in key=value form (repeatable)")
}

// SimConfig builds the map handed to the simulation factory. Explicit -set
// values win over the dedicated flags.
func (c *Config) SimConfig() map[string]string {
	out := map[string]string{
		"scenario": c.Scenario,
		"seed":     strconv.FormatInt(c.Seed, 10),
	}
	for _, kv := range c.Sets {
		key, value, _ := strings.Cut(kv, "=")
		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return out
}
