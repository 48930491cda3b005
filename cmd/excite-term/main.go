package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"excitable-cells/internal/core"
	"excitable-cells/internal/sims/excitable"

	"github.com/integrii/flaggy"
)

type options struct {
	scenario string
	steps    int
	tps      int
	seed     int64
	every    int
	quiet    bool
	noColor  bool
	defibAt  int
	stamps   string
	sets     []string
}

const clearScreen = "\033[H\033[2J"

func main() {
	opts := defaultOptions()
	parser := newParser(&opts)
	if err := parser.Parse(); err != nil {
		log.Fatalf("flags: %v", err)
	}

	if opts.steps < 0 {
		parser.ShowHelpAndExit("steps must be non-negative")
	}
	if opts.every <= 0 {
		opts.every = 1
	}

	cfg, err := buildConfig(opts)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	sim, err := excitable.NewSimulation(cfg)
	if err != nil {
		log.Fatalf("create simulation: %v", err)
	}
	stamps, err := parseStamps(opts.stamps)
	if err != nil {
		log.Fatalf("stamp: %v", err)
	}
	for _, st := range stamps {
		if sim.Stamp(st) == 0 {
			log.Printf("stamp %v %s touched no cells", st.Circle, st.Props)
		}
	}

	p := newPainter(sim.Size().W, !opts.noColor)
	history := run(sim, opts, p)

	total := float64(sim.Grid().Len())
	peak := 0.0
	for _, h := range history {
		peak = max(peak, h)
	}
	fmt.Println(p.status(sim))
	fmt.Printf("peak activity %.1f%% of %d cells\n", peak, int(total))
	if plot := activityPlot(downsample(history, 80), 0); plot != "" {
		fmt.Println(plot)
	}
}

func defaultOptions() options {
	return options{scenario: "afib", steps: 600, seed: 42, every: 1, defibAt: -1}
}

// newParser binds every command-line flag to opts.
func newParser(opts *options) *flaggy.Parser {
	p := flaggy.NewParser("excite-term")
	p.Description = "Runs an excitable tissue scenario in the terminal"
	p.ShowHelpOnUnexpected = true
	p.String(&opts.scenario, "s", "scenario", "Scenario to run ["+strings.Join(excitable.Scenarios(), "|")+"]")
	p.Int(&opts.steps, "n", "steps", "Number of ticks to simulate")
	p.Int(&opts.tps, "t", "tps", "Ticks per second, 0 runs as fast as possible")
	p.Int64(&opts.seed, "", "seed", "Seed for the random source and refractory noise")
	p.Int(&opts.every, "e", "every", "Print a frame every N ticks")
	p.Bool(&opts.quiet, "q", "quiet", "Skip frames and only print the summary")
	p.Bool(&opts.noColor, "", "no-color", "Disable ANSI colours")
	p.Int(&opts.defibAt, "d", "defib-at", "Defibrillate at this tick")
	// Stamps contain commas, which flaggy's slice flags split on.
	p.String(&opts.stamps, "", "stamp", "Extra circle assignments i,j,r:field=value,... separated by ';'")
	p.StringSlice(&opts.sets, "", "set", "Config override key=value (repeatable)")
	return p
}

// parseStamps reads a ';' separated list of stamps. Empty entries are skipped.
func parseStamps(text string) ([]excitable.Stamp, error) {
	var out []excitable.Stamp
	for _, part := range strings.Split(text, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		st, err := excitable.ParseStamp(part)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

func buildConfig(opts options) (excitable.Config, error) {
	m := map[string]string{
		"scenario": opts.scenario,
		"seed":     fmt.Sprint(opts.seed),
	}
	for _, kv := range opts.sets {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return excitable.Config{}, fmt.Errorf("expected key=value, got %q", kv)
		}
		m[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return excitable.FromMap(m), nil
}

// run advances the simulation and returns the active-cell percentage after
// every tick.
func run(sim *excitable.Simulation, opts options, p *painter) []float64 {
	total := float64(sim.Grid().Len())
	history := make([]float64, 0, opts.steps)
	var pacer *core.FixedStep
	if opts.tps > 0 {
		pacer = core.NewFixedStep(opts.tps)
	}

	for sim.Tick() < opts.steps {
		due := 1
		if pacer != nil {
			due = pacer.Due()
			if due == 0 {
				time.Sleep(pacer.Interval() / 4)
				continue
			}
		}
		for ; due > 0 && sim.Tick() < opts.steps; due-- {
			if sim.Tick() == opts.defibAt {
				sim.Defibrillate()
			}
			sim.Step()
			history = append(history, 100*float64(sim.Grid().ActiveCount())/total)
		}
		if !opts.quiet && sim.Tick()%opts.every == 0 {
			fmt.Fprint(os.Stdout, clearScreen, p.frame(sim.Cells()), p.status(sim), "\n")
		}
	}
	return history
}

// downsample averages history into at most n buckets.
func downsample(history []float64, n int) []float64 {
	if len(history) <= n || n <= 0 {
		return history
	}
	out := make([]float64, n)
	for b := 0; b < n; b++ {
		lo := b * len(history) / n
		hi := (b + 1) * len(history) / n
		sum := 0.0
		for _, v := range history[lo:hi] {
			sum += v
		}
		out[b] = sum / float64(hi-lo)
	}
	return out
}
