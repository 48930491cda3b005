package main

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"excitable-cells/internal/core"
	"excitable-cells/internal/sims/excitable"
)

type paramSet struct {
	noiseScale   int
	noisePercent int
}

func (p paramSet) String() string {
	return fmt.Sprintf("scale=%d percent=%d", p.noiseScale, p.noisePercent)
}

type job struct {
	params paramSet
	seed   int64
}

type runResult struct {
	params paramSet
	seed   int64
	// survived is the number of ticks activity lasted once pacing stopped.
	survived  int
	sustained bool
	peak      int
	err       error
}

type summary struct {
	params       paramSet
	runs         int
	sustained    int
	meanSurvival float64
	peak         int
}

type sweepOptions struct {
	scenario string
	warmup   int
	steps    int
}

// runCandidate paces the scenario for the warm-up, silences every pacemaker
// and counts how long the sheet keeps itself excited.
func runCandidate(opts sweepOptions, j job) runResult {
	cfg := excitable.DefaultConfig()
	cfg.Scenario = opts.scenario
	cfg.Seed = j.seed
	cfg.NoiseScale = j.params.noiseScale
	cfg.NoisePercent = j.params.noisePercent
	res := runResult{params: j.params, seed: j.seed}

	sim, err := excitable.NewSimulation(cfg)
	if err != nil {
		res.err = err
		return res
	}
	for t := 0; t < opts.warmup; t++ {
		sim.Step()
	}

	size := sim.Size()
	ci, cj := float64(size.W)/2, float64(size.H)/2
	sim.Stamp(excitable.Stamp{
		Circle: excitable.Circle{I: ci, J: cj, R: math.Hypot(ci, cj) + 1},
		Props:  excitable.Props{excitable.FieldPaceTime: 0},
	})

	grid := sim.Grid()
	for t := 0; t < opts.steps; t++ {
		sim.Step()
		active := grid.ActiveCount()
		if active == 0 {
			return res
		}
		res.survived = t + 1
		res.peak = max(res.peak, active)
	}
	res.sustained = true
	return res
}

// summarize folds per-seed runs into one row per parameter set, ordered by
// how often and how long activity outlived the pacing.
func summarize(results []runResult) []summary {
	byParams := map[paramSet]*summary{}
	for _, r := range results {
		if r.err != nil {
			continue
		}
		s, ok := byParams[r.params]
		if !ok {
			s = &summary{params: r.params}
			byParams[r.params] = s
		}
		s.runs++
		if r.sustained {
			s.sustained++
		}
		s.meanSurvival += float64(r.survived)
		s.peak = max(s.peak, r.peak)
	}

	out := make([]summary, 0, len(byParams))
	for _, s := range byParams {
		s.meanSurvival /= float64(s.runs)
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.sustained != b.sustained {
			return a.sustained > b.sustained
		}
		if a.meanSurvival != b.meanSurvival {
			return a.meanSurvival > b.meanSurvival
		}
		if a.params.noiseScale != b.params.noiseScale {
			return a.params.noiseScale < b.params.noiseScale
		}
		return a.params.noisePercent < b.params.noisePercent
	})
	return out
}

// deriveSeeds draws n run seeds from base. Every parameter set is evaluated
// on the same seeds so rows differ only by their parameters.
func deriveSeeds(base int64, n int) []int64 {
	rng := core.NewRNG(base)
	out := make([]int64, 0, max(n, 0))
	for len(out) < n {
		out = append(out, rng.Int64())
	}
	return out
}

func parseInts(list string) ([]int, error) {
	var out []int
	for _, field := range strings.Split(list, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", field, err)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty list %q", list)
	}
	return out, nil
}
