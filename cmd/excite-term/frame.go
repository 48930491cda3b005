package main

import (
	"fmt"
	"strings"

	"excitable-cells/internal/sims/excitable"

	"github.com/guptarohit/asciigraph"
	"github.com/logrusorgru/aurora"
)

const (
	glyphResting    = "·"
	glyphActive     = "█"
	glyphRefractory = "▒"
	glyphDead       = "x"
)

// painter turns display-encoded cells into coloured terminal rows.
type painter struct {
	au   aurora.Aurora
	cols int
}

func newPainter(cols int, colors bool) *painter {
	return &painter{au: aurora.NewAurora(colors), cols: cols}
}

// frame renders one row of glyphs per lattice row.
func (p *painter) frame(cells []uint8) string {
	var b strings.Builder
	for idx, v := range cells {
		b.WriteString(p.glyph(v))
		if (idx+1)%p.cols == 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (p *painter) glyph(v uint8) string {
	switch {
	case v == excitable.DisplayResting:
		return p.au.Faint(glyphResting).String()
	case v == excitable.DisplayActive:
		return p.au.BrightYellow(glyphActive).String()
	case v == excitable.DisplayDead:
		return p.au.Red(glyphDead).String()
	default:
		return p.au.Gray(refractoryShade(v), glyphRefractory).String()
	}
}

// refractoryShade maps recovery progress onto aurora's 24 step grey ramp,
// dark for freshly refractory cells.
func refractoryShade(v uint8) uint8 {
	level := int(v - excitable.DisplayRefractory)
	span := 255 - int(excitable.DisplayRefractory)
	return uint8(23 - level*23/span)
}

// status summarises the lattice on one line.
func (p *painter) status(sim *excitable.Simulation) string {
	g := sim.Grid()
	return fmt.Sprintf("%s tick %s  active %s  refractory %s",
		p.au.Cyan(sim.Scenario().Name),
		p.au.Bold(sim.Tick()),
		p.au.BrightYellow(g.CountState(excitable.Active)),
		p.au.Gray(14, g.CountState(excitable.Refractory)))
}

// activityPlot charts the active-cell fraction over the run.
func activityPlot(history []float64, width int) string {
	if len(history) == 0 {
		return ""
	}
	if width <= 0 {
		width = 60
	}
	return asciigraph.Plot(history,
		asciigraph.Height(8),
		asciigraph.Width(width),
		asciigraph.Caption("active cells (%)"))
}
