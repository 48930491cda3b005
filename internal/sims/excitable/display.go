package excitable

import (
	"image/color"
	"math"
)

// Display values packed by EncodeDisplay. Values from DisplayRefractory up
// to 255 encode refractory progress; 255 means the cell just turned
// refractory.
const (
	DisplayResting    uint8 = 0
	DisplayActive     uint8 = 1
	DisplayDead       uint8 = 2
	DisplayRefractory uint8 = 3

	refractoryLevels = 256 - int(DisplayRefractory)
)

var (
	restingColor = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	activeColor  = color.RGBA{R: 50, G: 50, B: 50, A: 255}
	deadColor    = color.RGBA{R: 177, G: 75, B: 50, A: 255}
)

var palette = buildPalette()

// Palette returns the 256 entry colour table matching EncodeDisplay.
func Palette() []color.RGBA { return palette }

func buildPalette() []color.RGBA {
	p := make([]color.RGBA, 256)
	for i := range p {
		p[i] = restingColor
	}
	p[DisplayActive] = activeColor
	p[DisplayDead] = deadColor
	for level := 0; level < refractoryLevels; level++ {
		progress := float64(level) / float64(refractoryLevels-1)
		grey := uint8(math.Floor(230 - progress*180))
		p[int(DisplayRefractory)+level] = color.RGBA{R: grey, G: grey, B: grey, A: 255}
	}
	return p
}

// EncodeDisplay writes one palette index per cell into dst, which must hold
// at least Len() bytes.
func (g *Grid) EncodeDisplay(dst []uint8) {
	for idx, s := range g.state {
		dst[idx] = g.displayValue(idx, s)
	}
}

func (g *Grid) displayValue(idx int, s State) uint8 {
	if g.dead[idx] {
		return DisplayDead
	}
	switch s {
	case Active:
		return DisplayActive
	case Refractory:
		return DisplayRefractory + refractoryLevel(g.refractoryTime[idx], g.time[idx])
	default:
		return DisplayResting
	}
}

// refractoryLevel quantizes (rt - t + 1) / rt, where 1 means the cell has
// just turned refractory and values near 0 mean it is about to recover.
func refractoryLevel(rt, t uint16) uint8 {
	if rt == 0 {
		return 0
	}
	progress := (float64(rt) - float64(t) + 1) / float64(rt)
	progress = math.Min(math.Max(progress, 0), 1)
	return uint8(math.Round(progress * float64(refractoryLevels-1)))
}

// RefractoryOverlayColor shades a refractory period on a blue lightness ramp,
// light for short periods (40 ticks) and dark for long ones (250 ticks).
func RefractoryOverlayColor(refractoryTime uint16) color.RGBA {
	lightness := math.Floor(mapRange(float64(refractoryTime), 40, 250, 80, 20))
	lightness = math.Min(math.Max(lightness, 0), 100)
	return hslToRGBA(210, 0.5, lightness/100)
}

func mapRange(v, from0, from1, to0, to1 float64) float64 {
	return to0 + (to1-to0)*((v-from0)/(from1-from0))
}

func hslToRGBA(h, s, l float64) color.RGBA {
	c := (1 - math.Abs(2*l-1)) * s
	hp := h / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))
	var r, g, b float64
	switch {
	case hp < 1:
		r, g, b = c, x, 0
	case hp < 2:
		r, g, b = x, c, 0
	case hp < 3:
		r, g, b = 0, c, x
	case hp < 4:
		r, g, b = 0, x, c
	case hp < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	m := l - c/2
	return color.RGBA{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
		A: 255,
	}
}
