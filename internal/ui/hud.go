//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"strconv"

	"excitable-cells/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the parameter panel to the right of the simulation view.
type HUD struct {
	sim      core.Sim
	width    int
	panel    *ebiten.Image
	pixel    *ebiten.Image
	title    string
	setter   core.IntParameterSetter
	controls []hudControl
	offsetX  int

	// OnAdjust, when set, is called with the key of every accepted change.
	OnAdjust func(key string)
}

type hudControl struct {
	control  core.ParameterControl
	value    int
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

var (
	panelColor    = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor    = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor    = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	mutedColor    = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	buttonColor   = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	buttonOff     = color.RGBA{R: 32, G: 34, B: 40, A: 255}
	buttonText    = color.RGBA{R: 230, G: 230, B: 240, A: 255}
	buttonTextOff = color.RGBA{R: 120, G: 120, B: 130, A: 255}
)

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	controlsTop    = panelPadding + headerBaseline + 14
)

// NewHUD constructs a HUD for the provided simulation and panel width. A
// zero width disables the panel.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width, title: sim.Name() + " controls"}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if setter, ok := sim.(core.IntParameterSetter); ok {
		h.setter = setter
	}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		for i, ctrl := range provider.ParameterControls() {
			top := controlsTop + i*lineHeight
			buttonY := top + (lineHeight-buttonSize)/2
			plus := image.Rect(width-panelPadding-buttonSize, buttonY, width-panelPadding, buttonY+buttonSize)
			minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
			h.controls = append(h.controls, hudControl{control: ctrl, top: top, minusRect: minus, plusRect: plus})
		}
	}
	return h
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes control values from the simulation and handles clicks on
// the +/- buttons. panelOffsetX is the screen x where the panel starts.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil || h.width <= 0 {
		return
	}
	h.offsetX = panelOffsetX
	h.refresh()
	if h.setter == nil || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.offsetX {
		return
	}
	p := image.Pt(mx-h.offsetX, my)
	for i := range h.controls {
		c := &h.controls[i]
		if !c.hasValue {
			continue
		}
		switch {
		case p.In(c.minusRect):
			h.adjust(c, -1)
			return
		case p.In(c.plusRect):
			h.adjust(c, 1)
			return
		}
	}
}

func (h *HUD) refresh() {
	provider, ok := h.sim.(core.ParameterProvider)
	if !ok {
		return
	}
	snap := provider.Parameters()
	for i := range h.controls {
		c := &h.controls[i]
		c.hasValue = false
		p, ok := snap.Lookup(c.control.Key)
		if !ok || p.Type != core.ParamTypeInt {
			continue
		}
		v, err := strconv.Atoi(p.Value)
		if err != nil {
			continue
		}
		c.value = v
		c.hasValue = true
	}
}

func (h *HUD) adjust(c *hudControl, direction int) {
	step := c.control.Step
	if step <= 0 {
		step = 1
	}
	target := c.control.Clamp(c.value + direction*step)
	if target == c.value {
		return
	}
	if h.setter.SetIntParameter(c.control.Key, target) {
		c.value = target
		if h.OnAdjust != nil {
			h.OnAdjust(c.control.Key)
		}
	}
}

// Draw paints the HUD panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.sim.Size().H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelColor)

	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, panelPadding, panelPadding+headerBaseline, titleColor)
	if len(h.controls) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, controlsTop+labelBaseline, mutedColor)
	}
	for i := range h.controls {
		c := &h.controls[i]
		y := c.top + labelBaseline
		text.Draw(h.panel, c.control.Label, face, panelPadding, y, labelColor)

		value, col := "--", mutedColor
		if c.hasValue {
			value, col = strconv.Itoa(c.value), labelColor
		}
		w := text.BoundString(face, value).Dx()
		text.Draw(h.panel, value, face, c.minusRect.Min.X-buttonGap-w, y, col)

		h.drawButton(c.minusRect, "-", c.hasValue && h.setter != nil && c.value > c.control.Min)
		h.drawButton(c.plusRect, "+", c.hasValue && h.setter != nil && c.value < c.control.Max)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg, fg := buttonColor, buttonText
	if !enabled {
		bg, fg = buttonOff, buttonTextOff
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-b.Dx())/2
	y := rect.Min.Y + (rect.Dy()-b.Dy())/2 + b.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}
