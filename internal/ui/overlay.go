//go:build ebiten

package ui

import (
	"image/color"

	"excitable-cells/internal/core"
	"excitable-cells/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type refractoryProvider interface {
	RefractoryField() []uint16
	DeadMask() []bool
	RefractoryColor(v uint16) color.RGBA
}

// Overlay paints each living cell's refractory period over the simulation
// view. It is toggled with T and shown briefly after noise is retuned.
type Overlay struct {
	sim     core.Sim
	scale   int
	painter *render.GridPainter

	pinned bool
	flash  int
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	size := sim.Size()
	return &Overlay{sim: sim, scale: scale, painter: render.NewGridPainter(size.W, size.H)}
}

// Update handles the toggle key and counts down a pending flash.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		o.pinned = !o.pinned
	}
	if o.flash > 0 {
		o.flash--
	}
}

// Flash shows the overlay for the given number of frames.
func (o *Overlay) Flash(frames int) {
	if frames > o.flash {
		o.flash = frames
	}
}

// Tuning reports whether the overlay is showing because of a recent
// parameter change.
func (o *Overlay) Tuning() bool { return o.flash > 0 }

// Draw renders the overlay onto the provided screen when visible.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.pinned && o.flash == 0 {
		return
	}
	provider, ok := o.sim.(refractoryProvider)
	if !ok {
		return
	}
	o.painter.BlitField(screen, provider.RefractoryField(), provider.DeadMask(), provider.RefractoryColor, o.scale)
}
