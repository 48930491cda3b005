//go:build ebiten

package app

import (
	"image/color"
	"strings"
	"time"

	"excitable-cells/internal/core"
	"excitable-cells/internal/render"
	"excitable-cells/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type paletteProvider interface {
	Palette() []color.RGBA
}

type activator interface {
	HandleActivation(i, j int) bool
}

type defibrillator interface {
	Defibrillate()
}

type frameStepper interface {
	StepsPerFrame() int
}

var monochrome = []color.RGBA{{A: 255}, {R: 255, G: 255, B: 255, A: 255}}

// tuningFrames is how long the refractory overlay stays up after a noise
// parameter changes.
const tuningFrames = 45

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	palette []color.RGBA

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, scale, hudWidth int, seed int64) *Game {
	if scale <= 0 {
		scale = 1
	}
	size := sim.Size()
	g := &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H),
		overlay: ui.NewOverlay(sim, scale),
		hud:     ui.NewHUD(sim, hudWidth),
		palette: monochrome,
		scale:   scale,
		seed:    seed,
	}
	if p, ok := sim.(paletteProvider); ok {
		g.palette = p.Palette()
	}
	if g.hud != nil {
		g.hud.OnAdjust = func(key string) {
			if strings.HasPrefix(key, "noise_") {
				g.overlay.Flash(tuningFrames)
			}
		}
	}
	return g
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		if d, ok := g.sim.(defibrillator); ok {
			d.Defibrillate()
		}
	}
	g.handleClick()

	g.hud.Update(g.viewWidth())
	g.overlay.Update()

	// The sheet holds still while the noise overlay is up.
	if g.overlay.Tuning() {
		return nil
	}
	if !g.paused || g.tickOnce {
		steps := 1
		if fs, ok := g.sim.(frameStepper); ok && fs.StepsPerFrame() > 1 && !g.tickOnce {
			steps = fs.StepsPerFrame()
		}
		for n := 0; n < steps; n++ {
			g.sim.Step()
		}
		g.tickOnce = false
	}
	return nil
}

func (g *Game) handleClick() {
	a, ok := g.sim.(activator)
	if !ok || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < 0 || my < 0 || mx >= g.viewWidth() {
		return
	}
	a.HandleActivation(mx/g.scale, my/g.scale)
}

func (g *Game) viewWidth() int { return g.sim.Size().W * g.scale }

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.viewWidth(), g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}
