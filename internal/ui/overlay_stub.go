//go:build !ebiten

package ui

import "excitable-cells/internal/core"

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(core.Sim, int) *Overlay { return &Overlay{} }

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Flash is a no-op in headless builds.
func (o *Overlay) Flash(int) {}

// Tuning is always false in headless builds.
func (o *Overlay) Tuning() bool { return false }

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any) {}
