//go:build !ebiten

package ui

import "arbor/internal/render"

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(any) *Overlay { return &Overlay{} }

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Layers returns no layers in headless builds.
func (o *Overlay) Layers() render.Layers { return render.Layers{} }

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any, int) {}
