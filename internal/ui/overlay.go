//go:build ebiten

package ui

import (
	"arbor/internal/render"
	"arbor/internal/terrain"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type textureProvider interface {
	Texture() *terrain.Texture
}

// Overlay draws the terrain texture under the preview for variants that
// steer over one. Keys 1, 2 and 3 toggle the water, elevation and
// population layers.
type Overlay struct {
	source  any
	layers  render.Layers
	painter *render.TexturePainter
}

// NewOverlay constructs an overlay for v with every layer shown.
func NewOverlay(v any) *Overlay {
	return &Overlay{
		source:  v,
		layers:  render.Layers{Water: true, Elevation: true, Population: true},
		painter: render.NewTexturePainter(),
	}
}

// Update handles the layer toggles.
func (o *Overlay) Update() {
	keys := []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3}
	for i, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			o.layers.Toggle(i + 1)
		}
	}
}

// Layers returns the current layer selection.
func (o *Overlay) Layers() render.Layers { return o.layers }

// Draw paints the terrain stretched over a size x size square.
func (o *Overlay) Draw(screen *ebiten.Image, size int) {
	provider, ok := o.source.(textureProvider)
	if !ok {
		return
	}
	o.painter.Blit(screen, provider.Texture(), o.layers, size)
}
