//go:build ebiten

package render

import (
	"image/color"

	"arbor/internal/lsystem"
	"arbor/internal/terrain"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// TexturePainter uploads a terrain texture to an ebiten image and draws it
// scaled onto the screen. The upload is redone only when the texture or the
// layer selection changes.
type TexturePainter struct {
	img    *ebiten.Image
	buf    []byte
	tex    *terrain.Texture
	layers Layers
}

// NewTexturePainter returns an empty painter.
func NewTexturePainter() *TexturePainter { return &TexturePainter{} }

// Blit draws tex stretched over a size x size square at the origin.
func (p *TexturePainter) Blit(dst *ebiten.Image, tex *terrain.Texture, layers Layers, size int) {
	if tex == nil || tex.Width() == 0 || tex.Height() == 0 {
		return
	}
	w, h := tex.Width(), tex.Height()
	if p.img == nil || p.img.Bounds().Dx() != w || p.img.Bounds().Dy() != h {
		p.img = ebiten.NewImage(w, h)
		p.buf = make([]byte, 4*w*h)
		p.tex = nil
	}
	if p.tex != tex || p.layers != layers {
		fillTerrainRGBA(p.buf, tex, layers)
		p.img.WritePixels(p.buf)
		p.tex, p.layers = tex, layers
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(size)/float64(w), float64(size)/float64(h))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(p.img, op)
}

// Style is the stroke used for one geometry class.
type Style struct {
	Color color.Color
	Width float32
}

// DefaultStyles colors the built-in geometry classes.
var DefaultStyles = map[lsystem.GeometryClass]Style{
	lsystem.Branch:  {Color: color.RGBA{R: 150, G: 110, B: 70, A: 255}, Width: 2},
	lsystem.Leaf:    {Color: color.RGBA{R: 90, G: 190, B: 80, A: 255}, Width: 3},
	lsystem.Highway: {Color: color.RGBA{R: 250, G: 230, B: 120, A: 255}, Width: 2},
	lsystem.Road:    {Color: color.RGBA{R: 230, G: 230, B: 235, A: 255}, Width: 1},
}

// DrawSegments strokes segs onto dst, styled per class.
func DrawSegments(dst *ebiten.Image, segs []Segment, styles map[lsystem.GeometryClass]Style) {
	fallback := Style{Color: color.White, Width: 1}
	for _, s := range segs {
		st, ok := styles[s.Class]
		if !ok {
			st = fallback
		}
		vector.StrokeLine(dst, s.X0, s.Y0, s.X1, s.Y1, st.Width, st.Color, true)
	}
}
