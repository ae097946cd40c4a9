package app

import (
	"arbor/internal/lsystem"
	"arbor/internal/render"
	"arbor/internal/terrain"
)

type framer interface {
	Texture() *terrain.Texture
	Frame() terrain.Frame
}

// previewMargin keeps fitted structures off the window edge.
const previewMargin = 16

// Preview projects tr onto a size x size view. Variants drawn over a
// terrain texture use the texture's frame so the network lines up with the
// map; everything else is fitted to the view.
func Preview(v any, tr *lsystem.Transforms, size int) []render.Segment {
	if tr == nil {
		return nil
	}
	p := render.FitProjection(tr, size, size, previewMargin)
	if f, ok := v.(framer); ok && f.Texture() != nil {
		p = render.FrameProjection(f.Frame().Span, size, size)
	}
	return p.Segments(tr, -1)
}
