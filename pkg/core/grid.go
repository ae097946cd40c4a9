package core

// PixelGrid stores a 2D grid of 4-byte pixels in row-major order.
type PixelGrid struct {
	W, H int
	data []uint8
}

// NewPixelGrid allocates a zeroed grid with the given dimensions.
func NewPixelGrid(w, h int) *PixelGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &PixelGrid{W: w, H: h, data: make([]uint8, 4*w*h)}
}

// WrapPixels adopts pix as the backing store. The caller guarantees
// len(pix) == 4*w*h.
func WrapPixels(w, h int, pix []uint8) *PixelGrid {
	return &PixelGrid{W: w, H: h, data: pix}
}

// Pix exposes the backing slice so callers can read/write values directly.
func (g *PixelGrid) Pix() []uint8 { return g.data }

// Index returns the offset of channel ch of pixel (x, y).
func (g *PixelGrid) Index(x, y, ch int) int { return (y*g.W+x)*4 + ch }

// Clamp pins coordinates to the nearest pixel inside the grid.
func (g *PixelGrid) Clamp(x, y int) (int, int) {
	x = min(max(x, 0), g.W-1)
	y = min(max(y, 0), g.H-1)
	return x, y
}

// At returns channel ch of pixel (x, y), clamping out-of-range coordinates.
func (g *PixelGrid) At(x, y, ch int) uint8 {
	x, y = g.Clamp(x, y)
	return g.data[g.Index(x, y, ch)]
}

// Set writes channel ch of pixel (x, y). Out-of-range writes are dropped.
func (g *PixelGrid) Set(x, y, ch int, v uint8) {
	if x < 0 || y < 0 || x >= g.W || y >= g.H {
		return
	}
	g.data[g.Index(x, y, ch)] = v
}
