// Package terrain exposes the water, elevation and population channels of a
// map texture as point lookups.
package terrain

import (
	"errors"
	"fmt"
	"math"

	"arbor/pkg/core"
)

// ErrTextureSize reports a pixel buffer that does not match its dimensions.
var ErrTextureSize = errors.New("texture buffer size mismatch")

// Channel offsets inside each 4-byte pixel.
const (
	ChannelWater      = 0
	ChannelElevation  = 1
	ChannelPopulation = 2
)

// Sampler answers terrain questions at texture coordinates. Coordinates are
// floored to whole pixels; values are normalized to [0,1].
type Sampler interface {
	Water(x, y float32) float64
	Elevation(x, y float32) float64
	Population(x, y float32) float64
}

// Consumer is implemented by generators that steer by terrain.
type Consumer interface {
	SetTerrain(s Sampler, f Frame)
}

// Texture is an RGBA map texture laid out as interleaved rows.
type Texture struct {
	grid *core.PixelGrid
}

var _ Sampler = (*Texture)(nil)

// NewTexture wraps pix, which must hold 4*w*h bytes.
func NewTexture(w, h int, pix []uint8) (*Texture, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrTextureSize, w, h)
	}
	if len(pix) != 4*w*h {
		return nil, fmt.Errorf("%w: %dx%d needs %d bytes, got %d", ErrTextureSize, w, h, 4*w*h, len(pix))
	}
	return &Texture{grid: core.WrapPixels(w, h, pix)}, nil
}

// Width is the texture width in pixels.
func (t *Texture) Width() int { return t.grid.W }

// Height is the texture height in pixels.
func (t *Texture) Height() int { return t.grid.H }

// Pix exposes the raw RGBA bytes.
func (t *Texture) Pix() []uint8 { return t.grid.Pix() }

func (t *Texture) channel(x, y float32, ch int) float64 {
	px := int(math.Floor(float64(x)))
	py := int(math.Floor(float64(y)))
	return float64(t.grid.At(px, py, ch)) / 255
}

// Water reports water presence.
func (t *Texture) Water(x, y float32) float64 { return t.channel(x, y, ChannelWater) }

// Elevation reports terrain elevation.
func (t *Texture) Elevation(x, y float32) float64 { return t.channel(x, y, ChannelElevation) }

// Population reports population density.
func (t *Texture) Population(x, y float32) float64 { return t.channel(x, y, ChannelPopulation) }

// DefaultSpan is the world width a texture covers unless configured.
const DefaultSpan float32 = 4

// Frame maps world-space ground coordinates onto texture pixels. The world
// square of side Span centered on the origin covers the whole texture, with
// world +Y pointing to texture row 0.
type Frame struct {
	Width, Height int
	Span          float32
}

// FrameFor returns a frame over t covering span world units.
func FrameFor(t *Texture, span float32) Frame {
	return Frame{Width: t.Width(), Height: t.Height(), Span: span}
}

// ToTexture converts world (x, y) into texture coordinates.
func (f Frame) ToTexture(x, y float32) (float32, float32) {
	if f.Span <= 0 {
		return x, y
	}
	tx := (x/f.Span + 0.5) * float32(f.Width)
	ty := (0.5 - y/f.Span) * float32(f.Height)
	return tx, ty
}
