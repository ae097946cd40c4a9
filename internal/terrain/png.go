package terrain

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/png"
	"io"
	"os"
)

// Decode reads an image and repacks it as an RGBA texture: red is water,
// green elevation, blue population.
func Decode(r io.Reader) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode texture: %w", err)
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return NewTexture(b.Dx(), b.Dy(), rgba.Pix)
}

// LoadPNG reads a texture from an image file on disk.
func LoadPNG(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()
	return Decode(f)
}
