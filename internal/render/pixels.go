package render

import (
	"image/color"

	"arbor/internal/terrain"
)

// Layers selects which terrain channels are painted.
type Layers struct {
	Water      bool
	Elevation  bool
	Population bool
}

// Toggle flips layer n: 1 water, 2 elevation, 3 population.
func (l *Layers) Toggle(n int) {
	switch n {
	case 1:
		l.Water = !l.Water
	case 2:
		l.Elevation = !l.Elevation
	case 3:
		l.Population = !l.Population
	}
}

// Any reports whether at least one layer is enabled.
func (l Layers) Any() bool { return l.Water || l.Elevation || l.Population }

var (
	groundColor     = color.RGBA{R: 18, G: 20, B: 24, A: 255}
	waterColor      = color.RGBA{R: 64, G: 164, B: 223, A: 255}
	populationColor = color.RGBA{R: 255, G: 120, B: 40, A: 255}
)

// fillTerrainRGBA paints the enabled layers of tex into buf, which holds
// 4 bytes per texture pixel. Elevation lightens the ground, population and
// water blend their colors in proportion to the channel value.
func fillTerrainRGBA(buf []byte, tex *terrain.Texture, layers Layers) {
	w, h := tex.Width(), tex.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			fx, fy := float32(x), float32(y)
			r, g, b := float64(groundColor.R), float64(groundColor.G), float64(groundColor.B)
			if layers.Elevation {
				e := tex.Elevation(fx, fy)
				r, g, b = mix(r, 200, e), mix(g, 190, e), mix(b, 170, e)
			}
			if layers.Population {
				p := tex.Population(fx, fy)
				r, g, b = mix(r, float64(populationColor.R), p), mix(g, float64(populationColor.G), p), mix(b, float64(populationColor.B), p)
			}
			if layers.Water {
				wv := tex.Water(fx, fy)
				r, g, b = mix(r, float64(waterColor.R), wv), mix(g, float64(waterColor.G), wv), mix(b, float64(waterColor.B), wv)
			}
			base := (y*w + x) * 4
			buf[base+0] = uint8(r)
			buf[base+1] = uint8(g)
			buf[base+2] = uint8(b)
			buf[base+3] = 255
		}
	}
}

func mix(a, b, t float64) float64 {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return a + (b-a)*t
}
