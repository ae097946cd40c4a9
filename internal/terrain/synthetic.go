package terrain

import (
	"math"

	"cogentcore.org/core/base/randx"

	"arbor/pkg/core"
)

// SyntheticPeaks is the number of population centers Synthetic places.
const SyntheticPeaks = 4

type peak struct {
	x, y, radius, weight float64
}

// Synthetic builds a deterministic map: a lake basin, an elevation ridge
// running diagonally and a few population centers kept off the water. It
// stands in for a rendered map texture when none is supplied.
func Synthetic(w, h int, rng randx.Rand) *Texture {
	grid := core.NewPixelGrid(w, h)
	w, h = grid.W, grid.H

	lakeX := 0.2 + 0.2*rng.Float64()
	lakeY := 0.6 + 0.2*rng.Float64()
	lakeR := 0.12 + 0.06*rng.Float64()

	peaks := make([]peak, 0, SyntheticPeaks)
	for len(peaks) < SyntheticPeaks {
		p := peak{
			x:      0.1 + 0.8*rng.Float64(),
			y:      0.1 + 0.8*rng.Float64(),
			radius: 0.08 + 0.12*rng.Float64(),
			weight: 0.5 + 0.5*rng.Float64(),
		}
		if math.Hypot(p.x-lakeX, p.y-lakeY) < lakeR+0.05 {
			continue
		}
		peaks = append(peaks, p)
	}

	for py := 0; py < h; py++ {
		v := (float64(py) + 0.5) / float64(h)
		for px := 0; px < w; px++ {
			u := (float64(px) + 0.5) / float64(w)

			water := 0.0
			if math.Hypot(u-lakeX, v-lakeY) < lakeR {
				water = 1
			}

			ridge := math.Abs(u-v) / math.Sqrt2
			elevation := math.Max(0, 1-ridge*3)

			pop := 0.0
			if water == 0 {
				for _, p := range peaks {
					d := math.Hypot(u-p.x, v-p.y) / p.radius
					pop += p.weight * math.Exp(-d*d)
				}
				pop *= 1 - 0.5*elevation
			}

			grid.Set(px, py, ChannelWater, toByte(water))
			grid.Set(px, py, ChannelElevation, toByte(elevation))
			grid.Set(px, py, ChannelPopulation, toByte(pop))
			grid.Set(px, py, 3, 255)
		}
	}
	return &Texture{grid: grid}
}

func toByte(v float64) uint8 {
	return uint8(math.Round(math.Min(1, math.Max(0, v)) * 255))
}
