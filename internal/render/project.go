package render

import (
	"cogentcore.org/core/math32"

	"arbor/internal/lsystem"
)

// MeshHeight is the unscaled height of the instanced segment mesh. An
// advance of d units is drawn by an instance whose Y scale is d/MeshHeight.
const MeshHeight = 0.2

// Segment is a projected instance: a line in screen pixels.
type Segment struct {
	X0, Y0, X1, Y1 float32
	Class          lsystem.GeometryClass
}

// Ends returns the world-space end points of the instance m: its
// translation and the point MeshHeight back along its scaled Y axis.
func Ends(m math32.Matrix4) (from, to math32.Vector3) {
	to = math32.Vec3(m[12], m[13], m[14])
	axis := math32.Vec3(m[4], m[5], m[6])
	from = to.Sub(axis.MulScalar(MeshHeight))
	return from, to
}

// Projection is an orthographic view of the world XY plane onto a W x H
// pixel screen, world +Y up.
type Projection struct {
	CenterX, CenterY float32
	Scale            float32
	W, H             int
}

// FrameProjection shows a world square of side span centered on the origin,
// the same area a terrain.Frame of that span maps onto its texture.
func FrameProjection(span float32, w, h int) Projection {
	if span <= 0 {
		span = 1
	}
	return Projection{Scale: float32(w) / span, W: w, H: h}
}

// FitProjection frames every instance of tr with margin pixels to spare.
func FitProjection(tr *lsystem.Transforms, w, h, margin int) Projection {
	first := true
	var minX, minY, maxX, maxY float32
	for _, class := range tr.Classes() {
		for _, m := range tr.Class(class) {
			from, to := Ends(m)
			for _, p := range []math32.Vector3{from, to} {
				if first {
					minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
					first = false
					continue
				}
				minX, maxX = math32.Min(minX, p.X), math32.Max(maxX, p.X)
				minY, maxY = math32.Min(minY, p.Y), math32.Max(maxY, p.Y)
			}
		}
	}
	p := Projection{W: w, H: h, Scale: 1}
	if first {
		return p
	}
	p.CenterX, p.CenterY = (minX+maxX)/2, (minY+maxY)/2
	spanX, spanY := maxX-minX, maxY-minY
	availW, availH := float32(w-2*margin), float32(h-2*margin)
	if availW <= 0 || availH <= 0 {
		return p
	}
	switch {
	case spanX <= 0 && spanY <= 0:
	case spanX <= 0:
		p.Scale = availH / spanY
	case spanY <= 0:
		p.Scale = availW / spanX
	default:
		p.Scale = math32.Min(availW/spanX, availH/spanY)
	}
	return p
}

// ToScreen maps a world point to pixels.
func (p Projection) ToScreen(x, y float32) (float32, float32) {
	sx := float32(p.W)/2 + (x-p.CenterX)*p.Scale
	sy := float32(p.H)/2 - (y-p.CenterY)*p.Scale
	return sx, sy
}

// Segments projects the first limit instances of tr in emission order
// per class, classes in first-emission order. A negative limit projects
// everything.
func (p Projection) Segments(tr *lsystem.Transforms, limit int) []Segment {
	out := make([]Segment, 0, tr.Total())
	for _, class := range tr.Classes() {
		for _, m := range tr.Class(class) {
			if limit >= 0 && len(out) >= limit {
				return out
			}
			from, to := Ends(m)
			x0, y0 := p.ToScreen(from.X, from.Y)
			x1, y1 := p.ToScreen(to.X, to.Y)
			out = append(out, Segment{X0: x0, Y0: y0, X1: x1, Y1: y1, Class: class})
		}
	}
	return out
}
