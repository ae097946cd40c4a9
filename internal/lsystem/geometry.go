package lsystem

import "fmt"

// GeometryClass names the instanced mesh a transform is emitted for.
type GeometryClass string

const (
	Branch  GeometryClass = "branch"
	Leaf    GeometryClass = "leaf"
	Highway GeometryClass = "highway"
	Road    GeometryClass = "road"
)

// Falloff selects which of the turtle's falloff bases a term decays with.
type Falloff uint8

const (
	FalloffNone Falloff = iota
	FalloffScale
	FalloffHeight
)

// Term is Coef * base^depth, where base is picked by Falloff.
type Term struct {
	Coef    float32
	Falloff Falloff
}

// ScaleProfile is the per-axis scale of one geometry class.
type ScaleProfile struct {
	X, Y, Z Term
}

func uniform(t Term) ScaleProfile { return ScaleProfile{X: t, Y: t, Z: t} }

var profiles = map[GeometryClass]ScaleProfile{
	Branch: {
		X: Term{0.2, FalloffScale},
		Y: Term{3.0, FalloffHeight},
		Z: Term{0.2, FalloffScale},
	},
	Leaf: uniform(Term{0.5, FalloffScale}),
	Highway: {
		X: Term{0.06, FalloffNone},
		Y: Term{0.5, FalloffNone},
		Z: Term{0.06, FalloffNone},
	},
	Road: {
		X: Term{0.03, FalloffScale},
		Y: Term{0.25, FalloffScale},
		Z: Term{0.03, FalloffScale},
	},
}

// Profile returns the scale profile registered for class.
func Profile(class GeometryClass) (ScaleProfile, error) {
	p, ok := profiles[class]
	if !ok {
		return ScaleProfile{}, fmt.Errorf("%w: %q", ErrUnknownGeometry, class)
	}
	return p, nil
}
