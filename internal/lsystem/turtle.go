package lsystem

import (
	"cogentcore.org/core/math32"
)

// Tree falloff bases.
const (
	DefaultScaleFalloff  = 0.8
	DefaultHeightFalloff = 0.5
)

// Turtle is the drawing cursor interpreted from a symbol stream. It is a
// value type: copies share nothing.
type Turtle struct {
	Position    math32.Vector3
	Orientation math32.Quat
	Depth       int

	ScaleFalloff  float32
	HeightFalloff float32
}

// NewTurtle returns a turtle at the origin with identity orientation and the
// tree falloff constants.
func NewTurtle() Turtle {
	return Turtle{
		Orientation:   math32.NewQuat(0, 0, 0, 1),
		ScaleFalloff:  DefaultScaleFalloff,
		HeightFalloff: DefaultHeightFalloff,
	}
}

// Rotate composes a rotation given as Euler angles in degrees onto the
// current orientation: Orientation = Orientation * delta.
func (t *Turtle) Rotate(alpha, beta, gamma float32) {
	delta := math32.NewQuatEuler(math32.Vec3(alpha, beta, gamma).MulScalar(math32.DegToRadFactor))
	t.Orientation.SetMul(delta)
}

// Up is the turtle's local up axis in world space. Advancing moves along it.
func (t *Turtle) Up() math32.Vector3 {
	return math32.Vec3(0, 1, 0).MulQuat(t.Orientation)
}

// MoveForward advances the turtle distance units along its local up axis.
func (t *Turtle) MoveForward(distance float32) {
	t.Position = t.Position.Add(t.Up().MulScalar(distance))
}

func (t *Turtle) base(f Falloff) float32 {
	switch f {
	case FalloffScale:
		return t.ScaleFalloff
	case FalloffHeight:
		return t.HeightFalloff
	}
	return 1
}

// Eval returns term.Coef * base^Depth.
func (t *Turtle) Eval(term Term) float32 {
	if term.Falloff == FalloffNone {
		return term.Coef
	}
	return term.Coef * math32.Pow(t.base(term.Falloff), float32(t.Depth))
}

// Stride sums the terms at the current depth.
func (t *Turtle) Stride(terms []Term) float32 {
	var d float32
	for _, term := range terms {
		d += t.Eval(term)
	}
	return d
}

// Scale returns the per-axis scale for class at the current depth.
func (t *Turtle) Scale(class GeometryClass) (math32.Vector3, error) {
	p, err := Profile(class)
	if err != nil {
		return math32.Vector3{}, err
	}
	return math32.Vec3(t.Eval(p.X), t.Eval(p.Y), t.Eval(p.Z)), nil
}

// TransformationMatrix returns Translation * Rotation * Scale for class.
func (t *Turtle) TransformationMatrix(class GeometryClass) (math32.Matrix4, error) {
	var m math32.Matrix4
	s, err := t.Scale(class)
	if err != nil {
		return m, err
	}
	m.SetTransform(t.Position, t.Orientation, s)
	return m, nil
}

// MakeCopy snapshots the turtle one level deeper.
func (t Turtle) MakeCopy() Turtle {
	c := t
	c.Depth = t.Depth + 1
	return c
}

// WriteOver restores position and orientation from other, one level
// shallower than other.
func (t *Turtle) WriteOver(other Turtle) {
	t.Position = other.Position
	t.Orientation = other.Orientation
	t.Depth = other.Depth - 1
}
