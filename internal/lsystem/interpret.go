package lsystem

import (
	"errors"

	"cogentcore.org/core/base/randx"

	"arbor/internal/terrain"
)

// WaterThreshold is the water value at or above which a steering candidate
// is rejected.
const WaterThreshold = 0.5

// Interpreter walks an expanded grammar and emits instance transforms.
type Interpreter struct {
	Table DrawingTable
	// Angle is the rotation angle in degrees used by RotateBy actions.
	Angle float32
	// Start is the initial turtle. The zero value means NewTurtle().
	Start *Turtle

	// Terrain, Frame and Rand drive Steer actions. Steer does nothing
	// while Terrain or Rand is nil.
	Terrain terrain.Sampler
	Frame   terrain.Frame
	Rand    randx.Rand
}

// Interpret runs grammar through table with a fresh turtle at the origin.
func Interpret(grammar string, table DrawingTable, angle float32) (*Transforms, error) {
	in := &Interpreter{Table: table, Angle: angle}
	return in.Run(grammar)
}

// Run interprets grammar from the start turtle into new buckets.
func (in *Interpreter) Run(grammar string) (*Transforms, error) {
	t := NewTurtle()
	if in.Start != nil {
		t = *in.Start
	}
	out := NewTransforms()
	if err := in.Walk(grammar, &t, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Walk interprets grammar against an explicit turtle and output buckets.
// Symbols without an action are skipped. A ']' with no matching '[' stops
// the walk with an *UnderflowError.
func (in *Interpreter) Walk(grammar string, t *Turtle, out *Transforms) error {
	var history []Turtle
	pos := 0
	for _, sym := range grammar {
		a, ok := in.Table[sym]
		if ok {
			if err := in.apply(a, t, &history, out); err != nil {
				var ue *UnderflowError
				if errors.As(err, &ue) {
					ue.Position = pos
					ue.Symbol = sym
				}
				return err
			}
		}
		pos++
	}
	return nil
}

func (in *Interpreter) apply(a Action, t *Turtle, history *[]Turtle, out *Transforms) error {
	switch a.Kind {
	case ActionPush:
		*history = append(*history, t.MakeCopy())
		t.Depth++
	case ActionPop:
		n := len(*history)
		if n == 0 {
			return &UnderflowError{}
		}
		top := (*history)[n-1]
		*history = (*history)[:n-1]
		t.WriteOver(top)
	case ActionRotate:
		deg := a.Fixed
		if deg == 0 {
			deg = a.Sign * in.Angle
		}
		rotateAbout(t, a.Axis, deg)
	case ActionAdvance:
		t.MoveForward(t.Stride(a.Stride))
		m, err := t.TransformationMatrix(a.Class)
		if err != nil {
			return err
		}
		out.Append(a.Class, m)
	case ActionSteer:
		in.steer(t, a)
	}
	return nil
}

func rotateAbout(t *Turtle, axis Axis, deg float32) {
	switch axis {
	case AxisX:
		t.Rotate(deg, 0, 0)
	case AxisY:
		t.Rotate(0, deg, 0)
	case AxisZ:
		t.Rotate(0, 0, deg)
	}
}

// steer samples candidate headings about Z, drops those that end over
// water and turns toward the most populated one.
func (in *Interpreter) steer(t *Turtle, a Action) {
	if in.Terrain == nil || in.Rand == nil || a.Candidates <= 0 {
		return
	}
	var best float32
	bestPop := -1.0
	for i := 0; i < a.Candidates; i++ {
		offset := float32(in.Rand.Float64()*2-1) * a.Spread
		ahead := *t
		ahead.Rotate(0, 0, offset)
		ahead.MoveForward(a.Lookahead)
		x, y := in.Frame.ToTexture(ahead.Position.X, ahead.Position.Y)
		if in.Terrain.Water(x, y) >= WaterThreshold {
			continue
		}
		if pop := in.Terrain.Population(x, y); pop > bestPop {
			bestPop = pop
			best = offset
		}
	}
	if bestPop >= 0 {
		t.Rotate(0, 0, best)
	}
}
