package lsystem

import (
	"fmt"
	"sort"
)

// ActionKind tags the variant held by an Action.
type ActionKind uint8

const (
	ActionPush ActionKind = iota + 1
	ActionPop
	ActionRotate
	ActionAdvance
	ActionSteer
)

func (k ActionKind) String() string {
	switch k {
	case ActionPush:
		return "push"
	case ActionPop:
		return "pop"
	case ActionRotate:
		return "rotate"
	case ActionAdvance:
		return "advance"
	case ActionSteer:
		return "steer"
	}
	return fmt.Sprintf("ActionKind(%d)", uint8(k))
}

// Axis is one of the turtle's local rotation axes.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Action is a tagged union; only the fields relevant to Kind are read.
type Action struct {
	Kind ActionKind

	// Rotate: Sign * the interpreter angle about Axis, or Fixed degrees
	// when Fixed is non-zero.
	Axis  Axis
	Sign  float32
	Fixed float32

	// Advance: move by the sum of Stride terms, then emit Class.
	Class  GeometryClass
	Stride []Term

	// Steer: Candidates headings drawn within +-Spread degrees about Z,
	// each sampled Lookahead units ahead.
	Candidates int
	Spread     float32
	Lookahead  float32
}

// Push snapshots the turtle onto the history stack.
func Push() Action { return Action{Kind: ActionPush} }

// Pop restores the turtle from the history stack.
func Pop() Action { return Action{Kind: ActionPop} }

// RotateBy turns sign * angle about axis.
func RotateBy(axis Axis, sign float32) Action {
	return Action{Kind: ActionRotate, Axis: axis, Sign: sign}
}

// RotateFixed turns a constant number of degrees about axis.
func RotateFixed(axis Axis, degrees float32) Action {
	return Action{Kind: ActionRotate, Axis: axis, Fixed: degrees}
}

// Advance moves forward by the stride and emits a transform for class.
func Advance(class GeometryClass, stride ...Term) Action {
	return Action{Kind: ActionAdvance, Class: class, Stride: stride}
}

// Steer picks the most populated dry heading among sampled candidates.
func Steer(candidates int, spread, lookahead float32) Action {
	return Action{Kind: ActionSteer, Candidates: candidates, Spread: spread, Lookahead: lookahead}
}

// DrawingRule binds one symbol to an action.
type DrawingRule struct {
	Symbol rune
	Action Action
}

// DrawingTable is the static dispatch table of an interpreter.
type DrawingTable map[rune]Action

// NewDrawingTable builds a table from rules; later rules win.
func NewDrawingTable(rules ...DrawingRule) DrawingTable {
	t := make(DrawingTable, len(rules))
	for _, r := range rules {
		t[r.Symbol] = r.Action
	}
	return t
}

// Rules lists the table in ascending symbol order.
func (t DrawingTable) Rules() []DrawingRule {
	out := make([]DrawingRule, 0, len(t))
	for sym, a := range t {
		out = append(out, DrawingRule{Symbol: sym, Action: a})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

// TreeTable is the branch/leaf dispatch table.
func TreeTable() DrawingTable {
	return NewDrawingTable(
		DrawingRule{'[', Push()},
		DrawingRule{']', Pop()},
		DrawingRule{'+', RotateBy(AxisX, 1)},
		DrawingRule{'-', RotateBy(AxisX, -1)},
		DrawingRule{'&', RotateBy(AxisY, 1)},
		DrawingRule{'^', RotateBy(AxisY, -1)},
		DrawingRule{',', RotateBy(AxisZ, 1)},
		DrawingRule{'/', RotateBy(AxisZ, -1)},
		DrawingRule{'|', RotateFixed(AxisY, 180)},
		DrawingRule{'F', Advance(Branch, Term{0.6, FalloffScale})},
		DrawingRule{'L', Advance(Leaf, Term{3.0, FalloffHeight}, Term{1.2, FalloffScale})},
	)
}

// HighwayTable is the highway/road dispatch table. Turns happen in the
// ground plane, about Z.
func HighwayTable() DrawingTable {
	return NewDrawingTable(
		DrawingRule{'[', Push()},
		DrawingRule{']', Pop()},
		DrawingRule{'+', RotateBy(AxisZ, 1)},
		DrawingRule{'-', RotateBy(AxisZ, -1)},
		DrawingRule{'H', Advance(Highway, Term{0.1, FalloffNone})},
		DrawingRule{'R', Advance(Road, Term{0.05, FalloffScale})},
		DrawingRule{'~', Steer(3, 60, 0.1)},
	)
}

// Tables maps drawing table names usable from grammar files.
var Tables = map[string]func() DrawingTable{
	"tree":    TreeTable,
	"highway": HighwayTable,
}
