package ui

import (
	"image"
	"math"
	"strconv"

	"arbor/internal/core"
)

// Controls holds the +/- state of every HUD-adjustable parameter of a
// variant. It has no ebiten dependency so the stepping rules can be tested
// headless.
type Controls struct {
	states      []controlState
	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter
	changed     bool
}

type controlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// NewControls collects the controls v exposes and lays them out for a
// panel of the given width.
func NewControls(v any, width int) *Controls {
	c := &Controls{}
	if provider, ok := v.(core.ParameterControlsProvider); ok {
		for _, ctrl := range provider.ParameterControls() {
			c.states = append(c.states, controlState{control: ctrl, value: "--"})
		}
	}
	if setter, ok := v.(core.IntParameterSetter); ok {
		c.intSetter = setter
	}
	if setter, ok := v.(core.FloatParameterSetter); ok {
		c.floatSetter = setter
	}
	c.layout(width)
	return c
}

// Len returns the number of controls.
func (c *Controls) Len() int { return len(c.states) }

// Value returns the display string of control i.
func (c *Controls) Value(i int) string { return c.states[i].value }

// Refresh loads the current values from a snapshot.
func (c *Controls) Refresh(snap core.ParameterSnapshot) {
	for i := range c.states {
		st := &c.states[i]
		st.hasValue = false
		st.value = "--"
		param, ok := snap.Lookup(st.control.Key)
		if !ok {
			continue
		}
		switch st.control.Type {
		case core.ParamTypeInt:
			v, err := strconv.Atoi(param.Value)
			if err != nil {
				continue
			}
			st.intValue, st.floatValue = v, float64(v)
			st.value = strconv.Itoa(v)
			st.hasValue = true
		case core.ParamTypeFloat:
			v, err := strconv.ParseFloat(param.Value, 64)
			if err != nil {
				continue
			}
			st.floatValue = v
			st.value = formatFloat(st.control.Step, v)
			st.hasValue = true
		}
	}
}

// target is the value one step in direction from the current one, clamped,
// and whether it differs from the current value.
func (c *Controls) target(st *controlState, direction int) (float64, bool) {
	if !st.hasValue || direction == 0 {
		return 0, false
	}
	switch st.control.Type {
	case core.ParamTypeInt:
		if c.intSetter == nil {
			return 0, false
		}
		step := math.Round(st.control.Step)
		if step <= 0 {
			step = 1
		}
		t := math.Round(st.control.Clamp(float64(st.intValue) + float64(direction)*step))
		return t, int(t) != st.intValue
	case core.ParamTypeFloat:
		if c.floatSetter == nil {
			return 0, false
		}
		step := st.control.Step
		if step <= 0 {
			step = 0.05
		}
		t := st.control.Clamp(st.floatValue + float64(direction)*step)
		return t, math.Abs(t-st.floatValue) >= 1e-9
	}
	return 0, false
}

// CanAdjust reports whether control i can move in direction.
func (c *Controls) CanAdjust(i, direction int) bool {
	_, ok := c.target(&c.states[i], direction)
	return ok
}

// Adjust moves control i one step in direction and reports whether the
// variant accepted the new value.
func (c *Controls) Adjust(i, direction int) bool {
	st := &c.states[i]
	t, ok := c.target(st, direction)
	if !ok {
		return false
	}
	switch st.control.Type {
	case core.ParamTypeInt:
		if !c.intSetter.SetIntParameter(st.control.Key, int(t)) {
			return false
		}
		st.intValue, st.floatValue = int(t), t
		st.value = strconv.Itoa(int(t))
	case core.ParamTypeFloat:
		if !c.floatSetter.SetFloatParameter(st.control.Key, t) {
			return false
		}
		st.floatValue = t
		st.value = formatFloat(st.control.Step, t)
	}
	c.changed = true
	return true
}

// Click applies the button under panel coordinates (x, y), if any.
func (c *Controls) Click(x, y int) bool {
	pt := image.Pt(x, y)
	for i := range c.states {
		switch {
		case pt.In(c.states[i].minusRect):
			return c.Adjust(i, -1)
		case pt.In(c.states[i].plusRect):
			return c.Adjust(i, 1)
		}
	}
	return false
}

// TakeChanged reports whether any value changed since the last call.
func (c *Controls) TakeChanged() bool {
	changed := c.changed
	c.changed = false
	return changed
}

func (c *Controls) layout(width int) {
	if width <= 0 {
		return
	}
	for i := range c.states {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plus := image.Rect(width-panelPadding-buttonSize, buttonY, width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		c.states[i].top = top
		c.states[i].minusRect = minus
		c.states[i].plusRect = plus
	}
}

func formatFloat(step, value float64) string {
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
	controlsTop    = panelPadding + headerBaseline + 14
)
