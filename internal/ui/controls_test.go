package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbor/internal/core"
)

type knobs struct {
	iterations int
	angle      float64
	reject     bool
}

func (k *knobs) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Grammar",
		Params: []core.Parameter{
			core.IntParam("iterations", "Iterations", k.iterations),
			core.FloatParam("angle", "Angle", k.angle),
		},
	}}}
}

func (k *knobs) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "iterations", Label: "Iterations", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 3, HasMin: true, HasMax: true},
		{Key: "angle", Label: "Angle", Type: core.ParamTypeFloat, Step: 2.5, Min: 0, Max: 180, HasMin: true, HasMax: true},
		{Key: "missing", Label: "Missing", Type: core.ParamTypeInt},
	}
}

func (k *knobs) SetIntParameter(key string, v int) bool {
	if k.reject || key != "iterations" {
		return false
	}
	k.iterations = v
	return true
}

func (k *knobs) SetFloatParameter(key string, v float64) bool {
	if k.reject || key != "angle" {
		return false
	}
	k.angle = v
	return true
}

func TestControlsRefresh(t *testing.T) {
	k := &knobs{iterations: 2, angle: 22.5}
	c := NewControls(k, 200)
	require.Equal(t, 3, c.Len())
	c.Refresh(k.Parameters())
	assert.Equal(t, "2", c.Value(0))
	assert.Equal(t, "22.5", c.Value(1))
	assert.Equal(t, "--", c.Value(2))
	assert.False(t, c.CanAdjust(2, 1))
}

func TestControlsAdjustClamps(t *testing.T) {
	k := &knobs{iterations: 2, angle: 1}
	c := NewControls(k, 200)
	c.Refresh(k.Parameters())

	assert.True(t, c.Adjust(0, 1))
	assert.Equal(t, 3, k.iterations)
	assert.False(t, c.CanAdjust(0, 1))
	assert.False(t, c.Adjust(0, 1))
	assert.True(t, c.TakeChanged())
	assert.False(t, c.TakeChanged())

	assert.True(t, c.Adjust(1, -1))
	assert.Equal(t, 0.0, k.angle)
	assert.Equal(t, "0.0", c.Value(1))
	assert.False(t, c.CanAdjust(1, -1))
}

func TestControlsRejectedSetKeepsValue(t *testing.T) {
	k := &knobs{iterations: 1, reject: true}
	c := NewControls(k, 200)
	c.Refresh(k.Parameters())
	assert.False(t, c.Adjust(0, 1))
	assert.Equal(t, "1", c.Value(0))
	assert.False(t, c.TakeChanged())
}

func TestControlsClickHitsButtons(t *testing.T) {
	k := &knobs{iterations: 1}
	c := NewControls(k, 200)
	c.Refresh(k.Parameters())
	plus := c.states[0].plusRect
	minus := c.states[0].minusRect
	assert.True(t, c.Click(plus.Min.X+1, plus.Min.Y+1))
	assert.Equal(t, 2, k.iterations)
	assert.True(t, c.Click(minus.Min.X+1, minus.Min.Y+1))
	assert.Equal(t, 1, k.iterations)
	assert.False(t, c.Click(0, 0))
}

func TestControlsWithoutProvider(t *testing.T) {
	c := NewControls(struct{}{}, 200)
	assert.Equal(t, 0, c.Len())
	assert.False(t, c.Click(10, 10))
}

func TestFormatFloatPrecision(t *testing.T) {
	assert.Equal(t, "0.50", formatFloat(0.05, 0.5))
	assert.Equal(t, "0.125", formatFloat(0.005, 0.125))
	assert.Equal(t, "60.0", formatFloat(5, 60))
}
