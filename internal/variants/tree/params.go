package tree

import (
	"arbor/internal/core"
)

const (
	maxIterations = 8
	maxAngle      = 180
)

// Parameters implements core.ParameterProvider.
func (g *Generator) Parameters() core.ParameterSnapshot {
	c := g.cfg
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Grammar",
			Params: []core.Parameter{
				core.StringParam("axiom", "Axiom", c.Axiom),
				core.IntParam("iterations", "Iterations", c.Iterations),
				core.IntParam("max_length", "Length limit", c.MaxLength),
			},
		},
		{
			Name: "Drawing",
			Params: []core.Parameter{
				core.FloatParam("angle", "Rotation angle", float64(c.Angle)),
				core.FloatParam("scale_falloff", "Scale falloff", float64(c.ScaleFalloff)),
				core.FloatParam("height_falloff", "Height falloff", float64(c.HeightFalloff)),
			},
		},
	}}
}

// ParameterControls implements core.ParameterControlsProvider.
func (g *Generator) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "iterations", Label: "Iterations", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: maxIterations, HasMin: true, HasMax: true},
		{Key: "angle", Label: "Rotation angle", Type: core.ParamTypeFloat, Step: 5, Min: 0, Max: maxAngle, HasMin: true, HasMax: true},
		{Key: "scale_falloff", Label: "Scale falloff", Type: core.ParamTypeFloat, Step: 0.05, Min: 0.05, Max: 1, HasMin: true, HasMax: true},
		{Key: "height_falloff", Label: "Height falloff", Type: core.ParamTypeFloat, Step: 0.05, Min: 0.05, Max: 1, HasMin: true, HasMax: true},
	}
}

func (g *Generator) control(key string) (core.ParameterControl, bool) {
	for _, c := range g.ParameterControls() {
		if c.Key == key {
			return c, true
		}
	}
	return core.ParameterControl{}, false
}

// SetIntParameter implements core.IntParameterSetter.
func (g *Generator) SetIntParameter(key string, value int) bool {
	ctrl, ok := g.control(key)
	if !ok || ctrl.Type != core.ParamTypeInt {
		return false
	}
	g.cfg.Iterations = int(ctrl.Clamp(float64(value)))
	return true
}

// SetFloatParameter implements core.FloatParameterSetter.
func (g *Generator) SetFloatParameter(key string, value float64) bool {
	ctrl, ok := g.control(key)
	if !ok || ctrl.Type != core.ParamTypeFloat {
		return false
	}
	v := float32(ctrl.Clamp(value))
	switch key {
	case "angle":
		g.cfg.Angle = v
	case "scale_falloff":
		g.cfg.ScaleFalloff = v
	case "height_falloff":
		g.cfg.HeightFalloff = v
	}
	return true
}
