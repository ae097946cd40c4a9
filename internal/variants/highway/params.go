package highway

import "arbor/internal/core"

// Parameters implements core.ParameterProvider.
func (g *Generator) Parameters() core.ParameterSnapshot {
	c := g.cfg
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Grammar",
			Params: []core.Parameter{
				core.StringParam("axiom", "Axiom", c.Axiom),
				core.IntParam("iterations", "Iterations", c.Iterations),
			},
		},
		{
			Name: "Steering",
			Params: []core.Parameter{
				core.FloatParam("angle", "Rotation angle", float64(c.Angle)),
				core.IntParam("candidates", "Candidates", c.Candidates),
				core.FloatParam("spread", "Spread", float64(c.Spread)),
				core.FloatParam("lookahead", "Lookahead distance", float64(c.Lookahead)),
			},
		},
		{
			Name:    "Terrain",
			Summary: "Synthetic map unless a texture is given",
			Params: []core.Parameter{
				core.IntParam("texture_size", "Texture size", c.TextureSize),
				core.FloatParam("span", "World span", float64(c.Span)),
				core.StringParam("texture", "Texture", c.Texture),
			},
		},
	}}
}

// ParameterControls implements core.ParameterControlsProvider.
func (g *Generator) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "iterations", Label: "Iterations", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 7, HasMin: true, HasMax: true},
		{Key: "candidates", Label: "Candidates", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: MaxCandidates, HasMin: true, HasMax: true},
		{Key: "angle", Label: "Rotation angle", Type: core.ParamTypeFloat, Step: 5, Min: 0, Max: 180, HasMin: true, HasMax: true},
		{Key: "spread", Label: "Spread", Type: core.ParamTypeFloat, Step: 5, Min: 0, Max: MaxSpread, HasMin: true, HasMax: true},
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
	v := int(ctrl.Clamp(float64(value)))
	switch key {
	case "iterations":
		g.cfg.Iterations = v
	case "candidates":
		g.cfg.Candidates = v
	}
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
	case "spread":
		g.cfg.Spread = v
	}
	return true
}
