package tree

import (
	"strings"
	"testing"

	"cogentcore.org/core/base/randx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbor/internal/core"
	"arbor/internal/lsystem"
)

func TestRegisteredUnderName(t *testing.T) {
	v, err := core.Lookup(Name, map[string]string{"iterations": "2", "angle": "30"})
	require.NoError(t, err)
	assert.Equal(t, Name, v.Name())
	assert.Equal(t, 2, v.Config().Iterations)
	assert.InDelta(t, 30, v.Config().Angle, 1e-6)

	_, err = core.Lookup(Name, map[string]string{"scale_falloff": "1.5"})
	assert.ErrorIs(t, err, lsystem.ErrInvalidConfig)
}

func TestZeroIterationsDrawsOneBranch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Iterations = 0
	g, err := New(cfg)
	require.NoError(t, err)

	res, err := g.Generate(randx.NewSysRand(1))
	require.NoError(t, err)
	assert.Equal(t, "F", res.Grammar)
	require.Equal(t, 1, res.Transforms.Len(lsystem.Branch))
	assert.Equal(t, 0, res.Transforms.Len(lsystem.Leaf))
	m := res.Transforms.Class(lsystem.Branch)[0]
	assert.InDelta(t, 0.6, m[13], 1e-5)
}

func TestGenerateIsReproducible(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Iterations = 3
	g, err := New(cfg)
	require.NoError(t, err)

	a, err := core.Generate(g, 1234)
	require.NoError(t, err)
	b, err := core.Generate(g, 1234)
	require.NoError(t, err)
	assert.Equal(t, a.Grammar, b.Grammar)
	assert.Equal(t, a.Transforms.Class(lsystem.Branch), b.Transforms.Class(lsystem.Branch))
	assert.Equal(t, a.Transforms.Class(lsystem.Leaf), b.Transforms.Class(lsystem.Leaf))
	assert.Equal(t, int64(1234), a.Seed)
	assert.Greater(t, a.Transforms.Len(lsystem.Leaf), 0)
}

func TestWhorlRuleSkipsTypographicQuote(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Axiom = "A"
	cfg.Iterations = 1
	g, err := New(cfg)
	require.NoError(t, err)

	res, err := g.Generate(randx.NewSysRand(7))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(res.Grammar, "’"))
	assert.Equal(t, 3, res.Transforms.Len(lsystem.Branch))
	assert.Equal(t, 3, res.Transforms.Len(lsystem.Leaf))
}

func TestFalloffReachesTurtle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Axiom = "[F]"
	cfg.Iterations = 0
	cfg.ScaleFalloff = 0.5
	g, err := New(cfg)
	require.NoError(t, err)

	res, err := g.Generate(randx.NewSysRand(1))
	require.NoError(t, err)
	m := res.Transforms.Class(lsystem.Branch)[0]
	assert.InDelta(t, 0.2*0.5, m[0], 1e-5)
	assert.InDelta(t, 0.6*0.5, m[13], 1e-5)
}

func TestParameterSetters(t *testing.T) {
	g, err := New(DefaultConfig())
	require.NoError(t, err)

	assert.True(t, g.SetIntParameter("iterations", 3))
	assert.Equal(t, 3, g.Settings().Iterations)
	assert.True(t, g.SetIntParameter("iterations", 40))
	assert.Equal(t, maxIterations, g.Settings().Iterations)
	assert.False(t, g.SetIntParameter("angle", 3))

	assert.True(t, g.SetFloatParameter("angle", 22.5))
	assert.InDelta(t, 22.5, g.Settings().Angle, 1e-6)
	assert.True(t, g.SetFloatParameter("angle", -10))
	assert.Zero(t, g.Settings().Angle)
	assert.False(t, g.SetFloatParameter("unknown", 1))

	p, ok := g.Parameters().Lookup("iterations")
	require.True(t, ok)
	assert.Equal(t, "8", p.Value)
}
