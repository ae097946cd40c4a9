package core

import (
	"testing"

	"cogentcore.org/core/base/randx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbor/internal/lsystem"
)

type stubVariant struct {
	cfg   lsystem.Config
	draws []float64
}

func (s *stubVariant) Name() string           { return "stub" }
func (s *stubVariant) Config() lsystem.Config { return s.cfg }
func (s *stubVariant) Generate(rng randx.Rand) (*Result, error) {
	s.draws = append(s.draws, rng.Float64())
	out, err := lsystem.Interpret(s.cfg.Axiom, lsystem.TreeTable(), s.cfg.Angle)
	if err != nil {
		return nil, err
	}
	return &Result{Grammar: s.cfg.Axiom, Transforms: out}, nil
}

func TestRegistryLookup(t *testing.T) {
	Register("stub", func(cfg map[string]string) (Variant, error) {
		c, err := lsystem.FromMap(cfg)
		if err != nil {
			return nil, err
		}
		return &stubVariant{cfg: c}, nil
	})
	Register("", nil)

	assert.Contains(t, Names(), "stub")
	assert.NotContains(t, Variants(), "")

	v, err := Lookup("stub", map[string]string{"axiom": "FF"})
	require.NoError(t, err)
	assert.Equal(t, "FF", v.Config().Axiom)

	_, err = Lookup("missing", nil)
	assert.ErrorIs(t, err, ErrUnknownVariant)

	_, err = Lookup("stub", map[string]string{"iterations": "-1"})
	assert.ErrorIs(t, err, lsystem.ErrInvalidConfig)
}

func TestGenerateStampsSeed(t *testing.T) {
	a := &stubVariant{cfg: lsystem.DefaultConfig()}
	res, err := Generate(a, 42)
	require.NoError(t, err)
	assert.Equal(t, "stub", res.Variant)
	assert.Equal(t, int64(42), res.Seed)
	assert.Equal(t, 1, res.Transforms.Len(lsystem.Branch))

	b := &stubVariant{cfg: lsystem.DefaultConfig()}
	_, err = Generate(b, 42)
	require.NoError(t, err)
	assert.Equal(t, a.draws, b.draws)
}
