package lsystem

import (
	"testing"

	"cogentcore.org/core/base/randx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpansionRuleThresholds(t *testing.T) {
	r, err := NewExpansionRule('F',
		Weighted{0.35, "a"},
		Weighted{0.32, "b"},
		Weighted{0.33, "c"},
	)
	require.NoError(t, err)
	reps := r.Replacements()
	require.Len(t, reps, 3)
	assert.InDelta(t, 0.35, reps[0].Threshold, 1e-12)
	assert.InDelta(t, 0.67, reps[1].Threshold, 1e-12)
	assert.Equal(t, 1.0, reps[2].Threshold)
	for i := 1; i < len(reps); i++ {
		assert.Greater(t, reps[i].Threshold, reps[i-1].Threshold)
	}
}

func TestExpansionRuleConvergesToWeights(t *testing.T) {
	r := MustExpansionRule('F',
		Weighted{0.35, "a"},
		Weighted{0.32, "b"},
		Weighted{0.33, "c"},
	)
	rng := randx.NewSysRand(2024)
	const n = 20000
	counts := map[string]int{}
	for i := 0; i < n; i++ {
		counts[r.Expand(rng)]++
	}
	assert.InDelta(t, 0.35, float64(counts["a"])/n, 0.015)
	assert.InDelta(t, 0.32, float64(counts["b"])/n, 0.015)
	assert.InDelta(t, 0.33, float64(counts["c"])/n, 0.015)
}

func TestExpansionRuleSingleCertain(t *testing.T) {
	r := MustExpansionRule('S', Weighted{1.0, "FL"})
	rng := randx.NewSysRand(1)
	for i := 0; i < 10; i++ {
		assert.Equal(t, "FL", r.Expand(rng))
	}
}

func TestExpansionRuleEmptyTable(t *testing.T) {
	r, err := NewExpansionRule('X')
	require.NoError(t, err)
	assert.Equal(t, "", r.Expand(randx.NewSysRand(1)))
}

func TestExpansionRuleRejectsMalformedWeights(t *testing.T) {
	cases := map[string][]Weighted{
		"under one": {{0.3, "a"}, {0.3, "b"}},
		"over one":  {{0.7, "a"}, {0.7, "b"}},
		"zero":      {{0, "a"}, {1, "b"}},
		"negative":  {{-0.5, "a"}, {1.5, "b"}},
	}
	for name, weights := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewExpansionRule('F', weights...)
			assert.ErrorIs(t, err, ErrMalformedRule)
		})
	}
}

func TestMustExpansionRulePanicsOnMalformed(t *testing.T) {
	assert.Panics(t, func() { MustExpansionRule('F', Weighted{0.5, "a"}) })
}
