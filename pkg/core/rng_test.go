package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 32; i++ {
		assert.Equal(t, a.Float64(), b.Float64(), "draw %d", i)
	}
	assert.Equal(t, int64(42), a.Seed())
}

func TestRNGSourceSharesStream(t *testing.T) {
	a := NewRNG(7)
	b := NewRNG(7)
	first := a.Source().Float64()
	assert.Equal(t, first, b.Float64())
}

func TestEntropyRNG(t *testing.T) {
	r, err := NewEntropyRNG()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, r.Seed(), int64(0))
	v := r.Float64()
	assert.True(t, v >= 0 && v < 1)
}
