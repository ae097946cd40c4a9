package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestPacerRevealsAtRate(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	p := &Pacer{now: clock.now}
	p.SetRate(10)
	p.Restart()

	assert.Equal(t, 0, p.Visible(50))
	clock.t = clock.t.Add(500 * time.Millisecond)
	assert.Equal(t, 5, p.Visible(50))
	assert.False(t, p.Done(50))

	clock.t = clock.t.Add(10 * time.Second)
	assert.Equal(t, 50, p.Visible(50))
	assert.True(t, p.Done(50))

	p.Restart()
	assert.Equal(t, 0, p.Visible(50))
}

func TestPacerZeroRateShowsAll(t *testing.T) {
	p := NewPacer(0)
	assert.Equal(t, 12, p.Visible(12))
	assert.Equal(t, 0, p.Visible(0))
	assert.True(t, p.Done(0))
}
