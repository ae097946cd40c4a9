package core

import "time"

// Pacer reveals a generated structure a few instances at a time so the
// viewer can show growth instead of the finished result.
type Pacer struct {
	rate  float64
	start time.Time
	now   func() time.Time
}

// NewPacer reveals perSecond instances per second. Non-positive rates reveal
// everything at once.
func NewPacer(perSecond int) *Pacer {
	p := &Pacer{now: time.Now}
	p.SetRate(perSecond)
	p.Restart()
	return p
}

// SetRate changes the reveal rate. It is safe to call from the main loop.
func (p *Pacer) SetRate(perSecond int) {
	p.rate = float64(perSecond)
}

// Restart begins a new reveal from zero instances.
func (p *Pacer) Restart() {
	p.start = p.now()
}

// Visible reports how many of total instances should be shown now.
func (p *Pacer) Visible(total int) int {
	if total <= 0 {
		return 0
	}
	if p.rate <= 0 {
		return total
	}
	n := int(p.now().Sub(p.start).Seconds() * p.rate)
	if n > total {
		return total
	}
	if n < 0 {
		return 0
	}
	return n
}

// Done reports whether all of total instances are visible.
func (p *Pacer) Done(total int) bool {
	return p.Visible(total) >= total
}
