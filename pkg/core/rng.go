package core

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"

	"cogentcore.org/core/base/randx"
)

// ErrEntropy is returned when the operating system cannot provide a seed.
var ErrEntropy = errors.New("random source unavailable")

// RNG is the single random source threaded through grammar expansion and
// steering. Every draw made by one generation run goes through it.
type RNG struct {
	seed int64
	r    *randx.SysRand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{seed: seed, r: randx.NewSysRand(seed)}
}

// NewEntropyRNG seeds a new RNG from the operating system. The chosen seed is
// available from Seed so a run can be reproduced later.
func NewEntropyRNG() (*RNG, error) {
	seed, err := EntropySeed()
	if err != nil {
		return nil, err
	}
	return NewRNG(seed), nil
}

// EntropySeed reads a non-negative seed from crypto/rand.
func EntropySeed() (int64, error) {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrEntropy, err)
	}
	return int64(binary.LittleEndian.Uint64(buf[:]) >> 1), nil
}

// Seed reports the seed the RNG was created with.
func (r *RNG) Seed() int64 { return r.seed }

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// Source exposes the underlying randx.Rand for callers that take the
// interface directly.
func (r *RNG) Source() randx.Rand { return r.r }
