// Package testutil provides deterministic test fixtures shared across the
// assist packages: a seeded xorshift32 delta generator for the replay-
// determinism scenarios spec §8 describes, modeled on the reference
// simulator's PartitionedRNG (sim/rng.go) in spirit — a small, explicit,
// single-goroutine generator rather than a shared global RNG.
package testutil

import "github.com/cursorassist/cursorassist/assist"

// Xorshift32 is a minimal deterministic PRNG: same seed, same output
// sequence, on any host. Not safe for concurrent use.
type Xorshift32 struct {
	state uint32
}

// NewXorshift32 seeds a generator. A zero seed is remapped to 1, since
// xorshift32 never advances out of an all-zero state.
func NewXorshift32(seed uint32) *Xorshift32 {
	if seed == 0 {
		seed = 1
	}
	return &Xorshift32{state: seed}
}

// Next advances and returns the next raw 32-bit word.
func (x *Xorshift32) Next() uint32 {
	s := x.state
	s ^= s << 13
	s ^= s >> 17
	s ^= s << 5
	x.state = s
	return s
}

// Float32In returns a deterministic float32 uniformly mapped into [lo, hi].
func (x *Xorshift32) Float32In(lo, hi float32) float32 {
	frac := float32(x.Next()) / float32(^uint32(0))
	return lo + frac*(hi-lo)
}

// GenerateDeltas produces n RawInputEvent values with DX, DY drawn from
// Float32In(lo, hi), as spec §8's replay-determinism scenarios describe
// ("generate N events from xorshift32(seed=S) yielding dx, dy in [lo, hi]").
func GenerateDeltas(seed uint32, n int, lo, hi float32) []assist.RawInputEvent {
	gen := NewXorshift32(seed)
	events := make([]assist.RawInputEvent, n)
	for i := range events {
		events[i] = assist.RawInputEvent{
			DX:        gen.Float32In(lo, hi),
			DY:        gen.Float32In(lo, hi),
			HostTicks: int64(i),
		}
	}
	return events
}
