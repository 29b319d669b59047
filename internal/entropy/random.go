// Package entropy provides the injectable randomness used by map generation.
// Every stochastic decision in the engine draws from a Source so a fixed seed
// reproduces a session exactly.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"log/slog"
	mrand "math/rand"
)

// Source yields uniform floats in [0, 1).
type Source interface {
	Float64() float64
}

// Seeded is a deterministic Source backed by math/rand.
type Seeded struct {
	seed int64
	rng  *mrand.Rand
}

// NewSeeded creates a deterministic source. Seed 0 draws a seed from crypto/rand.
func NewSeeded(seed int64) *Seeded {
	if seed == 0 {
		seed = CryptoSeed()
		slog.Debug("entropy seed drawn", "seed", seed)
	}
	return &Seeded{seed: seed, rng: mrand.New(mrand.NewSource(seed))}
}

// Float64 returns the next value in the stream.
func (s *Seeded) Float64() float64 {
	return s.rng.Float64()
}

// Seed returns the seed actually in use.
func (s *Seeded) Seed() int64 {
	return s.seed
}

// Sequence replays a fixed list of values, cycling when exhausted. Used to
// script generation in tests.
type Sequence struct {
	values []float64
	next   int
}

// NewSequence creates a Source that replays values in order.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Float64 returns the next scripted value, or 0 when none were given.
func (s *Sequence) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// Draws returns how many values have been consumed.
func (s *Sequence) Draws() int {
	return s.next
}

// CryptoSeed returns a non-zero seed from crypto/rand.
func CryptoSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// This should never happen but keep the stream usable.
		return 1
	}
	seed := int64(binary.LittleEndian.Uint64(buf[:]) >> 1)
	if seed == 0 {
		seed = 1
	}
	return seed
}
