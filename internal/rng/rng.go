// Package rng provides the random index capability consumed by bag draws.
package rng

import (
	"fmt"
	"math/rand/v2"
)

// Source produces bounded random indices.
//
// NextIndex must return a value in [0, bound) for any positive bound.
// Implementations are not required to be uniform; production code uses
// Uniform or Seeded, tests use a scripted sequence.
type Source interface {
	NextIndex(bound int) int
}

// Func adapts a plain function to the Source interface.
type Func func(bound int) int

// NextIndex calls f(bound).
func (f Func) NextIndex(bound int) int {
	return f(bound)
}

// Uniform draws from the process-wide math/rand/v2 generator.
// It is safe for concurrent use.
type Uniform struct{}

// NextIndex returns a uniformly distributed index in [0, bound).
// Panics if bound <= 0.
func (Uniform) NextIndex(bound int) int {
	mustPositive(bound)
	return rand.IntN(bound)
}

// Seeded is a reproducible PCG-backed source. Two Seeded values built from
// the same seed produce the same index sequence for the same bound sequence,
// which is what lets a recorded game be replayed from its seed alone.
//
// Seeded is not safe for concurrent use.
type Seeded struct {
	seed uint64
	r    *rand.Rand
}

// pcgStream separates the PCG stream from the seed so seed 0 is usable.
const pcgStream = 0x9e3779b97f4a7c15

// NewSeeded creates a Seeded source.
func NewSeeded(seed uint64) *Seeded {
	return &Seeded{
		seed: seed,
		r:    rand.New(rand.NewPCG(seed, seed^pcgStream)),
	}
}

// Seed returns the seed the source was created with.
func (s *Seeded) Seed() uint64 {
	return s.seed
}

// NextIndex returns the next index in [0, bound).
// Panics if bound <= 0.
func (s *Seeded) NextIndex(bound int) int {
	mustPositive(bound)
	return s.r.IntN(bound)
}

// NewSeed returns a fresh random seed for a new game.
func NewSeed() uint64 {
	return rand.Uint64()
}

func mustPositive(bound int) {
	if bound <= 0 {
		panic(fmt.Sprintf("rng: bound must be positive, got %d", bound))
	}
}
