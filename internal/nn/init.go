package nn

import (
	"math/rand/v2"
	"time"
)

// NewRand returns a PCG generator seeded with seed.
//
// Weight initialization is not security-critical; a seeded generator keeps
// runs reproducible.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewTimeRand returns a generator seeded from the wall clock.
func NewTimeRand() *rand.Rand {
	//nolint:gosec // Using math/rand for weight initialization (not security-critical)
	return NewRand(uint64(time.Now().UnixNano()))
}

// InitializeAll initializes l and every layer after it, in chain order,
// from the same generator.
func InitializeAll(l Layer, rng *rand.Rand) {
	for layer := range All(l) {
		layer.Initialize(rng)
	}
}
