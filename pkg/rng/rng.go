package rng

import (
	"math/rand/v2"

	"lukechampine.com/frand"
)

// Source of randomness used by the engine (tile spawns) and by the rollouts
// (random move choice). A single Source must not be shared between goroutines,
// unless the implementation says otherwise (see Entropy)
type Source interface {
	// Uniform integer in [0, n), n > 0
	IntN(n int) int
	// Uniform float in [0, 1)
	Float64() float64
}

// Seeded, reproducible generator. The stream is fully determined by (seed, stream),
// so tasks running in parallel can derive their own generator from a root seed
// and their task index.
func New(seed, stream uint64) Source {
	return rand.New(rand.NewPCG(seed, stream))
}

// Seed used to derive task generators from a root seed, mixes the stream
// index so that neighbouring tasks don't end up with correlated PCG states
func Derive(root uint64, index int) Source {
	return New(root^0x9e3779b97f4a7c15, uint64(index)*0xbf58476d1ce4e5b9+1)
}

type entropySource struct{}

// Non-reproducible, cryptographically strong source, safe for concurrent use
func Entropy() Source {
	return entropySource{}
}

func (entropySource) IntN(n int) int {
	return frand.Intn(n)
}

func (entropySource) Float64() float64 {
	return float64(frand.Uint64n(1<<53)) / (1 << 53)
}
