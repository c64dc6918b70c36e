package agent

import "math/rand/v2"

// Rand is the random source an Agent draws from. *rand.Rand from
// math/rand/v2 satisfies it; tests supply fixed sequences.
type Rand interface {
	Float64() float64
	IntN(n int) int
	NormFloat64() float64
}

// NewRand returns a seeded PCG source.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// boundedNorm returns a normal sample clamped to ±NoiseClamp.
func boundedNorm(r Rand) float64 {
	return max(-NoiseClamp, min(NoiseClamp, r.NormFloat64()))
}
