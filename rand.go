package backdrop

import "math/rand/v2"

// Source supplies the uniform random draws used by the geometry generators.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// NewSource returns a seeded PCG source. A zero seed draws a fresh seed from
// the runtime, giving a different layout on every call.
func NewSource(seed uint64) Source {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}

// coinFlip reports true with probability 1/2.
func coinFlip(src Source) bool {
	return src.Float64() > 0.5
}

// sourceOrDefault returns src, or a freshly seeded source when src is nil.
func sourceOrDefault(src Source) Source {
	if src == nil {
		return NewSource(0)
	}
	return src
}
