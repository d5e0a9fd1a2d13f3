package reaction

import (
	"math/rand/v2"
	"sync/atomic"
)

// Rand is the single pseudo-random source behind persona picks, phrase
// draws and score jitter. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// NewRand returns a PCG generator seeded with seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// SeedSequence returns a factory handing out one independent Rand per run.
// A zero seed draws each run's seed from the runtime source; any other seed
// yields a reproducible sequence seed, seed+1, seed+2, ...
func SeedSequence(seed uint64) func() Rand {
	var n atomic.Uint64
	return func() Rand {
		if seed == 0 {
			return NewRand(rand.Uint64())
		}
		return NewRand(seed + n.Add(1) - 1)
	}
}

func pick(rng Rand, pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[rng.IntN(len(pool))]
}

func draw(rng Rand, b Band) int {
	lo, hi := b.Min, b.Max
	if hi < lo {
		lo, hi = hi, lo
	}
	return ClampScore(lo + rng.IntN(hi-lo+1))
}
