package statement

import "math/rand/v2"

// Rand is the random source the synthesizer draws from. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// pcgStream decorrelates the two PCG seed words.
const pcgStream = 0x9e3779b97f4a7c15

// globalRand draws from the process-wide math/rand/v2 source, which is safe
// for concurrent use.
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

func (globalRand) IntN(n int) int { return rand.IntN(n) }
