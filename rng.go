package simcore

import "math/rand"

// Rng is the only source of randomness every simulation pass is allowed to
// touch. Passing one in (rather than reaching for math/rand's global
// functions) is what makes World.Step reproducible across runs given the
// same seed and the same sequence of inputs.
type Rng interface {
	Float64() float64
	Intn(n int) int
}

// NewRng returns the standard library's PRNG seeded deterministically,
// satisfying Rng.
func NewRng(seed int64) Rng {
	return rand.New(rand.NewSource(seed))
}
