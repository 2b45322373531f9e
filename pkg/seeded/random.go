// Package seeded provides a reproducible pseudo-random sequence.
//
// Encoder and decoder build their own Random from the same seed and walk the
// same sequence. A Random is never shared between passes.
package seeded

import "math/rand"

// Random yields a deterministic float sequence for a given seed.
type Random struct {
	src *rand.Rand
}

// New returns a generator positioned at the start of the sequence for seed.
func New(seed int64) *Random {
	return &Random{src: rand.New(rand.NewSource(seed))}
}

// Next returns the next value in [0,1).
func (r *Random) Next() float64 {
	return r.src.Float64()
}

// Intn returns a value in [0,n) derived from Next. n must be positive.
func (r *Random) Intn(n int) int {
	i := int(r.Next() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
