// Package core holds small helpers shared by the rule engine and its tests.
package core

import "math/rand/v2"

// RNG draws reproducible cell states from a seed.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Neighborhood returns a random '0'/'1' string of length n.
func (r *RNG) Neighborhood(n int) string {
	buf := make([]byte, n)
	r.Fill(buf, 0.5)
	for i := range buf {
		buf[i] += '0'
	}
	return string(buf)
}

// Fill sets each cell of buf to 1 with probability density, else 0.
// Density is clamped to [0, 1].
func (r *RNG) Fill(buf []uint8, density float64) {
	density = min(max(density, 0), 1)
	for i := range buf {
		buf[i] = 0
		if r.r.Float64() < density {
			buf[i] = 1
		}
	}
}

// Source exposes the underlying generator for draws the helpers do not cover.
func (r *RNG) Source() *rand.Rand { return r.r }
