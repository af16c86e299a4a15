package core

import (
	"math"
	"math/rand/v2"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// IntN returns a value in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Shuffle permutes n elements through swap.
func (r *RNG) Shuffle(n int, swap func(i, j int)) { r.r.Shuffle(n, swap) }

// Direction returns a uniformly distributed unit vector.
func (r *RNG) Direction() (x, y, z float64) {
	z = 2*r.r.Float64() - 1
	phi := 2 * math.Pi * r.r.Float64()
	s := math.Sqrt(1 - z*z)
	return s * math.Cos(phi), s * math.Sin(phi), z
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
