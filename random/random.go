// Package random provides the seeded random source shared by the sampling policy
// and the tree trainers of one forest build.
//
// A build is reproducible only when the source is seeded identically and consulted
// in the same order, so the source is an explicit dependency rather than global state.
package random

import (
	"math/rand/v2"
	"sync"
)

// Source is the random-number contract relied upon by sampling.
type Source interface {
	// Shuffle uniformly permutes n elements using swap.
	Shuffle(n int, swap func(i, j int))
	// IntN returns a uniform integer in [0, n). It panics if n <= 0.
	IntN(n int) int
	// Uint64 returns a uniform 64-bit value, used to derive child seeds.
	Uint64() uint64
}

// PCG is a Source backed by a math/rand/v2 PCG generator.
// It is safe for concurrent use.
type PCG struct {
	mu   sync.Mutex
	seed uint64
	r    *rand.Rand
}

// New returns a PCG source seeded with seed.
func New(seed uint64) *PCG {
	return &PCG{
		seed: seed,
		r:    rand.New(rand.NewPCG(seed, seed)),
	}
}

// Seed returns the seed the source was created with.
func (p *PCG) Seed() uint64 {
	return p.seed
}

// Shuffle implements Source.
func (p *PCG) Shuffle(n int, swap func(i, j int)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.r.Shuffle(n, swap)
}

// IntN implements Source.
func (p *PCG) IntN(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.r.IntN(n)
}

// Uint64 implements Source.
func (p *PCG) Uint64() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.r.Uint64()
}

// ShuffleInts permutes s in place.
func ShuffleInts(src Source, s []int) {
	src.Shuffle(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
}

// DrawOne returns a uniformly chosen element of s, with replacement.
// It panics if s is empty.
func DrawOne[E any](src Source, s []E) E {
	return s[src.IntN(len(s))]
}
