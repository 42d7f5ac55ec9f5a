package estimation

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Jitter bounds, applied once per yield estimate
const (
	jitterMin  = 0.9
	jitterSpan = 0.2
)

// Jitter supplies the random yield multiplier
type Jitter interface {
	Factor() float64
}

// FixedJitter always returns the same multiplier; FixedJitter(1) disables jitter
type FixedJitter float64

// Factor returns the fixed multiplier
func (f FixedJitter) Factor() float64 {
	return float64(f)
}

// RandomJitter draws uniform multipliers in [0.9, 1.1] from a seeded source.
// It is safe for concurrent use.
type RandomJitter struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomJitter creates a jitter source; equal seeds replay equal sequences
func NewRandomJitter(seed uint64) *RandomJitter {
	return &RandomJitter{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewTimeSeededJitter creates a jitter source seeded from the clock
func NewTimeSeededJitter() *RandomJitter {
	return NewRandomJitter(uint64(time.Now().UnixNano()))
}

// Factor returns the next multiplier
func (j *RandomJitter) Factor() float64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return jitterMin + j.rng.Float64()*jitterSpan
}
