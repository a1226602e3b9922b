// Package entropy provides the seeded random stream owned by one
// simulation replica. Every stochastic operation draws from the same
// stream, so two replicas with the same seed replay identically and
// replicas never share mutable state.
package entropy

import (
	"math"
	"math/rand"
)

// Source is the minimal randomness contract, satisfied by *rand.Rand.
// Tests substitute scripted sources to pin individual draws.
type Source interface {
	Float64() float64
	NormFloat64() float64
	Intn(n int) int
}

// Stream wraps a Source with the samplers the simulation needs.
type Stream struct {
	src Source
}

// NewStream creates a stream seeded for one replica.
func NewStream(seed int64) *Stream {
	return &Stream{src: rand.New(rand.NewSource(seed))}
}

// FromSource wraps an existing source.
func FromSource(src Source) *Stream {
	return &Stream{src: src}
}

// Float returns a uniform draw in [0, 1).
func (s *Stream) Float() float64 {
	return s.src.Float64()
}

// Uniform returns a uniform draw in [lo, hi). A degenerate range is
// treated as the single point lo.
func (s *Stream) Uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.src.Float64()*(hi-lo)
}

// Normal returns a draw from Normal(mean, sd).
func (s *Stream) Normal(mean, sd float64) float64 {
	return mean + s.src.NormFloat64()*sd
}

// Intn returns a uniform int in [0, n).
func (s *Stream) Intn(n int) int {
	return s.src.Intn(n)
}

// Chance returns true with probability p.
func (s *Stream) Chance(p float64) bool {
	return s.src.Float64() < p
}

// Heading returns a unit vector with uniform random direction.
func (s *Stream) Heading() (x, y float64) {
	theta := s.src.Float64() * 2 * math.Pi
	return math.Cos(theta), math.Sin(theta)
}
