package space

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/contagion/internal/entropy"
)

// Placer yields initial positions inside the domain.
type Placer interface {
	Place() Vec2
}

// UniformPlacer samples positions uniformly over the torus.
type UniformPlacer struct {
	Torus Torus
	Rand  *entropy.Stream
}

func (p UniformPlacer) Place() Vec2 {
	return Vec2{
		X: p.Rand.Float() * p.Torus.Width,
		Y: p.Rand.Float() * p.Torus.Height,
	}
}

// NoisePlacer samples positions from a smooth density field, producing
// clustered populations (towns and empty countryside) instead of a
// uniform spread. Deterministic under the seed.
type NoisePlacer struct {
	torus   Torus
	scale   float64
	noise   opensimplex.Noise
	rand    *entropy.Stream
	uniform UniformPlacer
}

// NewNoisePlacer creates a clustered placer. scale is the feature size
// of the density field in domain units.
func NewNoisePlacer(t Torus, scale float64, seed int64, rand *entropy.Stream) *NoisePlacer {
	return &NoisePlacer{
		torus:   t,
		scale:   scale,
		noise:   opensimplex.NewNormalized(seed),
		rand:    rand,
		uniform: UniformPlacer{Torus: t, Rand: rand},
	}
}

// Place rejection-samples against the density field, falling back to a
// uniform draw if the field keeps rejecting.
func (p *NoisePlacer) Place() Vec2 {
	for i := 0; i < 64; i++ {
		v := p.uniform.Place()
		density := p.noise.Eval2(v.X/p.scale, v.Y/p.scale)
		if p.rand.Float() < density {
			return v
		}
	}
	return p.uniform.Place()
}
