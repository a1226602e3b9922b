package engine

import (
	"github.com/talgya/contagion/internal/entropy"
	"github.com/talgya/contagion/internal/sim"
)

// Transmission applies the pairwise infection rule to proximate pairs.
type Transmission struct {
	MaskEffect float64 // multiplier applied once per mask worn in the pair

	prog *sim.Progression
	rand *entropy.Stream
}

// NewTransmission creates the transmission model for one replica.
func NewTransmission(maskEffect float64, prog *sim.Progression, rand *entropy.Stream) *Transmission {
	return &Transmission{MaskEffect: maskEffect, prog: prog, rand: rand}
}

// Apply runs the transmission check on a proximate pair. Only pairs
// with exactly one infected member can transmit. A recovered contact is
// gated by its own reinfection probability rather than the infected
// agent's transmissibility. Returns true when a new infection started.
func (t *Transmission) Apply(a, b *sim.Agent) bool {
	var infected, healthy *sim.Agent
	switch {
	case a.Status == sim.StatusInfected && b.Status != sim.StatusInfected:
		infected, healthy = a, b
	case b.Status == sim.StatusInfected && a.Status != sim.StatusInfected:
		infected, healthy = b, a
	default:
		return false
	}

	beta := infected.Beta
	if healthy.Status == sim.StatusRecovered {
		beta = healthy.ReinfectProb
	}
	if infected.Mask {
		beta *= t.MaskEffect
	}
	if healthy.Mask {
		beta *= t.MaskEffect
	}

	if t.rand.Float() > beta {
		return false
	}
	t.prog.Infect(healthy)
	return true
}
