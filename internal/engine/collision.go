package engine

import (
	"github.com/talgya/contagion/internal/sim"
	"github.com/talgya/contagion/internal/space"
)

// Deflect applies a mass-weighted elastic collision to a proximate
// pair, exchanging the velocity components along the minimum-image line
// between the two agents. An immobilized agent (infinite mass) acts as
// a fixed obstacle: its own velocity never changes and the mobile
// partner simply bounces off it. This is what keeps mobile agents from
// drifting through quarantined ones.
func Deflect(t space.Torus, a, b *sim.Agent) {
	d := t.Delta(a.Position, b.Position)
	dist := d.Norm()
	if dist == 0 {
		return
	}
	n := d.Scale(1 / dist)

	aFixed, bFixed := a.Immobile(), b.Immobile()
	switch {
	case aFixed && bFixed:
		return
	case bFixed:
		bounce(a, n)
	case aFixed:
		bounce(b, n.Scale(-1))
	default:
		ua := a.Velocity.Dot(n)
		ub := b.Velocity.Dot(n)
		sum := a.Mass + b.Mass
		va := (ua*(a.Mass-b.Mass) + 2*b.Mass*ub) / sum
		vb := (ub*(b.Mass-a.Mass) + 2*a.Mass*ua) / sum
		a.Velocity = a.Velocity.Add(n.Scale(va - ua))
		b.Velocity = b.Velocity.Add(n.Scale(vb - ub))
	}
}

// bounce reflects a mobile agent off a fixed obstacle along the contact
// normal, ignoring the obstacle's (zero) velocity entirely.
func bounce(a *sim.Agent, n space.Vec2) {
	u := a.Velocity.Dot(n)
	a.Velocity = a.Velocity.Add(n.Scale(-2 * u))
}
