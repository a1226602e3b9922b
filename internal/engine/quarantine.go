package engine

import (
	"log/slog"

	"github.com/talgya/contagion/internal/entropy"
	"github.com/talgya/contagion/internal/sim"
)

// Quarantine levels run from full lockdown to fully open.
const (
	LevelLockdown = 0
	MaxLevel      = 4

	// releaseAgeLimit: below full reopening, only agents younger than
	// this are released.
	releaseAgeLimit = 70
)

// QuarantinePolicy recomputes population mobility whenever the
// quarantine level changes. Agents exempt from quarantine are never
// touched; their mobility is fixed at spawn.
type QuarantinePolicy struct {
	Speed float64 // configured base speed

	rand *entropy.Stream
}

// NewQuarantinePolicy creates the policy controller for one replica.
func NewQuarantinePolicy(speed float64, rand *entropy.Stream) *QuarantinePolicy {
	return &QuarantinePolicy{Speed: speed, rand: rand}
}

// Apply transitions the population to the given level.
//
// Level 0 freezes every participating agent. Levels 1–3 release
// participating agents under the age limit (and not already restricted)
// to a third, two thirds, and full speed respectively, on a fresh random
// heading. Level 4 releases everyone not restricted, regardless of age.
func (q *QuarantinePolicy) Apply(level int, agents []*sim.Agent) {
	released, frozen := 0, 0
	for _, a := range agents {
		if !a.Alive || a.IgnoreQuarantine {
			continue
		}
		if level == LevelLockdown {
			a.Immobilize()
			frozen++
			continue
		}
		if a.Quarantined || a.Hospitalized {
			continue
		}
		if level < MaxLevel && a.Age >= releaseAgeLimit {
			continue
		}
		q.ReleaseForLevel(level, a)
		released++
	}
	slog.Info("quarantine level applied", "level", level, "released", released, "frozen", frozen)
}

// ReleaseForLevel restores one agent's mobility at the speed the level
// allows. Also used when a recovered agent's restrictions are lifted.
func (q *QuarantinePolicy) ReleaseForLevel(level int, a *sim.Agent) {
	speed := q.Speed
	if level < MaxLevel {
		speed *= float64(level) / 3
	}
	hx, hy := q.rand.Heading()
	a.Release(speed, hx, hy)
}

// Restore reapplies the level's mobility rules to a single agent whose
// quarantine or hospitalization just ended. Exempt agents go back to
// full speed; under lockdown or past the age limit the agent stays put.
func (q *QuarantinePolicy) Restore(level int, a *sim.Agent) {
	if a.IgnoreQuarantine {
		hx, hy := q.rand.Heading()
		a.Release(q.Speed, hx, hy)
		return
	}
	if level == LevelLockdown || (level < MaxLevel && a.Age >= releaseAgeLimit) {
		a.Immobilize()
		return
	}
	q.ReleaseForLevel(level, a)
}
