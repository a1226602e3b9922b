// Package sim provides the per-individual data model: agent state,
// the per-episode disease curve records, and the progression and
// lifecycle rules that mutate them each tick.
package sim

import (
	"math"

	"github.com/talgya/contagion/internal/space"
)

// AgentID is a stable identifier for an agent, assigned at spawn and
// never reused.
type AgentID uint64

// Status is the epidemiological compartment of an agent.
type Status uint8

const (
	StatusSusceptible Status = iota
	StatusInfected
	StatusRecovered
)

func (s Status) String() string {
	switch s {
	case StatusSusceptible:
		return "susceptible"
	case StatusInfected:
		return "infected"
	case StatusRecovered:
		return "recovered"
	default:
		return "unknown"
	}
}

// SeverityCurve holds the severity trajectory parameters for one
// infection episode. Regenerated when an agent recovers, ready for a
// possible next episode.
type SeverityCurve struct {
	PeakTime  float64 // time after infection at which growth stops
	Onset     float64 // inflection point of the logistic rise
	Steepness float64
	Peak      float64 // severity ceiling, age-dependent
	Decline   float64 // linear recovery slope after the peak
}

// TransmissionCurve holds the transmissibility trajectory parameters
// for one infection episode. Regenerated on every infection event.
type TransmissionCurve struct {
	PeakTime   float64
	MedianTime float64
	Steepness  float64
	Peak       float64
	Decline    float64 // linear decay slope after the peak
}

// Agent is one individual. Agents live in a slice owned by the engine
// and are addressed by index; Alive marks removal without invalidating
// iteration (dead agents are skipped and never revived).
type Agent struct {
	ID  AgentID `json:"id"`
	Age int     `json:"age"`

	// Fixed at spawn.
	Mask             bool `json:"mask"`
	IgnoreQuarantine bool `json:"ignore_quarantine"`

	Position space.Vec2 `json:"position"`
	Velocity space.Vec2 `json:"velocity"`
	Mass     float64    `json:"mass"` // +Inf while immobilized

	Status        Status  `json:"status"`
	Beta          float64 `json:"beta"`     // current transmission probability
	Severity      float64 `json:"severity"` // 0–100
	InfectionTime float64 `json:"infection_time"`
	CriticalTime  float64 `json:"critical_time"` // cumulative time above critical severity
	RecoveryTime  float64 `json:"recovery_time"`
	ReinfectProb  float64 `json:"reinfect_prob"`

	Quarantined  bool `json:"quarantined"`
	Hospitalized bool `json:"hospitalized"`
	Alive        bool `json:"alive"`

	Transmission TransmissionCurve `json:"-"`
	SeverityArc  SeverityCurve     `json:"-"`
}

// Immobilize pins the agent in place: infinite mass, zero velocity.
// Used for quarantine, hospitalization, and level-0 lockdown.
func (a *Agent) Immobilize() {
	a.Mass = math.Inf(1)
	a.Velocity = space.Vec2{}
}

// Release restores mobility at the given speed along a heading.
func (a *Agent) Release(speed, hx, hy float64) {
	a.Mass = 1
	a.Velocity = space.Vec2{X: hx * speed, Y: hy * speed}
}

// Immobile reports whether the agent currently acts as a fixed obstacle.
func (a *Agent) Immobile() bool {
	return math.IsInf(a.Mass, 1)
}
