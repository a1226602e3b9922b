package sim

import (
	"math"

	"github.com/talgya/contagion/internal/entropy"
)

// Episode duration limits. An infection episode is fatal once the agent
// has spent more than DeathCriticalTime above the critical severity
// threshold, and ends in forced recovery after ForcedRecoveryTime
// regardless of severity. Values follow the executable behavior of the
// source model (see DESIGN.md).
const (
	DeathCriticalTime  = 3.0
	ForcedRecoveryTime = 30.0

	// hospitalGrowthFactor slows severity growth while hospitalized.
	hospitalGrowthFactor = 0.5
)

// Progression advances the internal disease state of infected and
// recovered agents and runs the post-update lifecycle checks. One
// instance per replica; it owns no agent state, only parameters and
// the replica's random stream.
type Progression struct {
	DetectThreshold   float64 // severity at which infection is always detected
	CriticalThreshold float64 // severity above which time counts toward death
	ReinfectMax       float64 // cap the reinfection probability grows toward
	KBetaMin          float64
	KBetaMax          float64
	BetaPeakMean      float64 // percent; per-agent peaks sampled around this

	// Mobility restores movement for an agent whose restrictions were
	// lifted (recovery). Installed by the engine so released agents
	// follow the quarantine level in force.
	Mobility func(*Agent)

	rand *entropy.Stream
}

// NewProgression creates a progression engine drawing from the given stream.
func NewProgression(rand *entropy.Stream) *Progression {
	return &Progression{rand: rand}
}

// NewSeverityCurve samples severity trajectory parameters for one
// episode. The ceiling rises sharply with age: near 100 past 70, low
// for the young.
func NewSeverityCurve(rand *entropy.Stream, age int) SeverityCurve {
	ceiling := 100.0 / (1.0 + math.Exp(-0.2*(float64(age)-70.0)))
	onset := rand.Uniform(2, 14)
	return SeverityCurve{
		Onset:     onset,
		PeakTime:  onset + rand.Uniform(1, 14),
		Steepness: rand.Uniform(0.1, 2),
		Peak:      clamp(rand.Normal(ceiling, 20), 0, 100),
		Decline:   rand.Normal(10, 2),
	}
}

// NewTransmissionCurve samples transmissibility trajectory parameters
// for one episode. Transmissibility peaks shortly before symptom onset.
func (p *Progression) NewTransmissionCurve(a *Agent) TransmissionCurve {
	peakTime := a.SeverityArc.Onset - p.rand.Uniform(1, 3)
	if peakTime < 0 {
		peakTime = 0
	}
	peak := p.rand.Normal(p.BetaPeakMean, 0.05*p.BetaPeakMean) / 100
	return TransmissionCurve{
		PeakTime:   peakTime,
		MedianTime: 2 + (peakTime-2)/2,
		Steepness:  p.rand.Uniform(p.KBetaMin, p.KBetaMax),
		Peak:       peak,
		Decline:    peak / (11 - peakTime),
	}
}

// Infect starts a new infection episode: fresh transmission curve,
// counters reset. The severity curve was regenerated at the previous
// recovery (or at spawn), so it is already episode-fresh.
func (p *Progression) Infect(a *Agent) {
	a.Status = StatusInfected
	a.InfectionTime = 0
	a.CriticalTime = 0
	a.ReinfectProb = 0
	a.Transmission = p.NewTransmissionCurve(a)
}

// Advance moves a's disease state forward by dt. No-op for susceptible
// agents.
func (p *Progression) Advance(a *Agent, dt float64) {
	switch a.Status {
	case StatusInfected:
		p.advanceInfected(a, dt)
	case StatusRecovered:
		p.advanceRecovered(a, dt)
	}
}

func (p *Progression) advanceInfected(a *Agent, dt float64) {
	a.InfectionTime += dt
	t := a.InfectionTime

	var dBeta float64
	if t < a.Transmission.PeakTime {
		dBeta = logisticSlope(t, a.Transmission.MedianTime, a.Transmission.Steepness, a.Transmission.Peak)
	} else {
		dBeta = -a.Transmission.Decline
	}
	a.Beta += dBeta * dt
	if a.Beta < 0 {
		a.Beta = 0
	}

	var dS float64
	if t < a.SeverityArc.PeakTime {
		dS = logisticSlope(t, a.SeverityArc.Onset, a.SeverityArc.Steepness, a.SeverityArc.Peak)
		if a.Hospitalized {
			dS *= hospitalGrowthFactor
		}
	} else {
		dS = -a.SeverityArc.Decline
	}
	a.Severity += dS * dt
	if a.Severity > 100 {
		a.Severity = 100
	}

	if a.Severity > p.CriticalThreshold {
		a.CriticalTime += dt
	}

	if a.Severity <= 0 {
		p.recover(a)
	}
}

func (p *Progression) advanceRecovered(a *Agent, dt float64) {
	a.RecoveryTime += dt
	if a.ReinfectProb < p.ReinfectMax {
		a.ReinfectProb += dt * p.rand.Normal(p.ReinfectMax, p.ReinfectMax/6)
	}
}

// recover ends the episode: counters reset, restrictions lifted,
// mobility restored per the policy in force, and a fresh severity curve
// sampled for a possible reinfection.
func (p *Progression) recover(a *Agent) {
	a.Status = StatusRecovered
	a.Severity = 0
	a.InfectionTime = 0
	a.RecoveryTime = 0
	a.Quarantined = false
	a.Hospitalized = false
	if p.Mobility != nil {
		p.Mobility(a)
	}
	a.SeverityArc = NewSeverityCurve(p.rand, a.Age)
}

// logisticSlope is the per-unit-time growth both disease curves follow
// while rising: peak·k·e^{-k(t-t0)} / (k·(1+e^{-k(t-t0)}))².
func logisticSlope(t, t0, k, peak float64) float64 {
	e := math.Exp(-k * (t - t0))
	d := k * (1 + e)
	return peak * k * e / (d * d)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
