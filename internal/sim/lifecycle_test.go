package sim

import (
	"testing"

	"github.com/talgya/contagion/internal/entropy"
)

func infectedAgent(severity float64) *Agent {
	return &Agent{
		Age:      40,
		Status:   StatusInfected,
		Alive:    true,
		Severity: severity,
		Mass:     1,
	}
}

func TestCheckStatusIgnoresHealthyAgents(t *testing.T) {
	p := testProgression(entropy.FromSource(&scriptSource{}))
	a := &Agent{Age: 40, Status: StatusSusceptible, Alive: true, Mass: 1}
	if !p.CheckStatus(a) {
		t.Fatal("susceptible agent removed")
	}
	if a.Quarantined || a.Hospitalized {
		t.Fatal("susceptible agent restricted")
	}
}

func TestDetectionAboveThresholdIsCertain(t *testing.T) {
	p := testProgression(entropy.FromSource(&scriptSource{floats: []float64{0.99, 0.99}}))
	a := infectedAgent(30) // above detect (25), below critical (55)

	if !p.CheckStatus(a) {
		t.Fatal("agent unexpectedly removed")
	}
	if !a.Quarantined {
		t.Fatal("agent not quarantined on detection")
	}
	if a.Hospitalized {
		t.Fatal("detection alone must not hospitalize")
	}
	if !a.Immobile() || a.Velocity.Norm() != 0 {
		t.Fatal("detected agent still mobile")
	}
}

func TestProbabilisticDetectionBelowThreshold(t *testing.T) {
	// Severity 0.5 with a 0.4 draw detects; with a 0.9 draw it does not.
	p := testProgression(entropy.FromSource(&scriptSource{floats: []float64{0.4}}))
	a := infectedAgent(0.5)
	p.CheckStatus(a)
	if !a.Quarantined {
		t.Fatal("draw below severity should detect")
	}

	p = testProgression(entropy.FromSource(&scriptSource{floats: []float64{0.9}}))
	b := infectedAgent(0.5)
	p.CheckStatus(b)
	if b.Quarantined {
		t.Fatal("draw above severity should not detect")
	}
}

func TestHospitalizationImpliesQuarantine(t *testing.T) {
	// Severity 80: detection certain, and the hospitalization draw
	// (<= 80/4 = 20) is certain for any uniform value.
	p := testProgression(entropy.FromSource(&scriptSource{floats: []float64{0.99, 0.99}}))
	a := infectedAgent(80)

	p.CheckStatus(a)
	if !a.Hospitalized {
		t.Fatal("critical agent not hospitalized")
	}
	if !a.Quarantined {
		t.Fatal("hospitalized agent must be quarantined")
	}
	if !a.Immobile() {
		t.Fatal("hospitalized agent still mobile")
	}
}

func TestDeathRemovesAgent(t *testing.T) {
	p := testProgression(entropy.FromSource(&scriptSource{}))
	a := infectedAgent(10)
	a.CriticalTime = DeathCriticalTime + 0.5

	if p.CheckStatus(a) {
		t.Fatal("agent past the critical-time limit survived")
	}
	if a.Alive {
		t.Fatal("dead agent still marked alive")
	}
}

func TestForcedRecoveryAfterEpisodeLimit(t *testing.T) {
	p := testProgression(entropy.NewStream(11))
	a := infectedAgent(5)
	a.InfectionTime = ForcedRecoveryTime + 1

	if !p.CheckStatus(a) {
		t.Fatal("agent unexpectedly removed")
	}
	if a.Status != StatusRecovered {
		t.Fatalf("status = %v, want recovered", a.Status)
	}
	if a.ReinfectProb != 0 {
		t.Fatalf("reinfection probability = %g, want 0", a.ReinfectProb)
	}
	if a.Quarantined || a.Hospitalized {
		t.Fatal("restrictions not lifted on forced recovery")
	}
}
