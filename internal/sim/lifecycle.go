package sim

// CheckStatus runs the post-progression lifecycle checks on an infected
// agent: detection, hospitalization, death, forced recovery. Returns
// false when the agent died and must leave the live set. Agents in
// other compartments pass through untouched.
func (p *Progression) CheckStatus(a *Agent) bool {
	if a.Status != StatusInfected {
		return true
	}

	// Detection: certain above the threshold, otherwise weighted by the
	// raw severity value. Any severity >= 1 therefore always detects;
	// the window where the draw matters is the first symptomless unit.
	if a.Severity >= p.DetectThreshold || p.rand.Float() < a.Severity {
		a.Quarantined = true
		a.Hospitalized = false
		a.Immobilize()
	}

	// Hospitalization admits a severity-weighted share of critical cases.
	if a.Severity >= p.CriticalThreshold && p.rand.Float() <= a.Severity/4 {
		a.Quarantined = true
		a.Hospitalized = true
		a.Immobilize()
	}

	if a.CriticalTime > DeathCriticalTime {
		a.Alive = false
		return false
	}

	if a.InfectionTime > ForcedRecoveryTime {
		p.recover(a)
		a.ReinfectProb = 0
	}
	return true
}
