package engine

import (
	"time"

	"github.com/talgya/contagion/internal/sim"
)

// TickRecord is the aggregate row emitted once per tick.
type TickRecord struct {
	Tick       int       `json:"tick"`
	Timestamp  time.Time `json:"timestamp"`
	Population int       `json:"population"` // live agents after this tick
}

// AgentRecord is the per-agent row emitted for every live agent each
// tick. Dead agents are simply absent from this and all later ticks.
type AgentRecord struct {
	ID           sim.AgentID `json:"id"`
	Status       sim.Status  `json:"status"`
	Hospitalized bool        `json:"hospitalized"`
	Quarantined  bool        `json:"quarantined"`
}

// Snapshot is the complete output of one tick.
type Snapshot struct {
	TickRecord
	Level  int           `json:"level"`
	Agents []AgentRecord `json:"agents"`
}

// StatusCounts summarizes a snapshot for logging and the API.
type StatusCounts struct {
	Susceptible  int `json:"susceptible"`
	Infected     int `json:"infected"`
	Recovered    int `json:"recovered"`
	Hospitalized int `json:"hospitalized"`
	Quarantined  int `json:"quarantined"`
}

// Counts tallies the per-agent records.
func (s Snapshot) Counts() StatusCounts {
	var c StatusCounts
	for _, a := range s.Agents {
		switch a.Status {
		case sim.StatusSusceptible:
			c.Susceptible++
		case sim.StatusInfected:
			c.Infected++
		case sim.StatusRecovered:
			c.Recovered++
		}
		if a.Hospitalized {
			c.Hospitalized++
		}
		if a.Quarantined {
			c.Quarantined++
		}
	}
	return c
}
