package sim

import (
	"github.com/talgya/contagion/internal/entropy"
	"github.com/talgya/contagion/internal/space"
)

// SpawnConfig controls initial population generation.
type SpawnConfig struct {
	Count            int
	AgeMin, AgeMax   int
	Speed            float64
	MaskFraction     float64
	InfectedFraction float64
	IgnoreFraction   float64 // share exempt from quarantine policy
}

// Spawner creates the agents of one replica.
type Spawner struct {
	rand   *entropy.Stream
	prog   *Progression
	nextID AgentID
}

// NewSpawner creates a spawner drawing from the replica's stream.
func NewSpawner(rand *entropy.Stream, prog *Progression) *Spawner {
	return &Spawner{rand: rand, prog: prog, nextID: 1}
}

// SpawnPopulation creates the full initial population, placing each
// agent via the placer. Everyone spawns mobile at full speed; the
// initial quarantine level is applied afterwards by the engine.
func (s *Spawner) SpawnPopulation(cfg SpawnConfig, place space.Placer) []*Agent {
	agents := make([]*Agent, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		agents = append(agents, s.spawnOne(cfg, place))
	}
	return agents
}

func (s *Spawner) spawnOne(cfg SpawnConfig, place space.Placer) *Agent {
	id := s.nextID
	s.nextID++

	age := cfg.AgeMin
	if cfg.AgeMax > cfg.AgeMin {
		age += s.rand.Intn(cfg.AgeMax - cfg.AgeMin + 1)
	}

	a := &Agent{
		ID:               id,
		Age:              age,
		Mask:             s.rand.Chance(cfg.MaskFraction),
		IgnoreQuarantine: s.rand.Chance(cfg.IgnoreFraction),
		Position:         place.Place(),
		Status:           StatusSusceptible,
		Alive:            true,
	}
	a.SeverityArc = NewSeverityCurve(s.rand, a.Age)

	hx, hy := s.rand.Heading()
	a.Release(cfg.Speed, hx, hy)

	if s.rand.Chance(cfg.InfectedFraction) {
		s.prog.Infect(a)
	}
	return a
}
