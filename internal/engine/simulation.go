package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/talgya/contagion/internal/entropy"
	"github.com/talgya/contagion/internal/sim"
	"github.com/talgya/contagion/internal/space"
)

// Simulation is one self-contained replica: agents, spatial index,
// clock, policy state, and the random stream all live here. Nothing is
// shared between instances, so independent replicas can run in
// parallel processes or goroutines. A single instance is strictly
// sequential: Step must not be called concurrently.
type Simulation struct {
	cfg   Config
	torus space.Torus
	grid  *space.Grid
	rand  *entropy.Stream

	prog   *sim.Progression
	trans  *Transmission
	policy *QuarantinePolicy

	agents []*sim.Agent

	tick      int
	clock     time.Time
	level     int
	nextEvent int
}

// New validates the configuration and builds a ready-to-step replica,
// with the population spawned and the initial quarantine level applied.
func New(cfg Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	torus := space.Torus{Width: cfg.Width, Height: cfg.Height}
	rand := entropy.NewStream(cfg.Seed)

	prog := sim.NewProgression(rand)
	prog.DetectThreshold = cfg.DetectThreshold
	prog.CriticalThreshold = cfg.CriticalThreshold
	prog.ReinfectMax = cfg.ReinfectMax
	prog.KBetaMin = cfg.KBetaMin
	prog.KBetaMax = cfg.KBetaMax
	prog.BetaPeakMean = cfg.BetaPeakMean

	s := &Simulation{
		cfg:    cfg,
		torus:  torus,
		grid:   space.NewGrid(torus, cfg.InteractionRadius),
		rand:   rand,
		prog:   prog,
		trans:  NewTransmission(cfg.MaskEffect, prog, rand),
		policy: NewQuarantinePolicy(cfg.Speed, rand),
		clock:  cfg.Start,
		level:  cfg.InitialLevel,
	}

	// Recovered agents regain whatever mobility the level in force allows.
	prog.Mobility = func(a *sim.Agent) {
		s.policy.Restore(s.level, a)
	}

	var place space.Placer = space.UniformPlacer{Torus: torus, Rand: rand}
	if cfg.Clustered {
		place = space.NewNoisePlacer(torus, cfg.ClusterScale, cfg.Seed, rand)
	}

	spawner := sim.NewSpawner(rand, prog)
	s.agents = spawner.SpawnPopulation(sim.SpawnConfig{
		Count:            cfg.Population,
		AgeMin:           cfg.AgeMin,
		AgeMax:           cfg.AgeMax,
		Speed:            cfg.Speed,
		MaskFraction:     cfg.MaskFraction,
		InfectedFraction: cfg.InfectedFraction,
		IgnoreFraction:   cfg.IgnoreQuarantineFraction,
	}, place)

	s.policy.Apply(s.level, s.agents)

	slog.Info("replica initialized",
		"population", len(s.agents),
		"level", s.level,
		"seed", cfg.Seed,
		"start", cfg.Start.Format(time.RFC3339),
	)
	return s, nil
}

// Tick returns the number of completed ticks.
func (s *Simulation) Tick() int { return s.tick }

// Clock returns the current simulated timestamp.
func (s *Simulation) Clock() time.Time { return s.clock }

// Level returns the quarantine level in force.
func (s *Simulation) Level() int { return s.level }

// Step advances the replica by one tick and returns its snapshot.
//
// Order within a tick: pairwise interactions (transmission then
// deflection), scheduled quarantine transitions, then the independent
// per-agent pass (movement, disease progression, lifecycle checks),
// then the clock. Callers may stop between ticks but never interrupt
// one.
func (s *Simulation) Step() Snapshot {
	dt := s.cfg.Dt

	// Pairwise interaction pass over nearest-neighbor pairs in range.
	s.grid.Reset()
	for i, a := range s.agents {
		if a.Alive {
			s.grid.Insert(i, a.Position)
		}
	}
	for _, p := range s.grid.NearestPairs() {
		a, b := s.agents[p.A], s.agents[p.B]
		s.trans.Apply(a, b)
		Deflect(s.torus, a, b)
	}

	// Scheduled quarantine transitions due at the current clock.
	for s.nextEvent < len(s.cfg.Schedule) && !s.clock.Before(s.cfg.Schedule[s.nextEvent].At) {
		s.level = s.cfg.Schedule[s.nextEvent].Level
		s.policy.Apply(s.level, s.agents)
		s.nextEvent++
	}

	// Per-agent pass: each agent touches only its own state here.
	for _, a := range s.agents {
		if !a.Alive {
			continue
		}
		a.Position = s.torus.Wrap(a.Position.Add(a.Velocity.Scale(dt)))
		s.prog.Advance(a, dt)
		s.prog.CheckStatus(a)
	}

	s.clock = s.clock.Add(time.Duration(dt * 24 * float64(time.Hour)))
	s.tick++

	return s.snapshot()
}

// Run executes steps ticks, passing each snapshot to emit (which may be
// nil). stop is polled between ticks; a tick in flight always finishes.
func (s *Simulation) Run(steps int, emit func(Snapshot), stop func() bool) Snapshot {
	var snap Snapshot
	for i := 0; i < steps; i++ {
		if stop != nil && stop() {
			slog.Info("run stopped early", "tick", s.tick)
			break
		}
		snap = s.Step()
		if emit != nil {
			emit(snap)
		}
	}
	return snap
}

func (s *Simulation) snapshot() Snapshot {
	records := make([]AgentRecord, 0, len(s.agents))
	for _, a := range s.agents {
		if !a.Alive {
			continue
		}
		records = append(records, AgentRecord{
			ID:           a.ID,
			Status:       a.Status,
			Hospitalized: a.Hospitalized,
			Quarantined:  a.Quarantined,
		})
	}
	return Snapshot{
		TickRecord: TickRecord{
			Tick:       s.tick,
			Timestamp:  s.clock,
			Population: len(records),
		},
		Level:  s.level,
		Agents: records,
	}
}
