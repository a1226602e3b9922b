// Package engine wires the simulation together: configuration, the
// pairwise interaction rules, the quarantine policy, and the tick loop.
package engine

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// ScheduleEntry is one caller-supplied quarantine transition: at the
// given simulated timestamp the policy moves to the given level.
type ScheduleEntry struct {
	At    time.Time `toml:"at" json:"at"`
	Level int       `toml:"level" json:"level"`
}

// Config enumerates every parameter of one simulation replica. All
// randomness derives from Seed, so identical configs replay identically.
type Config struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`

	Population int     `toml:"population"`
	Dt         float64 `toml:"dt"`    // step size as a fraction of a day
	Speed      float64 `toml:"speed"` // base agent speed, domain units per time unit

	AgeMin int `toml:"age_min"`
	AgeMax int `toml:"age_max"`

	MaskFraction             float64 `toml:"mask_fraction"`
	InfectedFraction         float64 `toml:"infected_fraction"`
	IgnoreQuarantineFraction float64 `toml:"ignore_quarantine_fraction"`

	InteractionRadius float64 `toml:"interaction_radius"`
	DetectThreshold   float64 `toml:"detect_threshold"`
	CriticalThreshold float64 `toml:"critical_threshold"`
	ReinfectMax       float64 `toml:"reinfect_max"`
	KBetaMin          float64 `toml:"k_beta_min"`
	KBetaMax          float64 `toml:"k_beta_max"`
	BetaPeakMean      float64 `toml:"beta_peak_mean"` // percent
	MaskEffect        float64 `toml:"mask_effect"`    // multiplier per mask worn

	InitialLevel int             `toml:"initial_level"`
	Start        time.Time       `toml:"start"`
	Schedule     []ScheduleEntry `toml:"schedule"`

	// Clustered places agents against a noise density field instead of
	// uniformly. ClusterScale is the feature size in domain units.
	Clustered    bool    `toml:"clustered"`
	ClusterScale float64 `toml:"cluster_scale"`

	Seed int64 `toml:"seed"`
}

// DefaultConfig returns a runnable baseline scenario.
func DefaultConfig() Config {
	return Config{
		Width:                    250,
		Height:                   250,
		Population:               5000,
		Dt:                       0.25,
		Speed:                    2,
		AgeMin:                   10,
		AgeMax:                   90,
		MaskFraction:             0.3,
		InfectedFraction:         0.01,
		IgnoreQuarantineFraction: 0.1,
		InteractionRadius:        1.8,
		DetectThreshold:          25,
		CriticalThreshold:        55,
		ReinfectMax:              0.15,
		KBetaMin:                 0.3,
		KBetaMax:                 1.5,
		BetaPeakMean:             45,
		MaskEffect:               0.5,
		InitialLevel:             4,
		Start:                    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		ClusterScale:             40,
		Schedule: []ScheduleEntry{
			{At: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), Level: 0},
			{At: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), Level: 2},
			{At: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), Level: 4},
		},
		Seed: 42,
	}
}

// LoadConfig reads a TOML file over the default baseline.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate fails fast on configurations that cannot run. Called once
// before the first tick; nothing after that is expected to error.
func (c *Config) Validate() error {
	if c.Population <= 0 {
		return fmt.Errorf("population must be positive, got %d", c.Population)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", c.Dt)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("domain extents must be positive, got %gx%g", c.Width, c.Height)
	}
	if c.InteractionRadius <= 0 {
		return fmt.Errorf("interaction radius must be positive, got %g", c.InteractionRadius)
	}
	if c.Speed <= 0 {
		return fmt.Errorf("speed must be positive, got %g", c.Speed)
	}
	if c.AgeMin > c.AgeMax {
		return fmt.Errorf("age range inverted: %d > %d", c.AgeMin, c.AgeMax)
	}
	if c.KBetaMin > c.KBetaMax {
		return fmt.Errorf("k_beta bounds inverted: %g > %g", c.KBetaMin, c.KBetaMax)
	}
	if c.InitialLevel < 0 || c.InitialLevel > MaxLevel {
		return fmt.Errorf("initial level %d outside 0..%d", c.InitialLevel, MaxLevel)
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"mask_fraction", c.MaskFraction},
		{"infected_fraction", c.InfectedFraction},
		{"ignore_quarantine_fraction", c.IgnoreQuarantineFraction},
		{"mask_effect", c.MaskEffect},
		{"reinfect_max", c.ReinfectMax},
	} {
		if f.v < 0 || f.v > 1 {
			return fmt.Errorf("%s must be in [0,1], got %g", f.name, f.v)
		}
	}
	if len(c.Schedule) == 0 {
		return fmt.Errorf("quarantine schedule is empty")
	}
	for i, e := range c.Schedule {
		if e.Level < 0 || e.Level > MaxLevel {
			return fmt.Errorf("schedule[%d]: level %d outside 0..%d", i, e.Level, MaxLevel)
		}
		if i > 0 && e.At.Before(c.Schedule[i-1].At) {
			return fmt.Errorf("schedule[%d]: entries not in time order", i)
		}
	}
	return nil
}
