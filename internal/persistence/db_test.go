package persistence

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/talgya/contagion/internal/engine"
	"github.com/talgya/contagion/internal/sim"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreateRunAssignsDistinctIDs(t *testing.T) {
	db := openTestDB(t)
	cfg := engine.DefaultConfig()

	a, err := db.CreateRun(cfg)
	if err != nil {
		t.Fatalf("create run: %v", err)
	}
	b, err := db.CreateRun(cfg)
	if err != nil {
		t.Fatalf("create run: %v", err)
	}
	if a == b || a == "" {
		t.Fatalf("run ids not distinct: %q, %q", a, b)
	}
}

func TestSaveSnapshotRoundTrip(t *testing.T) {
	db := openTestDB(t)
	runID, err := db.CreateRun(engine.DefaultConfig())
	if err != nil {
		t.Fatalf("create run: %v", err)
	}

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for tick := 1; tick <= 3; tick++ {
		snap := engine.Snapshot{
			TickRecord: engine.TickRecord{
				Tick:       tick,
				Timestamp:  start.Add(time.Duration(tick) * 6 * time.Hour),
				Population: 4 - tick,
			},
			Level: 2,
			Agents: []engine.AgentRecord{
				{ID: 1, Status: sim.StatusInfected, Quarantined: true},
				{ID: 2, Status: sim.StatusSusceptible},
			},
		}
		if err := db.SaveSnapshot(runID, snap); err != nil {
			t.Fatalf("save tick %d: %v", tick, err)
		}
	}

	rows, err := db.TickSeries(runID)
	if err != nil {
		t.Fatalf("tick series: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	for i, r := range rows {
		if r.Tick != i+1 {
			t.Fatalf("row %d out of order: tick %d", i, r.Tick)
		}
		if r.Population != 4-(i+1) {
			t.Fatalf("row %d population = %d, want %d", i, r.Population, 4-(i+1))
		}
		if r.Level != 2 {
			t.Fatalf("row %d level = %d, want 2", i, r.Level)
		}
	}
}
