// Package persistence records the per-tick output streams of a replica
// in SQLite, keyed by run id, for the external calibration and
// reporting layers. The engine itself never touches this package; the
// command feeds it snapshots.
package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/contagion/internal/engine"
)

// DB wraps a SQLite connection for run recording.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		population INTEGER NOT NULL,
		config_json TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS ticks (
		run_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		timestamp TEXT NOT NULL,
		population INTEGER NOT NULL,
		level INTEGER NOT NULL,
		PRIMARY KEY (run_id, tick)
	);

	CREATE TABLE IF NOT EXISTS agent_ticks (
		run_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		agent_id INTEGER NOT NULL,
		status INTEGER NOT NULL,
		hospitalized INTEGER NOT NULL,
		quarantined INTEGER NOT NULL,
		PRIMARY KEY (run_id, tick, agent_id)
	);

	CREATE INDEX IF NOT EXISTS idx_agent_ticks_agent ON agent_ticks(run_id, agent_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// CreateRun registers a new run and returns its id.
func (db *DB) CreateRun(cfg engine.Config) (string, error) {
	id := uuid.NewString()
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	_, err = db.conn.Exec(
		"INSERT INTO runs (id, seed, population, config_json) VALUES (?, ?, ?, ?)",
		id, cfg.Seed, cfg.Population, string(cfgJSON),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// SaveSnapshot appends one tick's aggregate row and per-agent rows.
func (db *DB) SaveSnapshot(runID string, snap engine.Snapshot) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO ticks (run_id, tick, timestamp, population, level) VALUES (?, ?, ?, ?, ?)",
		runID, snap.Tick, snap.Timestamp.UTC().Format("2006-01-02T15:04:05Z"), snap.Population, snap.Level,
	)
	if err != nil {
		return fmt.Errorf("insert tick %d: %w", snap.Tick, err)
	}

	stmt, err := tx.Preparex(`INSERT INTO agent_ticks
		(run_id, tick, agent_id, status, hospitalized, quarantined)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range snap.Agents {
		_, err := stmt.Exec(runID, snap.Tick, a.ID, a.Status, boolInt(a.Hospitalized), boolInt(a.Quarantined))
		if err != nil {
			return fmt.Errorf("insert agent %d tick %d: %w", a.ID, snap.Tick, err)
		}
	}
	return tx.Commit()
}

// TickRow is one aggregate row as stored.
type TickRow struct {
	Tick       int    `db:"tick"`
	Timestamp  string `db:"timestamp"`
	Population int    `db:"population"`
	Level      int    `db:"level"`
}

// TickSeries returns the full aggregate stream of a run in tick order.
func (db *DB) TickSeries(runID string) ([]TickRow, error) {
	var rows []TickRow
	err := db.conn.Select(&rows,
		"SELECT tick, timestamp, population, level FROM ticks WHERE run_id = ? ORDER BY tick",
		runID,
	)
	return rows, err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
