// Command contagion runs one epidemic simulation replica, recording
// its tick stream to SQLite and serving a read-only status API.
package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/dustin/go-humanize"

	"github.com/talgya/contagion/internal/api"
	"github.com/talgya/contagion/internal/engine"
	"github.com/talgya/contagion/internal/persistence"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML config file (defaults used when empty)")
		steps      = flag.Int("steps", 2000, "number of ticks to run")
		dbPath     = flag.String("db", "data/contagion.db", "SQLite output path")
		apiPort    = flag.Int("port", 8080, "HTTP status API port (0 disables)")
		seed       = flag.Int64("seed", 0, "override the config seed when nonzero")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := engine.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = engine.LoadConfig(*configPath)
		if err != nil {
			slog.Error("failed to load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	simulation, err := engine.New(cfg)
	if err != nil {
		slog.Error("failed to initialize replica", "error", err)
		os.Exit(1)
	}

	os.MkdirAll("data", 0755)
	db, err := persistence.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	runID, err := db.CreateRun(cfg)
	if err != nil {
		slog.Error("failed to register run", "error", err)
		os.Exit(1)
	}
	slog.Info("run registered", "run_id", runID, "db", *dbPath)

	var server *api.Server
	if *apiPort > 0 {
		server = &api.Server{Port: *apiPort}
		server.Start()
	}

	// SIGINT/SIGTERM stop the run between ticks; a tick always finishes.
	var stopped atomic.Bool
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, stopping after current tick", "signal", sig)
		stopped.Store(true)
	}()

	rows := 0
	last := simulation.Run(*steps, func(snap engine.Snapshot) {
		if err := db.SaveSnapshot(runID, snap); err != nil {
			slog.Error("failed to save snapshot", "tick", snap.Tick, "error", err)
			os.Exit(1)
		}
		rows += len(snap.Agents)
		if server != nil {
			server.Publish(snap)
		}
		if snap.Tick%200 == 0 {
			c := snap.Counts()
			slog.Info("progress",
				"tick", snap.Tick,
				"time", snap.Timestamp.Format("2006-01-02 15:04"),
				"population", snap.Population,
				"infected", c.Infected,
				"recovered", c.Recovered,
				"hospitalized", c.Hospitalized,
				"level", snap.Level,
			)
		}
	}, stopped.Load)

	c := last.Counts()
	slog.Info("run complete",
		"run_id", runID,
		"ticks", humanize.Comma(int64(last.Tick)),
		"agent_rows", humanize.Comma(int64(rows)),
		"survivors", last.Population,
		"infected", c.Infected,
		"recovered", c.Recovered,
		"deaths", cfg.Population-last.Population,
	)
}
