// Package session wires configuration, seeding, telemetry and logging around
// a simulation for the front-ends.
package session

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/golangdaddy/highway/config"
	"github.com/golangdaddy/highway/scoring"
	"github.com/golangdaddy/highway/sim"
	"github.com/golangdaddy/highway/telemetry"
)

// Options select how a session is built.
type Options struct {
	ConfigPath    string // Empty uses the embedded defaults
	Seed          int64  // 0 uses the config seed, then the clock
	TelemetryPath string // Overrides telemetry.path from the config
	Replay        bool   // Every restart brings back the first run's traffic
	Logger        *slog.Logger
}

// RegisterFlags binds the shared command line flags to opts.
func RegisterFlags(fs *flag.FlagSet, opts *Options) {
	fs.StringVar(&opts.ConfigPath, "config", "", "Path to a YAML config overlay (empty = defaults)")
	fs.Int64Var(&opts.Seed, "seed", 0, "Traffic RNG seed (0 = config or time-based)")
	fs.StringVar(&opts.TelemetryPath, "telemetry", "", "Write per-second evaluations to this CSV file")
	fs.BoolVar(&opts.Replay, "replay", false, "Restart with the same seed so every run sees the same traffic")
}

// Session is a simulation with its telemetry attached.
type Session struct {
	sim      *sim.Simulation
	cfg      *config.Config
	log      *slog.Logger
	recorder *telemetry.Recorder
	seed     int64
	replay   bool
	runs     int
}

// Open loads the configuration and builds the simulation.
func Open(opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Simulation.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	path := cfg.Telemetry.Path
	if opts.TelemetryPath != "" {
		path = opts.TelemetryPath
	}
	recorder := telemetry.NewRecorder(nil, cfg.Telemetry.FlushEvery)
	if path != "" {
		recorder, err = telemetry.Create(path, cfg.Telemetry.FlushEvery)
		if err != nil {
			return nil, err
		}
	}

	s := &Session{
		cfg:      cfg,
		log:      logger,
		recorder: recorder,
		seed:     seed,
		replay:   opts.Replay,
		runs:     1,
	}
	s.sim = sim.New(cfg, sim.Options{
		Rand:   sim.NewRand(seed),
		Logger: logger,
		Hooks: sim.Hooks{
			OnEvaluation:  s.onEvaluation,
			OnGameOver:    s.onGameOver,
			BeforeRestart: s.beforeRestart,
			OnRestart:     s.onRestart,
		},
	})

	logger.Info("session started", "seed", seed, "telemetry", path, "traffic", len(s.sim.Traffic()))
	return s, nil
}

func (s *Session) onEvaluation(ev scoring.Evaluation) {
	if err := s.recorder.Record(ev); err != nil {
		s.log.Warn("telemetry disabled", "error", err)
		s.recorder.Disable()
	}
}

func (s *Session) onGameOver(reason string, score int) {
	s.log.Info("run finished", "run", s.runs, "reason", reason, "score", score, "summary", s.Summary())
	if err := s.recorder.Flush(); err != nil {
		s.log.Warn("telemetry disabled", "error", err)
		s.recorder.Disable()
	}
}

func (s *Session) beforeRestart() {
	if s.replay {
		s.sim.Reseed(s.seed)
	}
}

func (s *Session) onRestart() {
	s.runs++
	s.recorder.Reset()
	s.log.Info("run started", "run", s.runs)
}

// Sim returns the simulation.
func (s *Session) Sim() *sim.Simulation {
	return s.sim
}

// Config returns the loaded configuration.
func (s *Session) Config() *config.Config {
	return s.cfg
}

// Seed returns the seed the traffic was generated from.
func (s *Session) Seed() int64 {
	return s.seed
}

// Summary describes the current run.
func (s *Session) Summary() telemetry.Summary {
	return telemetry.Summarize(s.recorder.Rows(), s.cfg.Scoring.Interval)
}

// RunHeadless drives the simulation without input in fixed steps until the
// game ends or limit seconds have been simulated.
func (s *Session) RunHeadless(limit, step float64) telemetry.Summary {
	for s.sim.Elapsed() < limit {
		if !s.sim.Tick(step) {
			break
		}
	}
	return s.Summary()
}

// Close flushes and closes the telemetry file.
func (s *Session) Close() error {
	if err := s.recorder.Close(); err != nil {
		return fmt.Errorf("closing telemetry: %w", err)
	}
	return nil
}
