package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/quarterback/viperball-sub000/internal/adapters/snapshot"
	"github.com/quarterback/viperball-sub000/internal/adapters/staffing"
	app "github.com/quarterback/viperball-sub000/internal/app"
	"github.com/quarterback/viperball-sub000/internal/config"
	"github.com/quarterback/viperball-sub000/pkg/logger"
	"github.com/quarterback/viperball-sub000/pkg/metrics"
)

// ErrNoSnapshot is returned when no league snapshot is configured.
var ErrNoSnapshot = errors.New("snapshot_path is required")

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// stdout carries the report; logs go to stderr.
	logOpts := []logger.Option{logger.WithWriter(os.Stderr)}
	if cfg.LogFile != "" {
		logOpts = append(logOpts, logger.WithFile(cfg.LogFile))
	}
	if err := logger.Init(logOpts...); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	loggerInstance := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := run(ctx, cfg, os.Stdout); err != nil {
		loggerInstance.Error(ctx, "market run failed", logger.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

// run resolves one offseason from the configured snapshot and writes the
// report to cfg.OutputPath, or stdout when unset.
func run(ctx context.Context, cfg *config.Config, stdout io.Writer) error {
	if cfg.SnapshotPath == "" {
		return ErrNoSnapshot
	}
	league, err := snapshot.Load(cfg.SnapshotPath)
	if err != nil {
		return err
	}

	svc := app.New(
		app.WithLogger(logger.Named("market")),
		app.WithCollaborators(staffing.Defaults(staffing.WithAlmaMaters(league.Staffs.Teams()))),
		app.WithPreferenceDepth(cfg.PreferenceDepth),
		app.WithIterationFactor(cfg.IterationFactor),
		app.WithMinPoolSize(cfg.MinPoolSize),
		app.WithPoolMultiplier(cfg.PoolMultiplier),
		app.WithFreeAgentPrestige(cfg.FreeAgentPrestigeMin, cfg.FreeAgentPrestigeMax),
	)

	market, err := svc.Populate(ctx, app.PopulateRequest{
		Registry:  league.Registry,
		Staffs:    league.Staffs,
		Records:   league.Records,
		Prestige:  league.Context.Prestige,
		Fired:     league.Fired,
		HumanTeam: league.HumanTeam,
		Seed:      cfg.Seed,
	})
	if err != nil {
		return err
	}
	changes, err := svc.Resolve(ctx, market, league.Context)
	if err != nil {
		return err
	}

	out := stdout
	if cfg.OutputPath != "" {
		f, err := os.Create(cfg.OutputPath)
		if err != nil {
			return fmt.Errorf("create report: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}
	if err := writeReport(out, newReport(market, changes)); err != nil {
		return err
	}

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			return err
		}
	}
	return nil
}
