// cmd/stairs/main.go
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gann-cdf/musical-stairs/internal/config"
	"github.com/gann-cdf/musical-stairs/internal/note"
	"github.com/gann-cdf/musical-stairs/internal/poll"
)

// initLogger configures the shared slog logger and routes the stdlib log
// package through the same handler. Debug mode adds source locations.
func initLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

func main() {
	cfgPath := flag.String("config", "stairs.yaml", "path to the staircase config file")
	debug := flag.Bool("debug", false, "enable debug logging (adds source location)")
	flag.Parse()

	logger := initLogger(*debug)

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Error("config load failed", "err", err)
		os.Exit(1)
	}
	if err := config.Validate(cfg); err != nil {
		logger.Error("config validation failed", "err", err)
		os.Exit(1)
	}
	if err := config.Normalize(cfg); err != nil {
		logger.Error("config normalization failed", "err", err)
		os.Exit(1)
	}

	logger.Info("musical-stairs starting",
		"config", *cfgPath,
		"stairs", cfg.Staircase.Stairs,
		"slots", len(cfg.Staircase.Slots),
		"note_backend", cfg.Staircase.Notes.Backend,
	)

	// --------------------
	// Bring-up + pipeline
	// --------------------

	p, closer, err := poll.Build(cfg, logger)
	if err != nil {
		logger.Error("build failed", "err", err)
		os.Exit(1)
	}
	defer closer()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Sweep results are consumed off the poll goroutine so logging can
	// never stall a sweep.
	out := make(chan poll.SweepResult, 16)
	go func() {
		for res := range out {
			for _, f := range res.Fired {
				logger.Info("step",
					"slot", f.Slot.String(),
					"pitch", note.Name(f.Key),
					"counter", res.Counter,
				)
			}
			if res.Timeouts > 0 {
				logger.Debug("sweep timeouts", "count", res.Timeouts, "counter", res.Counter)
			}
		}
	}()

	p.Run(ctx, out)
	close(out)

	logger.Info("shutting down", "sweeps", p.Snapshot().Sweeps, "notes_fired", p.Snapshot().NotesFired)
}
