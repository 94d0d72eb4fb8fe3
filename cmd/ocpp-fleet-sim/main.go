// Command ocpp-fleet-sim runs a fleet of simulated OCPP charge points
// against a CSMS for load and conformance testing.
//
// CLI surface and graceful-shutdown structure grounded on the teacher's
// cmd/server/main.go (flag parsing, slog init keyed off debug_mode,
// signal.Notify + context.WithTimeout shutdown cascade), generalized from
// one HTTP server's shutdown to one fleet supervisor's.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ruslanhut/ocpp-emu/internal/config"
	"github.com/ruslanhut/ocpp-emu/internal/fleet"
	"github.com/ruslanhut/ocpp-emu/internal/tracelog"
)

const (
	appName    = "ocpp-fleet-sim"
	appVersion = "0.1.0"

	shutdownTimeout = 30 * time.Second
)

func main() {
	mode := flag.String("mode", "", "session mode: dynamic or idle")
	configPath := flag.String("config-path", "", "path to fleet config file (required)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("error loading config: %v", err)
		os.Exit(1)
	}

	sessionMode := config.Mode(*mode)
	if !sessionMode.Valid() {
		log.Printf("error: --mode must be %q or %q, got %q", config.ModeDynamic, config.ModeIdle, *mode)
		os.Exit(1)
	}

	logger := initLogger(cfg)
	logger.Info("starting fleet simulator",
		slog.String("app", appName),
		slog.String("version", appVersion),
		slog.String("mode", string(sessionMode)),
		slog.String("config_path", *configPath),
	)

	tracer := tracelog.New(logger, tracelog.Config{})
	tracer.Start()

	ctx, cancel := context.WithCancel(context.Background())
	supervisor := fleet.New(cfg, sessionMode, logger, tracer)

	done := make(chan error, 1)
	go func() {
		done <- supervisor.Run(ctx)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("shutdown signal received, stopping fleet")
		cancel()

		select {
		case <-done:
		case <-time.After(shutdownTimeout):
			logger.Warn("fleet did not stop within shutdown timeout, exiting anyway")
		}
	case err := <-done:
		cancel()
		if err != nil {
			logger.Error("fleet stopped with error", "error", err)
			tracer.Stop()
			os.Exit(1)
		}
	}

	tracer.Stop()
	logger.Info("fleet simulator stopped")
}

// initLogger builds the process-wide slog.Logger, level and format keyed
// off general.debug_mode the way the teacher's initLogger keys off its
// own Logging config section.
func initLogger(cfg *config.FleetConfig) *slog.Logger {
	level := slog.LevelInfo
	if cfg.General.DebugMode {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
