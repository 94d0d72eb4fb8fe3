// Package fleet spawns and supervises one goroutine per configured charge
// point, each running its own session.Engine or session.IdleEngine.
//
// Grounded on original_source/app/src/simulator.rs's Simulator: the same
// explicit-plus-generated charge point list, the same one-task-per-CP
// fan-out, and the same "log the failure, keep the rest of the fleet
// running" supervision policy (Rust's join_all after per-task error
// logging). The Go fan-out itself uses github.com/sourcegraph/conc's
// WaitGroup instead of hand-rolled sync.WaitGroup bookkeeping, matching
// the corpus's habit of reaching for conc over raw goroutine plumbing.
package fleet

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/ruslanhut/ocpp-emu/internal/config"
	"github.com/ruslanhut/ocpp-emu/internal/correlation"
	"github.com/ruslanhut/ocpp-emu/internal/ocpp/v16"
	"github.com/ruslanhut/ocpp-emu/internal/ocpp/v201"
	"github.com/ruslanhut/ocpp-emu/internal/ocpp/v21"
	"github.com/ruslanhut/ocpp-emu/internal/session"
	"github.com/ruslanhut/ocpp-emu/internal/tracelog"
	"github.com/ruslanhut/ocpp-emu/internal/transport"
)

// defaultConnectorID and defaultEvseID are what every simulated charge
// point in this fleet exposes: a single connector (§ simulator scope is
// load-generation, not multi-connector topology modeling).
const (
	defaultConnectorID = 1
	defaultEvseID      = 1

	// evictionSweepInterval and evictionMaxAge drive the opt-in correlation
	// table sweep (debug_mode only): a CSMS that silently drops a Call
	// would otherwise pin its msg_id in the table for the life of the
	// session.
	evictionSweepInterval = 30 * time.Second
	evictionMaxAge        = 30 * time.Second
)

// Supervisor owns one fleet run: every charge point named or generated by
// a config.FleetConfig, all driven in the same session.Mode.
type Supervisor struct {
	cfg    *config.FleetConfig
	mode   config.Mode
	logger *slog.Logger
	tracer *tracelog.Logger
}

// New returns a Supervisor for cfg, running every charge point in mode.
// logger is the process-wide base logger (per-CP loggers are derived from
// it via With("charge_point_id", id)); tracer is optional and may be nil.
func New(cfg *config.FleetConfig, mode config.Mode, logger *slog.Logger, tracer *tracelog.Logger) *Supervisor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Supervisor{cfg: cfg, mode: mode, logger: logger, tracer: tracer}
}

// Run spawns every charge point and blocks until all of them have
// returned, either because ctx was cancelled or because each hit a
// terminal transport error. One charge point's failure never aborts the
// others (S6); each failure is only logged.
func (s *Supervisor) Run(ctx context.Context) error {
	points := s.cfg.ChargePoints
	if s.cfg.ImplicitChargePoints != nil {
		points = append(points, generateImplicit(s.cfg.ImplicitChargePoints)...)
	}
	if len(points) == 0 {
		return fmt.Errorf("fleet has no charge points to run")
	}

	s.logger.Info("fleet starting", "charge_points", len(points), "mode", s.mode, "ocpp_version", s.cfg.General.OcppVersion)

	var wg conc.WaitGroup
	for _, cp := range points {
		cp := cp
		wg.Go(func() {
			if err := s.runChargePoint(ctx, cp); err != nil {
				s.logger.Error("charge point session ended with error", "charge_point_id", cp.ID, "error", err)
			}
		})
	}
	wg.Wait()

	s.logger.Info("fleet stopped")
	return nil
}

func (s *Supervisor) runChargePoint(ctx context.Context, cp config.ChargePointConfig) error {
	logger := s.logger.With("charge_point_id", cp.ID)

	table := correlation.New()
	client := transport.New(transport.Config{
		URL:         fmt.Sprintf("%s/%s", s.cfg.General.ServerURL, cp.ID),
		StationID:   cp.ID,
		Subprotocol: string(s.cfg.General.OcppVersion),
		AuthHeader:  cp.AuthHeader,
	}, logger)

	adapter, err := newAdapter(s.cfg.General.OcppVersion, cp.ID, table, s.cfg.General.DebugMode, logger)
	if err != nil {
		return err
	}

	if s.cfg.General.DebugMode {
		go table.RunEvictionSweep(ctx, evictionSweepInterval, evictionMaxAge, func(n int) {
			logger.Debug("evicted stale correlation entries", "count", n)
		})
	}

	engineConfig := session.EngineConfig{
		StationID:         cp.ID,
		BootDelay:         time.Duration(cp.BootDelayMs) * time.Millisecond,
		HeartbeatInterval: time.Duration(cp.HeartbeatInterval) * time.Second,
		StartTxAfter:      time.Duration(cp.StartTxAfter) * time.Second,
		StopTxAfter:       time.Duration(cp.StopTxAfter) * time.Second,
		IDTags:            cp.IDTags,
	}

	switch s.mode {
	case config.ModeIdle:
		engine := session.NewIdleEngine(engineConfig, session.SimulationConfig{}, adapter, client, table, s.tracer, logger)
		return engine.Run(ctx)
	default:
		engine := session.NewEngine(engineConfig, adapter, client, table, s.tracer, logger)
		return engine.Run(ctx)
	}
}

// newAdapter builds the per-version session.Adapter for one charge point.
func newAdapter(version config.OcppVersion, stationID string, table *correlation.Table, debugMode bool, logger *slog.Logger) (session.Adapter, error) {
	switch version {
	case config.OcppVersion16:
		return v16.NewAdapter(stationID, defaultConnectorID, table, v16.MeterReadingDeterministic, debugMode, logger), nil
	case config.OcppVersion201:
		return v201.NewAdapter(stationID, defaultEvseID, defaultConnectorID, table), nil
	case config.OcppVersion21:
		return v21.NewAdapter(stationID, defaultEvseID, defaultConnectorID, table), nil
	default:
		return nil, fmt.Errorf("unsupported ocpp version %q", version)
	}
}

// generateImplicit expands an ImplicitChargePointConfig into cfg.Count
// ChargePointConfig values, mirroring simulator.rs's generate_implicit_cps:
// zero-padded-6-digit ids off the shared prefix and a uniform-random
// sample from each interval range per charge point.
func generateImplicit(cfg *config.ImplicitChargePointConfig) []config.ChargePointConfig {
	out := make([]config.ChargePointConfig, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		out[i] = config.ChargePointConfig{
			ID:                fmt.Sprintf("%s%06d", cfg.Prefix, i),
			BootDelayMs:       sampleRange(cfg.BootDelayRange),
			HeartbeatInterval: sampleRange(cfg.HeartbeatIntervalRange),
			StatusInterval:    sampleRange(cfg.StatusIntervalRange),
			StartTxAfter:      sampleRange(cfg.StartTxAfterRange),
			StopTxAfter:       sampleRange(cfg.StopTxAfterRange),
			IDTags:            cfg.IDTags,
		}
	}
	return out
}

// sampleRange uniformly samples an inclusive [lo, hi] range using
// crypto/rand rather than math/rand/v2: fleet sizing happens once at
// startup for potentially thousands of charge points, where a
// cryptographically-seeded source costs nothing and avoids sharing
// math/rand/v2's global state with the per-transaction id-tag picks the
// session engine makes continuously during a run.
func sampleRange(r config.Range) uint64 {
	if r[1] <= r[0] {
		return r[0]
	}
	span := r[1] - r[0] + 1
	n, err := rand.Int(rand.Reader, new(big.Int).SetUint64(span))
	if err != nil {
		return r[0]
	}
	return r[0] + n.Uint64()
}
