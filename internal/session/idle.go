package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ruslanhut/ocpp-emu/internal/correlation"
	"github.com/ruslanhut/ocpp-emu/internal/ocpp"
	"github.com/ruslanhut/ocpp-emu/internal/tracelog"
	"github.com/ruslanhut/ocpp-emu/internal/transport"
)

// meterSampleCount is how many MeterValues samples Idle mode sends over
// the course of its one simulated charge, per the fixed 10x/3s scenario.
const meterSampleCount = 10

// SimulationConfig controls how Idle mode paces its one CSMS-triggered
// transaction, field shape grounded on the teacher's station/config.go
// SimulationConfig. HardwareDelay defaults to 3s, resolving the open
// question over whether the hardware-simulation wait should be a literal
// constant or a configurable knob: it is configurable but defaults to the
// literal 3s scenario.
type SimulationConfig struct {
	HardwareDelay time.Duration
}

func (c SimulationConfig) hardwareDelay() time.Duration {
	if c.HardwareDelay <= 0 {
		return 3 * time.Second
	}
	return c.HardwareDelay
}

// IdleEngine drives one charge point through Idle mode: it sends periodic
// heartbeats and waits passively for the CSMS to remote-start a
// transaction, then runs that one transaction to completion before
// returning to idle heartbeating.
type IdleEngine struct {
	io
	config     EngineConfig
	simulation SimulationConfig
	state      *StateMachine

	transactionID int
	meterStopWh   int
}

// NewIdleEngine returns an IdleEngine ready to Run.
func NewIdleEngine(config EngineConfig, simulation SimulationConfig, adapter Adapter, client *transport.Client, table *correlation.Table, tracer *tracelog.Logger, logger *slog.Logger) *IdleEngine {
	if logger == nil {
		logger = slog.Default()
	}
	if config.StartTxConfirmWait == 0 {
		config.StartTxConfirmWait = defaultStartTxConfirmWait
	}
	return &IdleEngine{
		io: io{
			stationID: config.StationID,
			adapter:   adapter,
			transport: client,
			table:     table,
			tracer:    tracer,
			logger:    logger.With("stationId", config.StationID),
		},
		config:     config,
		simulation: simulation,
		state:      NewStateMachine(),
	}
}

// Run connects, boots, then loops on heartbeats and inbound frames,
// running one full transaction to completion whenever the CSMS
// remote-starts one.
func (e *IdleEngine) Run(ctx context.Context) error {
	select {
	case <-time.After(e.config.BootDelay):
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := e.connectAndBoot(); err != nil {
		return fmt.Errorf("station %s: boot failed: %w", e.config.StationID, err)
	}
	defer e.transport.Close()

	heartbeatTicker := time.NewTicker(e.config.HeartbeatInterval)
	defer heartbeatTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-heartbeatTicker.C:
			e.sendHeartbeat()

		case idTag, ok := <-e.adapter.RemoteStart():
			if !ok {
				continue
			}
			if err := e.runTransaction(ctx, idTag); err != nil {
				e.logger.Warn("remote-started transaction failed", "error", err)
			}

		case inbound, ok := <-e.transport.Inbound:
			if !ok {
				e.logger.Info("transport closed")
				return nil
			}
			if inbound.Err != nil {
				e.logger.Info("session ending, no reconnect", "error", inbound.Err)
				if websocket.IsCloseError(inbound.Err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					return nil
				}
				return inbound.Err
			}
			e.handleInbound(inbound.Data)
		}
	}
}

// runTransaction drives the fixed Idle-mode lifecycle named by the spec:
// StartTransaction, Preparing, await-or-timeout the CSMS's transaction id,
// a hardware-simulation wait, Charging, 10 metered samples spaced by the
// same wait, then StopTransaction and Available. It blocks the engine's
// event loop for its whole duration — the same single suspension-point
// model Dynamic mode uses for its 5s wait.
func (e *IdleEngine) runTransaction(ctx context.Context, idTag string) error {
	e.state.Transition(StateStarting, "RemoteStartTransaction received")

	data, err := e.adapter.StartTransaction(idTag)
	if err != nil {
		return fmt.Errorf("build start transaction: %w", err)
	}
	var startMsgID string
	if id, perr := parseOutboundID(data); perr == nil {
		startMsgID = id
	}
	if err := e.sendTraced(data, "StartTransaction"); err != nil {
		return fmt.Errorf("send start transaction: %w", err)
	}

	if data, err := e.adapter.StatusNotification(ocpp.ConnectorStatusPreparing); err == nil {
		_ = e.sendTraced(data, "StatusNotification")
	}

	e.transactionID = e.awaitTransactionID(ctx, startMsgID, e.config.StartTxConfirmWait)

	select {
	case <-time.After(e.simulation.hardwareDelay()):
	case <-ctx.Done():
		return ctx.Err()
	}

	if data, err := e.adapter.StatusNotification(ocpp.ConnectorStatusCharging); err == nil {
		_ = e.sendTraced(data, "StatusNotification")
	}
	e.state.Transition(StateCharging, "hardware simulation complete")

	for i := 0; i < meterSampleCount; i++ {
		select {
		case <-time.After(e.simulation.hardwareDelay()):
		case <-ctx.Done():
			return ctx.Err()
		}
		e.meterStopWh += 100
		if data, err := e.adapter.MeterValues(e.transactionID); err == nil && data != nil {
			_ = e.sendTraced(data, "MeterValues")
		}
	}

	e.state.Transition(StateStopping, "meter sample sequence complete")
	data, err = e.adapter.StopTransaction(e.transactionID, idTag, e.meterStopWh)
	if err != nil {
		return fmt.Errorf("build stop transaction: %w", err)
	}
	if err := e.sendTraced(data, "StopTransaction"); err != nil {
		return fmt.Errorf("send stop transaction: %w", err)
	}

	if data, err := e.adapter.StatusNotification(ocpp.ConnectorStatusAvailable); err == nil {
		_ = e.sendTraced(data, "StatusNotification")
	}
	e.table.ClearTransactionID()
	e.state.Transition(StateIdle, "transaction ended")
	return nil
}
