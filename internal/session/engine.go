// Package session runs one charge point's OCPP lifecycle: a single
// goroutine per charge point, driven by a select loop over timers and the
// transport's inbound channel, mirroring the
// original_source/crates/cp/src/dynamic.rs tokio::select! loop. Version
// differences are hidden behind the Adapter interface so this package
// never imports internal/ocpp/v16, v201 or v21 directly.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ruslanhut/ocpp-emu/internal/correlation"
	"github.com/ruslanhut/ocpp-emu/internal/ocpp"
	"github.com/ruslanhut/ocpp-emu/internal/tracelog"
	"github.com/ruslanhut/ocpp-emu/internal/transport"
)

// meterValuesInterval is fixed at 2s, matching the teacher's hardcoded
// interval(Duration::from_secs(2)) — the config file has no knob for it.
const meterValuesInterval = 2 * time.Second

// defaultStartTxConfirmWait is how long Dynamic mode waits for the CSMS to
// acknowledge StartTransaction before falling back to a degraded
// transaction id, mirroring dynamic.rs's "TODO: timeout for assign
// transaction_id from the CSMS call result" five-second sleep.
const defaultStartTxConfirmWait = 5 * time.Second

// degradedTransactionID is used when the confirm wait elapses without a
// CSMS reply (or when the reply carries no id the adapter can extract).
const degradedTransactionID = 1

// EngineConfig carries the per-charge-point parameters the engine needs,
// translated from config.ChargePointConfig at fleet-startup time.
type EngineConfig struct {
	StationID         string
	BootDelay         time.Duration
	HeartbeatInterval time.Duration
	StartTxAfter      time.Duration
	StopTxAfter       time.Duration
	IDTags            []string

	// StartTxConfirmWait overrides defaultStartTxConfirmWait; tests shrink
	// it so the degraded-fallback path doesn't take 5 real seconds.
	StartTxConfirmWait time.Duration
}

func (c EngineConfig) idTag() string {
	if len(c.IDTags) == 0 {
		return "DEFAULT"
	}
	return c.IDTags[rand.IntN(len(c.IDTags))]
}

// Engine drives one charge point through Dynamic mode: boot, then forever
// alternate idle heartbeats with self-initiated transaction cycles.
type Engine struct {
	io
	config EngineConfig
	state  *StateMachine

	transactionID int
	meterStopWh   int
}

// NewEngine returns an Engine ready to Run.
func NewEngine(config EngineConfig, adapter Adapter, client *transport.Client, table *correlation.Table, tracer *tracelog.Logger, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if config.StartTxConfirmWait == 0 {
		config.StartTxConfirmWait = defaultStartTxConfirmWait
	}
	return &Engine{
		io: io{
			stationID: config.StationID,
			adapter:   adapter,
			transport: client,
			table:     table,
			tracer:    tracer,
			logger:    logger.With("stationId", config.StationID),
		},
		config: config,
		state:  NewStateMachine(),
	}
}

// Run connects, sends the boot notification and then runs the cooperative
// event loop until ctx is cancelled or the transport ends the session.
// Per the no-reconnect rule, any transport error or clean close ends Run
// without retrying.
func (e *Engine) Run(ctx context.Context) error {
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

	meterTicker := time.NewTicker(meterValuesInterval)
	defer meterTicker.Stop()

	nextStartTx := time.NewTimer(e.config.StartTxAfter)
	defer nextStartTx.Stop()

	var stopTxTimer *time.Timer
	transactionActive := false

	for {
		var startTxCh <-chan time.Time
		if !transactionActive {
			startTxCh = nextStartTx.C
		}
		var stopTxCh <-chan time.Time
		if stopTxTimer != nil {
			stopTxCh = stopTxTimer.C
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-startTxCh:
			if err := e.beginTransaction(ctx); err != nil {
				e.logger.Warn("begin transaction failed", "error", err)
			}
			transactionActive = true
			stopTxTimer = time.NewTimer(e.config.StopTxAfter)

		case <-stopTxCh:
			if err := e.endTransaction(); err != nil {
				e.logger.Warn("end transaction failed", "error", err)
			}
			transactionActive = false
			stopTxTimer = nil
			nextStartTx.Reset(e.config.StartTxAfter)

		case <-meterTicker.C:
			if transactionActive {
				e.sendMeterValues()
			}

		case <-heartbeatTicker.C:
			e.sendHeartbeat()

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

// beginTransaction runs the Starting leg of the lifecycle: StartTransaction,
// Preparing, a blocking wait for the CSMS to assign (or fail to assign) a
// transaction id, then Charging. The blocking wait matches dynamic.rs,
// where the equivalent select arm runs to completion before the loop looks
// at any other event source again.
func (e *Engine) beginTransaction(ctx context.Context) error {
	e.state.Transition(StateStarting, "start_tx timer fired")

	idTag := e.config.idTag()
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

	if data, err := e.adapter.StatusNotification(ocpp.ConnectorStatusCharging); err == nil {
		_ = e.sendTraced(data, "StatusNotification")
	}
	e.state.Transition(StateCharging, "transaction confirmed")
	return nil
}

func (e *Engine) endTransaction() error {
	e.state.Transition(StateStopping, "stop_tx timer fired")

	data, err := e.adapter.StopTransaction(e.transactionID, e.config.idTag(), e.meterStopWh)
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

// sendMeterValues is only ever called while transactionActive, so a
// transaction id always exists (§4.3: MeterValues must never be sent
// without one).
func (e *Engine) sendMeterValues() {
	e.meterStopWh += 100
	data, err := e.adapter.MeterValues(e.transactionID)
	if err != nil {
		e.logger.Warn("build meter values failed", "error", err)
		return
	}
	if data == nil {
		return
	}
	if err := e.sendTraced(data, "MeterValues"); err != nil {
		e.logger.Warn("send meter values failed", "error", err)
	}
}
