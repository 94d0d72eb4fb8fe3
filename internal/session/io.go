package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ruslanhut/ocpp-emu/internal/correlation"
	"github.com/ruslanhut/ocpp-emu/internal/ocpp"
	"github.com/ruslanhut/ocpp-emu/internal/tracelog"
	"github.com/ruslanhut/ocpp-emu/internal/transport"
)

// io is the inbound-dispatch and outbound-send machinery shared by Engine
// and IdleEngine: both run the same kind of select loop over the same
// transport and correlation table, and only differ in what schedules their
// outbound traffic. Embedding this avoids duplicating the CallResult/
// CallError/degraded-transaction-id plumbing in both engines.
type io struct {
	stationID string
	adapter   Adapter
	transport *transport.Client
	table     *correlation.Table
	tracer    *tracelog.Logger
	logger    *slog.Logger
}

func (s *io) sendTraced(data []byte, action string) error {
	if err := s.transport.Send(data); err != nil {
		return err
	}
	if s.tracer != nil {
		s.tracer.Log(tracelog.Entry{
			StationID:   s.stationID,
			Direction:   "sent",
			MessageType: "Call",
			Action:      action,
		})
	}
	return nil
}

// handleCall dispatches an inbound CSMS Call and sends back a matching
// CallResult or, on error, a CallError built via ocpp.ErrorResponseFor.
func (s *io) handleCall(call *ocpp.Call) {
	resp, err := s.adapter.HandleCall(s.stationID, call)
	if err != nil {
		ce := ocpp.ErrorResponseFor(call.UniqueID, err)
		data, merr := ce.ToBytes()
		if merr != nil {
			s.logger.Error("failed to marshal call error", "error", merr)
			return
		}
		if serr := s.transport.Send(data); serr != nil {
			s.logger.Warn("failed to send call error", "error", serr)
		}
		return
	}

	result, err := ocpp.NewCallResult(call.UniqueID, resp)
	if err != nil {
		s.logger.Error("failed to build call result", "error", err)
		return
	}
	data, err := result.ToBytes()
	if err != nil {
		s.logger.Error("failed to marshal call result", "error", err)
		return
	}
	if err := s.transport.Send(data); err != nil {
		s.logger.Warn("failed to send call result", "action", call.Action, "error", err)
	}
}

// handleInbound dispatches one inbound frame outside the
// waiting-for-a-transaction-id window (that path goes through
// dispatchForTransactionID instead, which also needs to recognize the
// StartTransaction confirmation).
func (s *io) handleInbound(data []byte) {
	msg, err := ocpp.ParseMessage(data)
	if err != nil {
		s.logger.Warn("failed to parse inbound message", "error", err)
		return
	}
	switch m := msg.(type) {
	case *ocpp.Call:
		s.handleCall(m)
	case *ocpp.CallResult:
		action, found := s.table.Take(m.UniqueID)
		if !found {
			s.logger.Warn("callresult for unknown msg_id", "msgId", m.UniqueID)
			return
		}
		if _, err := s.adapter.HandleCallResult(s.stationID, m, action); err != nil {
			s.logger.Warn("failed to handle callresult", "action", action, "error", err)
		}
	case *ocpp.CallError:
		action, _ := s.table.Take(m.UniqueID)
		s.logger.Warn("received CallError", "action", action, "code", m.ErrorCode, "description", m.ErrorDesc)
	}
}

// dispatchForTransactionID processes one inbound frame the same way
// handleInbound does, but additionally reports whether it was the
// StartTransaction confirmation identified by startMsgID and, if so, the
// assigned (or degraded-fallback) transaction id.
func (s *io) dispatchForTransactionID(startMsgID string, data []byte) (int, bool) {
	msg, err := ocpp.ParseMessage(data)
	if err != nil {
		s.logger.Warn("failed to parse inbound message", "error", err)
		return 0, false
	}
	switch m := msg.(type) {
	case *ocpp.Call:
		s.handleCall(m)
	case *ocpp.CallResult:
		action, found := s.table.Take(m.UniqueID)
		if !found {
			s.logger.Warn("callresult for unknown msg_id", "msgId", m.UniqueID)
			return 0, false
		}
		resp, err := s.adapter.HandleCallResult(s.stationID, m, action)
		if err != nil {
			s.logger.Warn("failed to handle callresult", "action", action, "error", err)
			return 0, false
		}
		if m.UniqueID == startMsgID {
			if id, ok := s.adapter.ExtractTransactionID(resp); ok {
				s.table.SetTransactionID(id)
				return id, true
			}
			return degradedTransactionID, true
		}
	case *ocpp.CallError:
		s.table.Take(m.UniqueID)
		s.logger.Warn("received CallError", "code", m.ErrorCode, "description", m.ErrorDesc)
	}
	return 0, false
}

// awaitTransactionID blocks for up to wait for the CSMS's StartTransaction
// CallResult identified by startMsgID to arrive, dispatching any other
// inbound traffic it sees along the way. If nothing arrives in time it logs
// the degradation and falls back to degradedTransactionID; it also returns
// degradedTransactionID, without that log line, when the reply carries no
// extractable id, the transport ends, or ctx is cancelled.
func (s *io) awaitTransactionID(ctx context.Context, startMsgID string, wait time.Duration) int {
	deadline := time.NewTimer(wait)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return degradedTransactionID
		case <-deadline.C:
			s.logger.Warn("degraded: no transaction id assigned within wait window, using fallback", "fallback", degradedTransactionID)
			return degradedTransactionID
		case inbound, ok := <-s.transport.Inbound:
			if !ok || inbound.Err != nil {
				return degradedTransactionID
			}
			if id, ok := s.dispatchForTransactionID(startMsgID, inbound.Data); ok {
				return id
			}
		}
	}
}

func (s *io) connectAndBoot() error {
	if err := s.transport.Connect(); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	data, err := s.adapter.BootNotification()
	if err != nil {
		return fmt.Errorf("build boot notification: %w", err)
	}
	return s.sendTraced(data, "BootNotification")
}

func (s *io) sendHeartbeat() {
	data, err := s.adapter.Heartbeat()
	if err != nil {
		s.logger.Warn("build heartbeat failed", "error", err)
		return
	}
	if err := s.sendTraced(data, "Heartbeat"); err != nil {
		s.logger.Warn("send heartbeat failed", "error", err)
	}
}

// parseOutboundID extracts the uniqueId the generator assigned to an
// outbound frame, so an engine can recognize its own StartTransaction's
// CallResult by correlation id.
func parseOutboundID(data []byte) (string, error) {
	var arr []json.RawMessage
	if err := json.Unmarshal(data, &arr); err != nil {
		return "", err
	}
	if len(arr) < 2 {
		return "", fmt.Errorf("outbound frame too short")
	}
	var id string
	if err := json.Unmarshal(arr[1], &id); err != nil {
		return "", err
	}
	return id, nil
}
