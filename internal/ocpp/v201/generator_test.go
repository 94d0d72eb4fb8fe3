package v201

import (
	"encoding/json"
	"testing"

	"github.com/ruslanhut/ocpp-emu/internal/correlation"
	"github.com/ruslanhut/ocpp-emu/internal/ocpp"
)

func TestGenerator_Heartbeat_RegistersCorrelation(t *testing.T) {
	table := correlation.New()
	gen := NewGenerator(table)

	data, err := gen.Heartbeat()
	if err != nil {
		t.Fatalf("Heartbeat failed: %v", err)
	}

	var call ocpp.Call
	if err := json.Unmarshal(data, &call); err != nil {
		t.Fatalf("failed to unmarshal call: %v", err)
	}
	if call.Action != string(ActionHeartbeat) {
		t.Errorf("expected action Heartbeat, got %s", call.Action)
	}
	if _, ok := table.Take(call.UniqueID); !ok {
		t.Error("expected the generated msg_id to be registered")
	}
}

func TestGenerator_StatusNotification_StampsTimestamp(t *testing.T) {
	gen := NewGenerator(correlation.New())
	req := &StatusNotificationRequest{ConnectorId: 1, EvseId: 1, ConnectorStatus: ConnectorStatusAvailable}

	if _, err := gen.StatusNotification(req); err != nil {
		t.Fatalf("StatusNotification failed: %v", err)
	}
	if req.Timestamp.Time.IsZero() {
		t.Error("expected StatusNotification to stamp a timestamp when unset")
	}
}
