package v16

import (
	"encoding/json"
	"testing"

	"github.com/ruslanhut/ocpp-emu/internal/correlation"
	"github.com/ruslanhut/ocpp-emu/internal/ocpp"
)

func TestGenerator_BootNotification_RegistersCorrelation(t *testing.T) {
	table := correlation.New()
	gen := NewGenerator(table)

	data, err := gen.BootNotification(&BootNotificationRequest{
		ChargePointModel:  "Model-X",
		ChargePointVendor: "Vendor-Y",
	})
	if err != nil {
		t.Fatalf("BootNotification failed: %v", err)
	}

	var call ocpp.Call
	if err := json.Unmarshal(data, &call); err != nil {
		t.Fatalf("failed to unmarshal generated call: %v", err)
	}
	if call.Action != string(ActionBootNotification) {
		t.Errorf("expected action %s, got %s", ActionBootNotification, call.Action)
	}

	action, ok := table.Take(call.UniqueID)
	if !ok {
		t.Fatal("expected the generated msg_id to be registered in the correlation table")
	}
	if action != string(ActionBootNotification) {
		t.Errorf("expected correlated action BootNotification, got %s", action)
	}
}

func TestGenerator_Heartbeat(t *testing.T) {
	gen := NewGenerator(correlation.New())

	data, err := gen.Heartbeat()
	if err != nil {
		t.Fatalf("Heartbeat failed: %v", err)
	}

	var call ocpp.Call
	if err := json.Unmarshal(data, &call); err != nil {
		t.Fatalf("failed to unmarshal generated call: %v", err)
	}
	if call.Action != string(ActionHeartbeat) {
		t.Errorf("expected action Heartbeat, got %s", call.Action)
	}
}

func TestGenerator_StatusNotification_StampsTimestamp(t *testing.T) {
	gen := NewGenerator(correlation.New())

	req := &StatusNotificationRequest{
		ConnectorId: 1,
		ErrorCode:   ChargePointErrorNoError,
		Status:      ChargePointStatusAvailable,
	}
	if _, err := gen.StatusNotification(req); err != nil {
		t.Fatalf("StatusNotification failed: %v", err)
	}
	if req.Timestamp == nil {
		t.Error("expected StatusNotification to stamp a timestamp when unset")
	}
}

func TestGenerator_DistinctMessageIDsPerCall(t *testing.T) {
	table := correlation.New()
	gen := NewGenerator(table)

	for i := 0; i < 5; i++ {
		if _, err := gen.Heartbeat(); err != nil {
			t.Fatalf("Heartbeat failed: %v", err)
		}
	}
	if table.Len() != 5 {
		t.Errorf("expected 5 distinct pending entries, got %d", table.Len())
	}
}
