package v21

import (
	"encoding/json"
	"testing"

	"github.com/ruslanhut/ocpp-emu/internal/correlation"
	"github.com/ruslanhut/ocpp-emu/internal/ocpp"
)

func TestGenerator_InheritsV201Heartbeat(t *testing.T) {
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
	if call.Action != "Heartbeat" {
		t.Errorf("expected inherited Heartbeat action, got %s", call.Action)
	}
}

func TestGenerator_FirmwareStatusNotification(t *testing.T) {
	table := correlation.New()
	gen := NewGenerator(table)

	data, err := gen.FirmwareStatusNotification(&FirmwareStatusNotificationRequest{Status: "Downloaded"})
	if err != nil {
		t.Fatalf("FirmwareStatusNotification failed: %v", err)
	}
	var call ocpp.Call
	if err := json.Unmarshal(data, &call); err != nil {
		t.Fatalf("failed to unmarshal call: %v", err)
	}
	if call.Action != string(ActionFirmwareStatusNotification) {
		t.Errorf("expected action FirmwareStatusNotification, got %s", call.Action)
	}
	if table.Len() != 1 {
		t.Errorf("expected one pending correlation entry, got %d", table.Len())
	}
}
