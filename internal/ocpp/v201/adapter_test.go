package v201

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/ruslanhut/ocpp-emu/internal/correlation"
	"github.com/ruslanhut/ocpp-emu/internal/ocpp"
)

func TestAdapter_BootNotification(t *testing.T) {
	table := correlation.New()
	a := NewAdapter("CP001", 1, 1, table)

	data, err := a.BootNotification()
	if err != nil {
		t.Fatalf("BootNotification failed: %v", err)
	}
	var call ocpp.Call
	if err := json.Unmarshal(data, &call); err != nil {
		t.Fatalf("unmarshal call: %v", err)
	}
	if call.Action != string(ActionBootNotification) {
		t.Errorf("expected BootNotification action, got %s", call.Action)
	}
}

func TestAdapter_StartTransactionUsesTransactionEvent(t *testing.T) {
	table := correlation.New()
	a := NewAdapter("CP001", 1, 1, table)

	data, err := a.StartTransaction("tag-1")
	if err != nil {
		t.Fatalf("StartTransaction failed: %v", err)
	}
	var call ocpp.Call
	if err := json.Unmarshal(data, &call); err != nil {
		t.Fatalf("unmarshal call: %v", err)
	}
	if call.Action != string(ActionTransactionEvent) {
		t.Errorf("expected TransactionEvent action, got %s", call.Action)
	}
	var req TransactionEventRequest
	if err := json.Unmarshal(call.Payload, &req); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if req.EventType != TransactionEventStarted {
		t.Errorf("expected Started event type, got %s", req.EventType)
	}
	if req.SeqNo != 0 {
		t.Errorf("expected seqNo 0 on first event, got %d", req.SeqNo)
	}
	if req.TransactionInfo.TransactionId == "0" || req.TransactionInfo.TransactionId == "" {
		t.Errorf("expected StartTransaction to mint a real transaction id, got %q", req.TransactionInfo.TransactionId)
	}
}

// TestAdapter_TransactionIDConsistentAcrossLifecycle guards against a
// StartTransaction that mints one id while ExtractTransactionID (and thus
// every StopTransaction/MeterValues call the engine makes afterward) uses
// a different, unrelated one.
func TestAdapter_TransactionIDConsistentAcrossLifecycle(t *testing.T) {
	table := correlation.New()
	a := NewAdapter("CP001", 1, 1, table)

	data, err := a.StartTransaction("tag-1")
	if err != nil {
		t.Fatalf("StartTransaction failed: %v", err)
	}
	var call ocpp.Call
	json.Unmarshal(data, &call)
	var started TransactionEventRequest
	json.Unmarshal(call.Payload, &started)

	id, ok := a.ExtractTransactionID(nil)
	if !ok {
		t.Fatal("expected ExtractTransactionID to report a minted id")
	}
	if got := parseTransactionID(started.TransactionInfo.TransactionId); got != id {
		t.Errorf("Started event reported transaction id %d, ExtractTransactionID reported %d", got, id)
	}

	stopData, err := a.StopTransaction(id, "tag-1", 1000)
	if err != nil {
		t.Fatalf("StopTransaction failed: %v", err)
	}
	var stopCall ocpp.Call
	json.Unmarshal(stopData, &stopCall)
	var ended TransactionEventRequest
	json.Unmarshal(stopCall.Payload, &ended)
	if ended.TransactionInfo.TransactionId != started.TransactionInfo.TransactionId {
		t.Errorf("Ended event transaction id %q does not match Started event's %q", ended.TransactionInfo.TransactionId, started.TransactionInfo.TransactionId)
	}
}

func TestAdapter_TransactionIDUniquePerTransaction(t *testing.T) {
	table := correlation.New()
	a := NewAdapter("CP001", 1, 1, table)

	if _, err := a.StartTransaction("tag-1"); err != nil {
		t.Fatalf("StartTransaction failed: %v", err)
	}
	first, _ := a.ExtractTransactionID(nil)

	if _, err := a.StartTransaction("tag-2"); err != nil {
		t.Fatalf("StartTransaction failed: %v", err)
	}
	second, _ := a.ExtractTransactionID(nil)

	if first == second {
		t.Errorf("expected distinct transaction ids across transactions, got %d twice", first)
	}
}

// parseTransactionID parses a TransactionId string back into an int for
// comparison against ExtractTransactionID's int return value.
func parseTransactionID(transactionId string) int {
	var n int
	fmt.Sscanf(transactionId, "%d", &n)
	return n
}

func TestAdapter_MeterValuesIncrementsSeqNo(t *testing.T) {
	table := correlation.New()
	a := NewAdapter("CP001", 1, 1, table)

	if _, err := a.StartTransaction("tag-1"); err != nil {
		t.Fatalf("StartTransaction failed: %v", err)
	}

	data1, err := a.MeterValues(1)
	if err != nil {
		t.Fatalf("MeterValues failed: %v", err)
	}
	data2, err := a.MeterValues(1)
	if err != nil {
		t.Fatalf("MeterValues failed: %v", err)
	}

	var call1, call2 ocpp.Call
	json.Unmarshal(data1, &call1)
	json.Unmarshal(data2, &call2)

	var req1, req2 TransactionEventRequest
	json.Unmarshal(call1.Payload, &req1)
	json.Unmarshal(call2.Payload, &req2)

	if req2.SeqNo <= req1.SeqNo {
		t.Errorf("expected monotonically increasing seqNo, got %d then %d", req1.SeqNo, req2.SeqNo)
	}
	if len(req1.MeterValue) == 0 || len(req1.MeterValue[0].SampledValue) == 0 {
		t.Fatal("expected a sampled value in the meter reading")
	}
	if req2.MeterValue[0].SampledValue[0].Value <= req1.MeterValue[0].SampledValue[0].Value {
		t.Errorf("expected increasing cumulative energy reading")
	}
}

func TestAdapter_StatusNotificationCollapsesOccupancy(t *testing.T) {
	table := correlation.New()
	a := NewAdapter("CP001", 1, 1, table)

	data, err := a.StatusNotification(ocpp.ConnectorStatusCharging)
	if err != nil {
		t.Fatalf("StatusNotification failed: %v", err)
	}
	var call ocpp.Call
	json.Unmarshal(data, &call)
	var req StatusNotificationRequest
	json.Unmarshal(call.Payload, &req)
	if req.ConnectorStatus != ConnectorStatusOccupied {
		t.Errorf("expected Charging to collapse to Occupied, got %s", req.ConnectorStatus)
	}
}
