package v21

import (
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/ruslanhut/ocpp-emu/internal/ocpp"
)

func TestHandler_HandleCall_ReserveNow(t *testing.T) {
	handler := NewHandler(slog.Default())
	handler.OnReserveNow = func(stationID string, req *ReserveNowRequest) (*ReserveNowResponse, error) {
		return &ReserveNowResponse{Status: "Accepted"}, nil
	}

	reqBytes, _ := json.Marshal(ReserveNowRequest{Id: 1})
	call := &ocpp.Call{
		MessageTypeID: ocpp.MessageTypeCall,
		UniqueID:      "test-1",
		Action:        string(ActionReserveNow),
		Payload:       reqBytes,
	}

	resp, err := handler.HandleCall("CP001", call)
	if err != nil {
		t.Fatalf("HandleCall failed: %v", err)
	}
	reserveResp, ok := resp.(*ReserveNowResponse)
	if !ok || reserveResp.Status != "Accepted" {
		t.Fatalf("unexpected response: %#v", resp)
	}
}

// TestHandler_HandleCall_FallsThroughToV201 confirms an unrecognized 2.1
// action still falls back to the embedded 2.0.1 handler and, if it's also
// unknown there, surfaces as an UnknownActionError.
func TestHandler_HandleCall_FallsThroughToV201(t *testing.T) {
	handler := NewHandler(slog.Default())

	call := &ocpp.Call{
		MessageTypeID: ocpp.MessageTypeCall,
		UniqueID:      "test-unknown",
		Action:        "Bogus",
		Payload:       json.RawMessage("{}"),
	}

	_, err := handler.HandleCall("CP001", call)
	var unknownErr *ocpp.UnknownActionError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected UnknownActionError, got %T: %v", err, err)
	}
}
