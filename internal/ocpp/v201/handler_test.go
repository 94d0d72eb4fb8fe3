package v201

import (
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/ruslanhut/ocpp-emu/internal/ocpp"
)

func TestHandler_HandleCall_Reset(t *testing.T) {
	handler := NewHandler(slog.Default())
	handler.OnReset = func(stationID string, req *ResetRequest) (*ResetResponse, error) {
		return &ResetResponse{Status: "Accepted"}, nil
	}

	reqBytes, _ := json.Marshal(ResetRequest{Type: "Immediate"})
	call := &ocpp.Call{
		MessageTypeID: ocpp.MessageTypeCall,
		UniqueID:      "test-1",
		Action:        string(ActionReset),
		Payload:       reqBytes,
	}

	resp, err := handler.HandleCall("CP001", call)
	if err != nil {
		t.Fatalf("HandleCall failed: %v", err)
	}
	resetResp, ok := resp.(*ResetResponse)
	if !ok || resetResp.Status != "Accepted" {
		t.Fatalf("unexpected response: %#v", resp)
	}
}

func TestHandler_HandleCall_UnknownAction(t *testing.T) {
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
