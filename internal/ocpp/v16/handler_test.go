package v16

import (
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/ruslanhut/ocpp-emu/internal/ocpp"
)

func TestHandler_HandleCall_RemoteStartTransaction(t *testing.T) {
	handler := NewHandler(slog.Default())

	// Set up callback
	var receivedReq *RemoteStartTransactionRequest
	handler.OnRemoteStartTransaction = func(stationID string, req *RemoteStartTransactionRequest) (*RemoteStartTransactionResponse, error) {
		receivedReq = req
		return &RemoteStartTransactionResponse{Status: "Accepted"}, nil
	}

	// Create request
	req := RemoteStartTransactionRequest{
		IdTag: "TAG123",
	}
	reqBytes, _ := json.Marshal(req)

	call := &ocpp.Call{
		MessageTypeID: ocpp.MessageTypeCall,
		UniqueID:      "test-123",
		Action:        string(ActionRemoteStartTransaction),
		Payload:       reqBytes,
	}

	// Handle call
	resp, err := handler.HandleCall("CP001", call)
	if err != nil {
		t.Fatalf("HandleCall failed: %v", err)
	}

	// Verify response
	remoteStartResp, ok := resp.(*RemoteStartTransactionResponse)
	if !ok {
		t.Fatalf("Expected *RemoteStartTransactionResponse, got %T", resp)
	}

	if remoteStartResp.Status != "Accepted" {
		t.Errorf("Expected status 'Accepted', got '%s'", remoteStartResp.Status)
	}

	if receivedReq == nil {
		t.Fatal("Callback was not called")
	}

	if receivedReq.IdTag != "TAG123" {
		t.Errorf("Expected IdTag 'TAG123', got '%s'", receivedReq.IdTag)
	}
}

func TestHandler_HandleCall_RemoteStopTransaction(t *testing.T) {
	handler := NewHandler(slog.Default())

	handler.OnRemoteStopTransaction = func(stationID string, req *RemoteStopTransactionRequest) (*RemoteStopTransactionResponse, error) {
		if req.TransactionId != 42 {
			t.Errorf("Expected TransactionId 42, got %d", req.TransactionId)
		}
		return &RemoteStopTransactionResponse{Status: "Accepted"}, nil
	}

	req := RemoteStopTransactionRequest{
		TransactionId: 42,
	}
	reqBytes, _ := json.Marshal(req)

	call := &ocpp.Call{
		MessageTypeID: ocpp.MessageTypeCall,
		UniqueID:      "test-456",
		Action:        string(ActionRemoteStopTransaction),
		Payload:       reqBytes,
	}

	resp, err := handler.HandleCall("CP001", call)
	if err != nil {
		t.Fatalf("HandleCall failed: %v", err)
	}

	remoteStopResp, ok := resp.(*RemoteStopTransactionResponse)
	if !ok {
		t.Fatalf("Expected *RemoteStopTransactionResponse, got %T", resp)
	}

	if remoteStopResp.Status != "Accepted" {
		t.Errorf("Expected status 'Accepted', got '%s'", remoteStopResp.Status)
	}
}

func TestHandler_HandleCall_Reset(t *testing.T) {
	handler := NewHandler(slog.Default())

	handler.OnReset = func(stationID string, req *ResetRequest) (*ResetResponse, error) {
		if req.Type != "Soft" {
			t.Errorf("Expected reset type 'Soft', got '%s'", req.Type)
		}
		return &ResetResponse{Status: "Accepted"}, nil
	}

	req := ResetRequest{
		Type: "Soft",
	}
	reqBytes, _ := json.Marshal(req)

	call := &ocpp.Call{
		MessageTypeID: ocpp.MessageTypeCall,
		UniqueID:      "test-789",
		Action:        string(ActionReset),
		Payload:       reqBytes,
	}

	resp, err := handler.HandleCall("CP001", call)
	if err != nil {
		t.Fatalf("HandleCall failed: %v", err)
	}

	resetResp, ok := resp.(*ResetResponse)
	if !ok {
		t.Fatalf("Expected *ResetResponse, got %T", resp)
	}

	if resetResp.Status != "Accepted" {
		t.Errorf("Expected status 'Accepted', got '%s'", resetResp.Status)
	}
}

func TestHandler_HandleCall_UnknownAction(t *testing.T) {
	handler := NewHandler(slog.Default())

	call := &ocpp.Call{
		MessageTypeID: ocpp.MessageTypeCall,
		UniqueID:      "test-unknown",
		Action:        "UnknownAction",
		Payload:       json.RawMessage("{}"),
	}

	_, err := handler.HandleCall("CP001", call)
	if err == nil {
		t.Fatal("Expected error for unknown action, got nil")
	}

	var unknownErr *ocpp.UnknownActionError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("Expected UnknownActionError, got %T: %v", err, err)
	}
	if unknownErr.Action != "UnknownAction" {
		t.Errorf("Expected action 'UnknownAction', got %q", unknownErr.Action)
	}
}

