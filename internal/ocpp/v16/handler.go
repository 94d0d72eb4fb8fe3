package v16

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ruslanhut/ocpp-emu/internal/ocpp"
)

// Handler handles OCPP 1.6 protocol messages
type Handler struct {
	logger *slog.Logger

	// Callbacks for handling incoming requests from CSMS
	OnRemoteStartTransaction func(stationID string, req *RemoteStartTransactionRequest) (*RemoteStartTransactionResponse, error)
	OnRemoteStopTransaction  func(stationID string, req *RemoteStopTransactionRequest) (*RemoteStopTransactionResponse, error)
	OnReset                  func(stationID string, req *ResetRequest) (*ResetResponse, error)
	OnUnlockConnector        func(stationID string, req *UnlockConnectorRequest) (*UnlockConnectorResponse, error)
	OnChangeAvailability     func(stationID string, req *ChangeAvailabilityRequest) (*ChangeAvailabilityResponse, error)
	OnChangeConfiguration    func(stationID string, req *ChangeConfigurationRequest) (*ChangeConfigurationResponse, error)
	OnGetConfiguration       func(stationID string, req *GetConfigurationRequest) (*GetConfigurationResponse, error)
	OnClearCache             func(stationID string, req *ClearCacheRequest) (*ClearCacheResponse, error)
	OnDataTransfer           func(stationID string, req *DataTransferRequest) (*DataTransferResponse, error)
}

// NewHandler creates a new OCPP 1.6 handler
func NewHandler(logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		logger: logger,
	}
}

// HandleCall processes incoming Call messages from CSMS
func (h *Handler) HandleCall(stationID string, call *ocpp.Call) (interface{}, error) {
	h.logger.Debug("Handling OCPP 1.6 Call", "stationId", stationID, "action", call.Action)

	switch Action(call.Action) {
	case ActionRemoteStartTransaction:
		return h.handleRemoteStartTransaction(stationID, call)
	case ActionRemoteStopTransaction:
		return h.handleRemoteStopTransaction(stationID, call)
	case ActionReset:
		return h.handleReset(stationID, call)
	case ActionUnlockConnector:
		return h.handleUnlockConnector(stationID, call)
	case ActionChangeAvailability:
		return h.handleChangeAvailability(stationID, call)
	case ActionChangeConfiguration:
		return h.handleChangeConfiguration(stationID, call)
	case ActionGetConfiguration:
		return h.handleGetConfiguration(stationID, call)
	case ActionClearCache:
		return h.handleClearCache(stationID, call)
	case ActionDataTransfer:
		return h.handleDataTransfer(stationID, call)
	default:
		return nil, ocpp.NewUnknownActionError(call.Action)
	}
}

// handleRemoteStartTransaction handles RemoteStartTransaction request
func (h *Handler) handleRemoteStartTransaction(stationID string, call *ocpp.Call) (*RemoteStartTransactionResponse, error) {
	var req RemoteStartTransactionRequest
	if err := json.Unmarshal(call.Payload, &req); err != nil {
		return nil, ocpp.NewPayloadError(string(ActionRemoteStartTransaction), err)
	}

	if h.OnRemoteStartTransaction == nil {
		return &RemoteStartTransactionResponse{Status: "Rejected"}, nil
	}

	return h.OnRemoteStartTransaction(stationID, &req)
}

// handleRemoteStopTransaction handles RemoteStopTransaction request
func (h *Handler) handleRemoteStopTransaction(stationID string, call *ocpp.Call) (*RemoteStopTransactionResponse, error) {
	var req RemoteStopTransactionRequest
	if err := json.Unmarshal(call.Payload, &req); err != nil {
		return nil, ocpp.NewPayloadError(string(ActionRemoteStopTransaction), err)
	}

	if h.OnRemoteStopTransaction == nil {
		return &RemoteStopTransactionResponse{Status: "Rejected"}, nil
	}

	return h.OnRemoteStopTransaction(stationID, &req)
}

// handleReset handles Reset request
func (h *Handler) handleReset(stationID string, call *ocpp.Call) (*ResetResponse, error) {
	var req ResetRequest
	if err := json.Unmarshal(call.Payload, &req); err != nil {
		return nil, ocpp.NewPayloadError(string(ActionReset), err)
	}

	if h.OnReset == nil {
		return &ResetResponse{Status: "Rejected"}, nil
	}

	return h.OnReset(stationID, &req)
}

// handleUnlockConnector handles UnlockConnector request
func (h *Handler) handleUnlockConnector(stationID string, call *ocpp.Call) (*UnlockConnectorResponse, error) {
	var req UnlockConnectorRequest
	if err := json.Unmarshal(call.Payload, &req); err != nil {
		return nil, ocpp.NewPayloadError(string(ActionUnlockConnector), err)
	}

	if h.OnUnlockConnector == nil {
		return &UnlockConnectorResponse{Status: "NotSupported"}, nil
	}

	return h.OnUnlockConnector(stationID, &req)
}

// handleChangeAvailability handles ChangeAvailability request
func (h *Handler) handleChangeAvailability(stationID string, call *ocpp.Call) (*ChangeAvailabilityResponse, error) {
	var req ChangeAvailabilityRequest
	if err := json.Unmarshal(call.Payload, &req); err != nil {
		return nil, ocpp.NewPayloadError(string(ActionChangeAvailability), err)
	}

	if h.OnChangeAvailability == nil {
		return &ChangeAvailabilityResponse{Status: "Rejected"}, nil
	}

	return h.OnChangeAvailability(stationID, &req)
}

// handleChangeConfiguration handles ChangeConfiguration request
func (h *Handler) handleChangeConfiguration(stationID string, call *ocpp.Call) (*ChangeConfigurationResponse, error) {
	var req ChangeConfigurationRequest
	if err := json.Unmarshal(call.Payload, &req); err != nil {
		return nil, ocpp.NewPayloadError(string(ActionChangeConfiguration), err)
	}

	if h.OnChangeConfiguration == nil {
		return &ChangeConfigurationResponse{Status: "NotSupported"}, nil
	}

	return h.OnChangeConfiguration(stationID, &req)
}

// handleGetConfiguration handles GetConfiguration request
func (h *Handler) handleGetConfiguration(stationID string, call *ocpp.Call) (*GetConfigurationResponse, error) {
	var req GetConfigurationRequest
	if err := json.Unmarshal(call.Payload, &req); err != nil {
		return nil, ocpp.NewPayloadError(string(ActionGetConfiguration), err)
	}

	if h.OnGetConfiguration == nil {
		return &GetConfigurationResponse{}, nil
	}

	return h.OnGetConfiguration(stationID, &req)
}

// handleClearCache handles ClearCache request
func (h *Handler) handleClearCache(stationID string, call *ocpp.Call) (*ClearCacheResponse, error) {
	var req ClearCacheRequest
	if err := json.Unmarshal(call.Payload, &req); err != nil {
		return nil, ocpp.NewPayloadError(string(ActionClearCache), err)
	}

	if h.OnClearCache == nil {
		return &ClearCacheResponse{Status: "Rejected"}, nil
	}

	return h.OnClearCache(stationID, &req)
}

// handleDataTransfer handles DataTransfer request
func (h *Handler) handleDataTransfer(stationID string, call *ocpp.Call) (*DataTransferResponse, error) {
	var req DataTransferRequest
	if err := json.Unmarshal(call.Payload, &req); err != nil {
		return nil, ocpp.NewPayloadError(string(ActionDataTransfer), err)
	}

	if h.OnDataTransfer == nil {
		return &DataTransferResponse{Status: "UnknownVendorId"}, nil
	}

	return h.OnDataTransfer(stationID, &req)
}

// ==================== Response Handlers ====================

// HandleCallResult processes CallResult responses from CSMS
func (h *Handler) HandleCallResult(stationID string, result *ocpp.CallResult, originalAction Action) (interface{}, error) {
	h.logger.Debug("Handling OCPP 1.6 CallResult", "stationId", stationID, "action", originalAction)

	switch originalAction {
	case ActionBootNotification:
		var resp BootNotificationResponse
		if err := json.Unmarshal(result.Payload, &resp); err != nil {
			return nil, fmt.Errorf("failed to unmarshal BootNotification response: %w", err)
		}
		return &resp, nil

	case ActionHeartbeat:
		var resp HeartbeatResponse
		if err := json.Unmarshal(result.Payload, &resp); err != nil {
			return nil, fmt.Errorf("failed to unmarshal Heartbeat response: %w", err)
		}
		return &resp, nil

	case ActionStatusNotification:
		var resp StatusNotificationResponse
		if err := json.Unmarshal(result.Payload, &resp); err != nil {
			return nil, fmt.Errorf("failed to unmarshal StatusNotification response: %w", err)
		}
		return &resp, nil

	case ActionAuthorize:
		var resp AuthorizeResponse
		if err := json.Unmarshal(result.Payload, &resp); err != nil {
			return nil, fmt.Errorf("failed to unmarshal Authorize response: %w", err)
		}
		return &resp, nil

	case ActionStartTransaction:
		var resp StartTransactionResponse
		if err := json.Unmarshal(result.Payload, &resp); err != nil {
			return nil, fmt.Errorf("failed to unmarshal StartTransaction response: %w", err)
		}
		return &resp, nil

	case ActionStopTransaction:
		var resp StopTransactionResponse
		if err := json.Unmarshal(result.Payload, &resp); err != nil {
			return nil, fmt.Errorf("failed to unmarshal StopTransaction response: %w", err)
		}
		return &resp, nil

	case ActionMeterValues:
		var resp MeterValuesResponse
		if err := json.Unmarshal(result.Payload, &resp); err != nil {
			return nil, fmt.Errorf("failed to unmarshal MeterValues response: %w", err)
		}
		return &resp, nil

	case ActionDataTransfer:
		var resp DataTransferResponse
		if err := json.Unmarshal(result.Payload, &resp); err != nil {
			return nil, fmt.Errorf("failed to unmarshal DataTransfer response: %w", err)
		}
		return &resp, nil

	default:
		return nil, fmt.Errorf("unknown action for CallResult: %s", originalAction)
	}
}
