package session

import "github.com/ruslanhut/ocpp-emu/internal/ocpp"

// Adapter is the version-neutral capability set the engine drives a
// charge point session through, per spec §REDESIGN FLAGS: "model as three
// parallel action catalogs with a common frame envelope tagged by version
// at the dispatch boundary; the session engine holds a version-neutral
// handle." One Adapter implementation exists per OCPP version
// (internal/ocpp/v16, v201, v21).
type Adapter interface {
	// BootNotification builds the initial boot frame.
	BootNotification() ([]byte, error)

	// Heartbeat builds a Heartbeat frame.
	Heartbeat() ([]byte, error)

	// StatusNotification builds a StatusNotification frame for the given
	// version-neutral connector status.
	StatusNotification(status ocpp.ConnectorStatus) ([]byte, error)

	// Authorize builds an Authorize frame for idTag.
	Authorize(idTag string) ([]byte, error)

	// StartTransaction builds the frame that begins a transaction for idTag.
	StartTransaction(idTag string) ([]byte, error)

	// StopTransaction builds the frame that ends transactionID. meterStop
	// is the session's final cumulative energy reading in Wh.
	StopTransaction(transactionID int, idTag string, meterStop int) ([]byte, error)

	// MeterValues builds a metering frame for the active transactionID.
	// Returns nil, nil if this version has nothing to send (the frame is
	// skipped rather than sent empty).
	MeterValues(transactionID int) ([]byte, error)

	// HandleCall dispatches an inbound CSMS-originated Call.
	HandleCall(stationID string, call *ocpp.Call) (interface{}, error)

	// HandleCallResult dispatches an inbound CallResult for originalAction.
	HandleCallResult(stationID string, result *ocpp.CallResult, originalAction string) (interface{}, error)

	// ExtractTransactionID reports the transaction id the CSMS assigned in
	// resp (the value HandleCallResult returned for a StartTransaction-family
	// response). 2.0.1/2.1 mint their own transaction id in StartTransaction
	// instead, and their adapters report that minted id once the CSMS has
	// answered.
	ExtractTransactionID(resp interface{}) (int, bool)

	// RemoteStart returns a channel that receives an idTag every time the
	// CSMS issues this version's remote-start action (RemoteStartTransaction
	// in 1.6, RequestStartTransaction in 2.0.1/2.1). Idle mode waits on it to
	// drive its single CSMS-triggered transaction.
	RemoteStart() <-chan string
}
