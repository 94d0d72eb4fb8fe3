package v16

import (
	"fmt"
	"time"

	"github.com/ruslanhut/ocpp-emu/internal/correlation"
	"github.com/ruslanhut/ocpp-emu/internal/ocpp"
)

// Generator builds outbound 1.6 Call frames and records each one in a
// correlation table so the matching CallResult can be routed back to its
// originating action. Restructured from the teacher's handler.go SendX
// methods, which invoked a bare SendMessage callback directly; here a Call
// is only ever built and registered, the caller writes the returned bytes
// to the transport itself (§4.5).
type Generator struct {
	table *correlation.Table
}

// NewGenerator returns a Generator that records pending Calls in table.
func NewGenerator(table *correlation.Table) *Generator {
	return &Generator{table: table}
}

func (g *Generator) build(action Action, payload interface{}) ([]byte, error) {
	call, err := ocpp.NewCall(string(action), payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s call: %w", action, err)
	}
	data, err := call.ToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", action, err)
	}
	g.table.Insert(call.UniqueID, string(action))
	return data, nil
}

// BootNotification builds a BootNotification Call.
func (g *Generator) BootNotification(req *BootNotificationRequest) ([]byte, error) {
	return g.build(ActionBootNotification, req)
}

// Heartbeat builds a Heartbeat Call.
func (g *Generator) Heartbeat() ([]byte, error) {
	return g.build(ActionHeartbeat, HeartbeatRequest{})
}

// StatusNotification builds a StatusNotification Call, stamping the
// current time if the caller left Timestamp unset.
func (g *Generator) StatusNotification(req *StatusNotificationRequest) ([]byte, error) {
	if req.Timestamp == nil {
		now := DateTime{Time: time.Now()}
		req.Timestamp = &now
	}
	return g.build(ActionStatusNotification, req)
}

// Authorize builds an Authorize Call.
func (g *Generator) Authorize(req *AuthorizeRequest) ([]byte, error) {
	return g.build(ActionAuthorize, req)
}

// StartTransaction builds a StartTransaction Call.
func (g *Generator) StartTransaction(req *StartTransactionRequest) ([]byte, error) {
	return g.build(ActionStartTransaction, req)
}

// StopTransaction builds a StopTransaction Call. If the session never
// received a transaction id from the CSMS (the StartTransaction CallResult
// timed out), the caller should pass transactionID 1, the degraded
// fallback value the session engine falls back to after a 5s wait.
func (g *Generator) StopTransaction(req *StopTransactionRequest) ([]byte, error) {
	return g.build(ActionStopTransaction, req)
}

// MeterValues builds a MeterValues Call. The caller must never invoke this
// before a transaction id is known; the session only sends MeterValues with
// req.TransactionId set, never a stand-alone frame outside a transaction.
func (g *Generator) MeterValues(req *MeterValuesRequest) ([]byte, error) {
	return g.build(ActionMeterValues, req)
}

// DataTransfer builds a DataTransfer Call.
func (g *Generator) DataTransfer(req *DataTransferRequest) ([]byte, error) {
	return g.build(ActionDataTransfer, req)
}
