package v201

import (
	"fmt"
	"time"

	"github.com/ruslanhut/ocpp-emu/internal/correlation"
	"github.com/ruslanhut/ocpp-emu/internal/ocpp"
)

// Generator builds outbound 2.0.1 Call frames and records each in a
// correlation table, the same restructuring applied to the 1.6 catalog in
// v16/generator.go. Only the subset of 2.0.1 actions the session engine
// drives directly is covered here — boot, heartbeat, status, authorize,
// transaction lifecycle (unified under TransactionEvent in this version)
// and metering. The richer device-model and certificate-management
// profiles stay inbound-only (§4.2): a CSMS can still issue them and get a
// handled response, the simulator just never originates them itself.
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
	if req.Timestamp.Time.IsZero() {
		req.Timestamp = DateTime{Time: time.Now()}
	}
	return g.build(ActionStatusNotification, req)
}

// Authorize builds an Authorize Call.
func (g *Generator) Authorize(req *AuthorizeRequest) ([]byte, error) {
	return g.build(ActionAuthorize, req)
}

// TransactionEvent builds a TransactionEvent Call. In 2.0.1 Started,
// Updated and Ended events all share this action name; the caller
// distinguishes them via req.EventType.
func (g *Generator) TransactionEvent(req *TransactionEventRequest) ([]byte, error) {
	return g.build(ActionTransactionEvent, req)
}

// MeterValues builds a MeterValues Call.
func (g *Generator) MeterValues(req *MeterValuesRequest) ([]byte, error) {
	return g.build(ActionMeterValues, req)
}
