package v21

import (
	"github.com/ruslanhut/ocpp-emu/internal/correlation"
	"github.com/ruslanhut/ocpp-emu/internal/ocpp"
	"github.com/ruslanhut/ocpp-emu/internal/ocpp/v201"
)

// Adapter implements session.Adapter for OCPP 2.1 by embedding a 2.0.1
// Adapter: 2.1 inherits the whole provisioning/transaction/metering
// catalog unchanged and only adds reservation and charging-profile
// extensions, none of which the session engine originates itself.
type Adapter struct {
	*v201.Adapter

	Handler *Handler
}

// NewAdapter returns a 2.1 Adapter wired to table for correlation. The 2.1
// Handler reuses the embedded 2.0.1 Adapter's own Handler instance (rather
// than constructing a fresh one) so the RequestStartTransaction callback
// wired there — and therefore RemoteStart()'s channel — fires regardless
// of which Handler dispatch actually lands the Call.
func NewAdapter(stationID string, evseID, connectorID int, table *correlation.Table) *Adapter {
	base := v201.NewAdapter(stationID, evseID, connectorID, table)
	handler := NewHandler(nil)
	handler.Handler = base.Handler
	return &Adapter{
		Adapter: base,
		Handler: handler,
	}
}

// HandleCall and HandleCallResult dispatch through the 2.1 Handler (which
// itself falls back to the embedded 2.0.1 Handler for inherited actions),
// overriding the embedded Adapter's own dispatch to v201.Handler.
func (a *Adapter) HandleCall(stationID string, call *ocpp.Call) (interface{}, error) {
	return a.Handler.HandleCall(stationID, call)
}

func (a *Adapter) HandleCallResult(stationID string, result *ocpp.CallResult, originalAction string) (interface{}, error) {
	return a.Handler.HandleCallResult(stationID, result, v201.Action(originalAction))
}

// ExtractTransactionID reports the id the embedded 2.0.1 adapter minted in
// StartTransaction, exactly as that adapter does.
func (a *Adapter) ExtractTransactionID(resp interface{}) (int, bool) {
	return a.Adapter.ExtractTransactionID(resp)
}
