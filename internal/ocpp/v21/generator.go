package v21

import (
	"fmt"

	"github.com/ruslanhut/ocpp-emu/internal/correlation"
	"github.com/ruslanhut/ocpp-emu/internal/ocpp"
	"github.com/ruslanhut/ocpp-emu/internal/ocpp/v201"
)

// Generator builds outbound 2.1 Call frames, embedding a 2.0.1 Generator
// for the actions 2.1 inherits unchanged (boot, heartbeat, status,
// authorize, transaction lifecycle, metering) and adding the 2.1-specific
// notifications. Restructured from handler.go's former SendX methods, the
// same way v16/generator.go and v201/generator.go were split out of their
// handlers.
type Generator struct {
	*v201.Generator
	table *correlation.Table
}

// NewGenerator returns a Generator that records pending Calls in table.
func NewGenerator(table *correlation.Table) *Generator {
	return &Generator{Generator: v201.NewGenerator(table), table: table}
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

// NotifyCustomerInformation builds a NotifyCustomerInformation Call.
func (g *Generator) NotifyCustomerInformation(req *NotifyCustomerInformationRequest) ([]byte, error) {
	return g.build(ActionNotifyCustomerInformation, req)
}

// FirmwareStatusNotification builds a FirmwareStatusNotification Call.
func (g *Generator) FirmwareStatusNotification(req *FirmwareStatusNotificationRequest) ([]byte, error) {
	return g.build(ActionFirmwareStatusNotification, req)
}

// LogStatusNotification builds a LogStatusNotification Call.
func (g *Generator) LogStatusNotification(req *LogStatusNotificationRequest) ([]byte, error) {
	return g.build(ActionLogStatusNotification, req)
}
