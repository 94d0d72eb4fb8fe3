package v16

import (
	"log/slog"
	"time"

	"github.com/ruslanhut/ocpp-emu/internal/correlation"
	"github.com/ruslanhut/ocpp-emu/internal/ocpp"
)

// statusDown lowers a version-neutral ocpp.ConnectorStatus to its 1.6
// native ChargePointStatus, a one-to-one mapping in this version.
func statusDown(status ocpp.ConnectorStatus) ChargePointStatus {
	switch status {
	case ocpp.ConnectorStatusAvailable:
		return ChargePointStatusAvailable
	case ocpp.ConnectorStatusPreparing:
		return ChargePointStatusPreparing
	case ocpp.ConnectorStatusCharging:
		return ChargePointStatusCharging
	case ocpp.ConnectorStatusSuspendedEVSE:
		return ChargePointStatusSuspendedEVSE
	case ocpp.ConnectorStatusSuspendedEV:
		return ChargePointStatusSuspendedEV
	case ocpp.ConnectorStatusFinishing:
		return ChargePointStatusFinishing
	case ocpp.ConnectorStatusReserved:
		return ChargePointStatusReserved
	case ocpp.ConnectorStatusUnavailable:
		return ChargePointStatusUnavailable
	case ocpp.ConnectorStatusFaulted:
		return ChargePointStatusFaulted
	default:
		return ChargePointStatusAvailable
	}
}

// Adapter implements session.Adapter for OCPP 1.6.
type Adapter struct {
	StationID         string
	ConnectorID       int
	ChargePointVendor string
	ChargePointModel  string

	Generator *Generator
	Handler   *Handler
	Meter     *MeterGenerator

	// debugMode gates the EnergyStats summary StopTransaction logs once a
	// transaction ends; off by default so a normal load-test run's log
	// stays free of per-transaction statistics nobody asked for.
	debugMode bool
	logger    *slog.Logger

	remoteStart chan string
}

// NewAdapter returns a 1.6 Adapter wired to table for correlation and
// meterStyle for mock sample generation. debugMode, when true, logs an
// EnergyStats summary of the session's meter readings at the end of every
// transaction; logger may be nil, in which case slog.Default() is used.
func NewAdapter(stationID string, connectorID int, table *correlation.Table, meterStyle MeterReadingStyle, debugMode bool, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	a := &Adapter{
		StationID:         stationID,
		ConnectorID:       connectorID,
		ChargePointVendor: "ocpp-fleet-sim",
		ChargePointModel:  "virtual-cp",
		Generator:         NewGenerator(table),
		Handler:           NewHandler(nil),
		Meter:             NewMeterGenerator(meterStyle),
		debugMode:         debugMode,
		logger:            logger,
		remoteStart:       make(chan string, 1),
	}
	a.Handler.OnRemoteStartTransaction = func(stationID string, req *RemoteStartTransactionRequest) (*RemoteStartTransactionResponse, error) {
		select {
		case a.remoteStart <- req.IdTag:
		default:
		}
		return &RemoteStartTransactionResponse{Status: "Accepted"}, nil
	}
	return a
}

// RemoteStart implements session.Adapter.
func (a *Adapter) RemoteStart() <-chan string {
	return a.remoteStart
}

func (a *Adapter) BootNotification() ([]byte, error) {
	return a.Generator.BootNotification(&BootNotificationRequest{
		ChargePointVendor: a.ChargePointVendor,
		ChargePointModel:  a.ChargePointModel,
	})
}

func (a *Adapter) Heartbeat() ([]byte, error) {
	return a.Generator.Heartbeat()
}

func (a *Adapter) StatusNotification(status ocpp.ConnectorStatus) ([]byte, error) {
	return a.Generator.StatusNotification(&StatusNotificationRequest{
		ConnectorId: a.ConnectorID,
		ErrorCode:   ChargePointErrorNoError,
		Status:      statusDown(status),
	})
}

func (a *Adapter) Authorize(idTag string) ([]byte, error) {
	return a.Generator.Authorize(&AuthorizeRequest{IdTag: idTag})
}

func (a *Adapter) StartTransaction(idTag string) ([]byte, error) {
	return a.Generator.StartTransaction(&StartTransactionRequest{
		ConnectorId: a.ConnectorID,
		IdTag:       idTag,
		MeterStart:  0,
		Timestamp:   DateTime{Time: time.Now()},
	})
}

func (a *Adapter) StopTransaction(transactionID int, idTag string, meterStop int) ([]byte, error) {
	if a.debugMode {
		if mean, stddev, err := a.Meter.EnergyStats(); err != nil {
			a.logger.Debug("energy stats unavailable", "transaction_id", transactionID, "error", err)
		} else {
			a.logger.Debug("energy stats for transaction", "transaction_id", transactionID, "mean_wh", mean, "stddev_wh", stddev)
		}
	}
	return a.Generator.StopTransaction(&StopTransactionRequest{
		IdTag:         idTag,
		MeterStop:     meterStop,
		Timestamp:     DateTime{Time: time.Now()},
		TransactionId: transactionID,
		Reason:        ReasonLocal,
	})
}

func (a *Adapter) MeterValues(transactionID int) ([]byte, error) {
	id := transactionID
	energy := 0.0
	if n := len(a.Meter.energySamples); n > 0 {
		energy = a.Meter.energySamples[n-1] + randRange(1.0, 100.0)
	}
	sample := a.Meter.Sample(energy)
	return a.Generator.MeterValues(&MeterValuesRequest{
		ConnectorId:   a.ConnectorID,
		TransactionId: &id,
		MeterValue:    []MeterValue{sample},
	})
}

func (a *Adapter) HandleCall(stationID string, call *ocpp.Call) (interface{}, error) {
	return a.Handler.HandleCall(stationID, call)
}

func (a *Adapter) HandleCallResult(stationID string, result *ocpp.CallResult, originalAction string) (interface{}, error) {
	return a.Handler.HandleCallResult(stationID, result, Action(originalAction))
}

// ExtractTransactionID reads the transaction id the CSMS assigned in a
// StartTransaction.conf, the only 1.6 response that carries one.
func (a *Adapter) ExtractTransactionID(resp interface{}) (int, bool) {
	r, ok := resp.(*StartTransactionResponse)
	if !ok {
		return 0, false
	}
	return r.TransactionId, true
}
