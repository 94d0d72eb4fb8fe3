package v201

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ruslanhut/ocpp-emu/internal/correlation"
	"github.com/ruslanhut/ocpp-emu/internal/ocpp"
)

// statusDown lowers a version-neutral ocpp.ConnectorStatus to 2.0.1's
// coarser ConnectorStatusType: the occupancy sub-states 1.6 distinguishes
// (Charging, SuspendedEVSE, SuspendedEV, Preparing, Finishing) all collapse
// to Occupied here, since 2.0.1 reports the finer state via the separate
// TransactionEvent.TransactionInfo.ChargingState instead of the connector
// status.
func statusDown(status ocpp.ConnectorStatus) ConnectorStatusType {
	switch status {
	case ocpp.ConnectorStatusAvailable:
		return ConnectorStatusAvailable
	case ocpp.ConnectorStatusReserved:
		return ConnectorStatusReserved
	case ocpp.ConnectorStatusUnavailable:
		return ConnectorStatusUnavailable
	case ocpp.ConnectorStatusFaulted:
		return ConnectorStatusFaulted
	default:
		return ConnectorStatusOccupied
	}
}

// appFirmwareVersion is what this simulator reports as ChargingStation's
// FirmwareVersion device model variable.
const appFirmwareVersion = "0.1.0"

// Adapter implements session.Adapter for OCPP 2.0.1. Unlike 1.6, the
// charging station itself mints the transaction id and a monotonic
// seqNo; the CSMS never assigns one back in the response.
type Adapter struct {
	StationID   string
	EvseID      int
	ConnectorID int
	VendorName  string
	Model       string

	Generator *Generator
	Handler   *Handler

	// DeviceModel and Certificates back the Provisioning and Security
	// functional blocks' CSMS-initiated queries (GetVariables/SetVariables,
	// Install/Delete/GetInstalledCertificateIds): a virtual charging
	// station still has to answer these the way a real one would, even
	// though this simulator never depends on their contents itself.
	DeviceModel  *DeviceModel
	Certificates *CertificateStore

	seqNo    int32
	energyWh int64

	// transactionSeq mints this station's own transaction ids: 2.0.1's
	// CSMS never assigns one back, so StartTransaction has to generate it
	// and ExtractTransactionID has to hand the same value back to the
	// engine once the CSMS confirms.
	transactionSeq int32
	transactionID  int32

	remoteStart chan string
}

// NewAdapter returns a 2.0.1 Adapter wired to table for correlation.
func NewAdapter(stationID string, evseID, connectorID int, table *correlation.Table) *Adapter {
	a := &Adapter{
		StationID:    stationID,
		EvseID:       evseID,
		ConnectorID:  connectorID,
		VendorName:   "ocpp-fleet-sim",
		Model:        "virtual-cp",
		Generator:    NewGenerator(table),
		Handler:      NewHandler(nil),
		DeviceModel:  NewDeviceModel(),
		Certificates: NewCertificateStore(stationID, "ocpp-fleet-sim", "NL"),
		remoteStart:  make(chan string, 1),
	}
	a.DeviceModel.UpdateStationInfo(a.VendorName, a.Model, stationID, appFirmwareVersion)
	a.Handler.OnRequestStartTransaction = func(stationID string, req *RequestStartTransactionRequest) (*RequestStartTransactionResponse, error) {
		select {
		case a.remoteStart <- req.IdToken.IdToken:
		default:
		}
		return &RequestStartTransactionResponse{Status: "Accepted"}, nil
	}
	a.Handler.OnGetVariables = a.handleGetVariables
	a.Handler.OnSetVariables = a.handleSetVariables
	a.Handler.OnInstallCertificate = a.handleInstallCertificate
	a.Handler.OnDeleteCertificate = a.handleDeleteCertificate
	a.Handler.OnGetInstalledCertificateIds = a.handleGetInstalledCertificateIds
	a.Handler.OnCertificateSigned = a.handleCertificateSigned
	return a
}

// handleGetVariables answers a GetVariables query against the device model,
// one GetVariableData entry at a time (OCPP never batches the lookup, only
// the wire message).
func (a *Adapter) handleGetVariables(_ string, req *GetVariablesRequest) (*GetVariablesResponse, error) {
	results := make([]GetVariableResult, 0, len(req.GetVariableData))
	for _, item := range req.GetVariableData {
		attrType := AttributeActual
		if item.AttributeType != nil {
			attrType = *item.AttributeType
		}
		value, status := a.DeviceModel.GetVariable(item.Component.Name, item.Component.Instance, item.Variable.Name, item.Variable.Instance, attrType)
		results = append(results, GetVariableResult{
			AttributeType:   item.AttributeType,
			AttributeStatus: status,
			AttributeValue:  value,
			Component:       item.Component,
			Variable:        item.Variable,
		})
	}
	return &GetVariablesResponse{GetVariableResult: results}, nil
}

// handleSetVariables applies a SetVariables request against the device
// model, reporting per-item acceptance the same way handleGetVariables
// reports per-item reads.
func (a *Adapter) handleSetVariables(_ string, req *SetVariablesRequest) (*SetVariablesResponse, error) {
	results := make([]SetVariableResult, 0, len(req.SetVariableData))
	for _, item := range req.SetVariableData {
		attrType := AttributeActual
		if item.AttributeType != nil {
			attrType = *item.AttributeType
		}
		status := a.DeviceModel.SetVariable(item.Component.Name, item.Component.Instance, item.Variable.Name, item.Variable.Instance, attrType, item.AttributeValue)
		results = append(results, SetVariableResult{
			AttributeType:   item.AttributeType,
			AttributeStatus: status,
			Component:       item.Component,
			Variable:        item.Variable,
		})
	}
	return &SetVariablesResponse{SetVariableResult: results}, nil
}

func (a *Adapter) handleInstallCertificate(_ string, req *InstallCertificateRequest) (*InstallCertificateResponse, error) {
	status, err := a.Certificates.InstallCertificate(CertificateUseType(req.CertificateType), req.Certificate)
	if err != nil {
		return &InstallCertificateResponse{
			Status:     string(status),
			StatusInfo: &StatusInfo{ReasonCode: "InvalidCertificate", AdditionalInfo: err.Error()},
		}, nil
	}
	return &InstallCertificateResponse{Status: string(status)}, nil
}

func (a *Adapter) handleDeleteCertificate(_ string, req *DeleteCertificateRequest) (*DeleteCertificateResponse, error) {
	status := a.Certificates.DeleteCertificate(req.CertificateHashData)
	return &DeleteCertificateResponse{Status: string(status)}, nil
}

func (a *Adapter) handleGetInstalledCertificateIds(_ string, req *GetInstalledCertificateIdsRequest) (*GetInstalledCertificateIdsResponse, error) {
	status, chain := a.Certificates.GetInstalledCertificateIds(req.CertificateType)
	return &GetInstalledCertificateIdsResponse{Status: string(status), CertificateHashDataChain: chain}, nil
}

// handleCertificateSigned installs the signed leaf (and any intermediates)
// against whichever CSR this station has pending for that certificate type.
// A CertificateSigned arriving with no matching pending CSR is rejected,
// the same way a real station would refuse a certificate it never asked for.
func (a *Adapter) handleCertificateSigned(_ string, req *CertificateSignedRequest) (*CertificateSignedResponse, error) {
	certType := CertificateUseType(req.CertificateType)
	if certType == "" {
		certType = CertificateUseChargingStationCertificate
	}
	status, err := a.Certificates.InstallSignedCertificate(certType, req.CertificateChain)
	if err != nil {
		return &CertificateSignedResponse{
			Status:     status,
			StatusInfo: &StatusInfo{ReasonCode: "InvalidCertificate", AdditionalInfo: err.Error()},
		}, nil
	}
	return &CertificateSignedResponse{Status: status}, nil
}

// RemoteStart implements session.Adapter.
func (a *Adapter) RemoteStart() <-chan string {
	return a.remoteStart
}

func (a *Adapter) nextSeqNo() int {
	return int(atomic.AddInt32(&a.seqNo, 1) - 1)
}

func (a *Adapter) BootNotification() ([]byte, error) {
	return a.Generator.BootNotification(&BootNotificationRequest{
		ChargingStation: ChargingStation{
			Model:      a.Model,
			VendorName: a.VendorName,
		},
		Reason: BootReasonPowerUp,
	})
}

func (a *Adapter) Heartbeat() ([]byte, error) {
	return a.Generator.Heartbeat()
}

func (a *Adapter) StatusNotification(status ocpp.ConnectorStatus) ([]byte, error) {
	return a.Generator.StatusNotification(&StatusNotificationRequest{
		Timestamp:       DateTime{Time: time.Now()},
		ConnectorStatus: statusDown(status),
		EvseId:          a.EvseID,
		ConnectorId:     a.ConnectorID,
	})
}

func (a *Adapter) Authorize(idTag string) ([]byte, error) {
	return a.Generator.Authorize(&AuthorizeRequest{
		IdToken: IdToken{IdToken: idTag, Type: IdTokenTypeISO14443},
	})
}

// StartTransaction mints this transaction's own id, resets the sequence
// counter, and sends the Started TransactionEvent. The station generates
// its own transaction id rather than waiting on the CSMS to assign one;
// ExtractTransactionID hands the minted value back to the engine once the
// CSMS confirms, so StopTransaction/MeterValues are called with the same
// id this event reports.
func (a *Adapter) StartTransaction(idTag string) ([]byte, error) {
	atomic.StoreInt32(&a.seqNo, 0)
	atomic.StoreInt64(&a.energyWh, 0)
	id := atomic.AddInt32(&a.transactionSeq, 1)
	atomic.StoreInt32(&a.transactionID, id)
	chargingState := ChargingStateEVConnected
	idToken := IdToken{IdToken: idTag, Type: IdTokenTypeISO14443}
	return a.Generator.TransactionEvent(&TransactionEventRequest{
		EventType:     TransactionEventStarted,
		Timestamp:     DateTime{Time: time.Now()},
		TriggerReason: TriggerReasonCablePluggedIn,
		SeqNo:         a.nextSeqNo(),
		TransactionInfo: Transaction{
			TransactionId: fmt.Sprintf("%d", id),
			ChargingState: &chargingState,
		},
		IdToken: &idToken,
		EVSE:    &EVSE{ID: a.EvseID, ConnectorId: &a.ConnectorID},
	})
}

func (a *Adapter) StopTransaction(transactionID int, idTag string, meterStop int) ([]byte, error) {
	atomic.StoreInt64(&a.energyWh, int64(meterStop))
	idToken := IdToken{IdToken: idTag, Type: IdTokenTypeISO14443}
	chargingState := ChargingStateIdle
	measurand := MeasurandEnergyActiveImportRegister
	return a.Generator.TransactionEvent(&TransactionEventRequest{
		EventType:     TransactionEventEnded,
		Timestamp:     DateTime{Time: time.Now()},
		TriggerReason: TriggerReasonEVDeparted,
		SeqNo:         a.nextSeqNo(),
		TransactionInfo: Transaction{
			TransactionId: fmt.Sprintf("%d", transactionID),
			ChargingState: &chargingState,
		},
		IdToken: &idToken,
		EVSE:    &EVSE{ID: a.EvseID, ConnectorId: &a.ConnectorID},
		MeterValue: []MeterValue{{
			Timestamp: DateTime{Time: time.Now()},
			SampledValue: []SampledValue{{
				Value:         float64(meterStop),
				Measurand:     &measurand,
				UnitOfMeasure: &UnitOfMeasure{Unit: "Wh"},
			}},
		}},
	})
}

// MeterValues reports metering via an Updated TransactionEvent, the
// idiomatic 2.0.1 way of carrying periodic readings for an open
// transaction (the standalone MeterValues action is for EVSE-level
// out-of-transaction sampling, which this simulator never needs).
// The cumulative reading is whatever StopTransaction's caller will
// eventually pass as meterStop; transactionID only labels which
// transaction this sample belongs to.
func (a *Adapter) MeterValues(transactionID int) ([]byte, error) {
	measurand := MeasurandEnergyActiveImportRegister
	reading := float64(atomic.AddInt64(&a.energyWh, 100))
	chargingState := ChargingStateCharging
	return a.Generator.TransactionEvent(&TransactionEventRequest{
		EventType:     TransactionEventUpdated,
		Timestamp:     DateTime{Time: time.Now()},
		TriggerReason: TriggerReasonMeterValuePeriodic,
		SeqNo:         a.nextSeqNo(),
		TransactionInfo: Transaction{
			TransactionId: fmt.Sprintf("%d", transactionID),
			ChargingState: &chargingState,
		},
		MeterValue: []MeterValue{{
			Timestamp: DateTime{Time: time.Now()},
			SampledValue: []SampledValue{{
				Value:         reading,
				Measurand:     &measurand,
				UnitOfMeasure: &UnitOfMeasure{Unit: "Wh"},
			}},
		}},
	})
}

func (a *Adapter) HandleCall(stationID string, call *ocpp.Call) (interface{}, error) {
	return a.Handler.HandleCall(stationID, call)
}

func (a *Adapter) HandleCallResult(stationID string, result *ocpp.CallResult, originalAction string) (interface{}, error) {
	return a.Handler.HandleCallResult(stationID, result, Action(originalAction))
}

// ExtractTransactionID ignores resp: 2.0.1 charging stations mint their
// own transaction id (in StartTransaction) rather than waiting for the
// CSMS to assign one, so this just hands that minted value back to the
// engine once the CSMS has confirmed the Started event.
func (a *Adapter) ExtractTransactionID(resp interface{}) (int, bool) {
	return int(atomic.LoadInt32(&a.transactionID)), true
}
