package v201

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"encoding/pem"
	"math/big"
	"testing"
	"time"

	"github.com/ruslanhut/ocpp-emu/internal/correlation"
	"github.com/ruslanhut/ocpp-emu/internal/ocpp"
)

func callWith(t *testing.T, action Action, req interface{}) *ocpp.Call {
	t.Helper()
	payload, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	return &ocpp.Call{
		MessageTypeID: ocpp.MessageTypeCall,
		UniqueID:      "test-1",
		Action:        string(action),
		Payload:       payload,
	}
}

func TestAdapter_GetVariablesReadsDeviceModel(t *testing.T) {
	a := NewAdapter("CP001", 1, 1, correlation.New())

	req := GetVariablesRequest{GetVariableData: []GetVariableData{
		{Component: Component{Name: "ChargingStation"}, Variable: Variable{Name: "VendorName"}},
		{Component: Component{Name: "NoSuchComponent"}, Variable: Variable{Name: "X"}},
	}}

	resp, err := a.HandleCall("CP001", callWith(t, ActionGetVariables, req))
	if err != nil {
		t.Fatalf("HandleCall failed: %v", err)
	}
	getResp, ok := resp.(*GetVariablesResponse)
	if !ok {
		t.Fatalf("unexpected response type %#v", resp)
	}
	if len(getResp.GetVariableResult) != 2 {
		t.Fatalf("expected 2 results, got %d", len(getResp.GetVariableResult))
	}
	if getResp.GetVariableResult[0].AttributeStatus != GetVariableStatusAccepted {
		t.Errorf("expected known variable to be accepted, got %s", getResp.GetVariableResult[0].AttributeStatus)
	}
	if getResp.GetVariableResult[0].AttributeValue != "ocpp-fleet-sim" {
		t.Errorf("expected vendor name ocpp-fleet-sim, got %q", getResp.GetVariableResult[0].AttributeValue)
	}
	if getResp.GetVariableResult[1].AttributeStatus != GetVariableStatusUnknownComponent {
		t.Errorf("expected unknown component status, got %s", getResp.GetVariableResult[1].AttributeStatus)
	}
}

func TestAdapter_SetVariablesWritesDeviceModel(t *testing.T) {
	a := NewAdapter("CP001", 1, 1, correlation.New())

	setReq := SetVariablesRequest{SetVariableData: []SetVariableData{
		{Component: Component{Name: "SecurityCtrlr"}, Variable: Variable{Name: "SecurityProfile"}, AttributeValue: "2"},
	}}
	resp, err := a.HandleCall("CP001", callWith(t, ActionSetVariables, setReq))
	if err != nil {
		t.Fatalf("HandleCall failed: %v", err)
	}
	setResp, ok := resp.(*SetVariablesResponse)
	if !ok {
		t.Fatalf("unexpected response type %#v", resp)
	}
	if setResp.SetVariableResult[0].AttributeStatus != SetVariableStatusAccepted {
		t.Fatalf("expected Accepted, got %s", setResp.SetVariableResult[0].AttributeStatus)
	}

	value, status := a.DeviceModel.GetVariable("SecurityCtrlr", "", "SecurityProfile", "", AttributeActual)
	if status != GetVariableStatusAccepted || value != "2" {
		t.Errorf("expected SecurityProfile=2 after SetVariables, got value=%q status=%s", value, status)
	}
}

func TestAdapter_InstallAndDeleteCertificate(t *testing.T) {
	a := NewAdapter("CP001", 1, 1, correlation.New())

	certPEM := selfSignedTestCertificate(t)

	installReq := InstallCertificateRequest{CertificateType: string(CertificateUseManufacturerRootCertificate), Certificate: certPEM}
	resp, err := a.HandleCall("CP001", callWith(t, ActionInstallCertificate, installReq))
	if err != nil {
		t.Fatalf("HandleCall failed: %v", err)
	}
	installResp := resp.(*InstallCertificateResponse)
	if installResp.Status != string(InstallCertificateStatusAccepted) {
		t.Fatalf("expected Accepted, got %s (%v)", installResp.Status, installResp.StatusInfo)
	}

	idsResp, err := a.HandleCall("CP001", callWith(t, ActionGetInstalledCertificateIds, GetInstalledCertificateIdsRequest{}))
	if err != nil {
		t.Fatalf("HandleCall failed: %v", err)
	}
	ids := idsResp.(*GetInstalledCertificateIdsResponse)
	if ids.Status != string(GetInstalledCertificateStatusAccepted) || len(ids.CertificateHashDataChain) != 1 {
		t.Fatalf("expected one installed certificate, got %#v", ids)
	}

	deleteReq := DeleteCertificateRequest{CertificateHashData: ids.CertificateHashDataChain[0].CertificateHashData}
	delResp, err := a.HandleCall("CP001", callWith(t, ActionDeleteCertificate, deleteReq))
	if err != nil {
		t.Fatalf("HandleCall failed: %v", err)
	}
	if delResp.(*DeleteCertificateResponse).Status != string(DeleteCertificateStatusAccepted) {
		t.Fatalf("expected deletion to succeed, got %#v", delResp)
	}
	if a.Certificates.GetCertificateCount() != 0 {
		t.Errorf("expected store to be empty after deletion, count=%d", a.Certificates.GetCertificateCount())
	}
}

// selfSignedTestCertificate builds a throwaway self-signed CA certificate,
// valid for InstallCertificate's CA-only check on root certificate types.
func selfSignedTestCertificate(t *testing.T) string {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	template := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "test-root"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(24 * time.Hour),
		IsCA:                  true,
		BasicConstraintsValid: true,
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature,
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("create certificate: %v", err)
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}))
}
