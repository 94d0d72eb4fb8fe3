package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ruslanhut/ocpp-emu/internal/correlation"
	"github.com/ruslanhut/ocpp-emu/internal/ocpp/v16"
	"github.com/ruslanhut/ocpp-emu/internal/transport"
)

// newRemoteStartCSMSServer behaves like newFakeCSMSServer but, once it has
// seen a BootNotification, sends a RemoteStartTransaction Call back down the
// same connection so the engine's Idle-mode RemoteStart() path fires.
func newRemoteStartCSMSServer(t *testing.T, csms *fakeCSMS) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{Subprotocols: []string{"ocpp1.6"}}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		remoteStartSent := false

		for {
			conn.SetReadDeadline(time.Now().Add(2 * time.Second))
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var arr []json.RawMessage
			if err := json.Unmarshal(data, &arr); err != nil || len(arr) < 3 {
				continue
			}
			var msgID, action string
			json.Unmarshal(arr[1], &msgID)
			json.Unmarshal(arr[2], &action)
			csms.record(action)

			var payload interface{}
			switch action {
			case "StartTransaction":
				payload = map[string]interface{}{
					"idTagInfo":     map[string]string{"status": "Accepted"},
					"transactionId": 777,
				}
			case "BootNotification":
				payload = map[string]interface{}{
					"currentTime": time.Now().Format(time.RFC3339),
					"interval":    60,
					"status":      "Accepted",
				}
			default:
				payload = map[string]interface{}{}
			}
			reply, _ := json.Marshal([]interface{}{3, msgID, payload})
			conn.WriteMessage(websocket.TextMessage, reply)

			if action == "BootNotification" && !remoteStartSent {
				remoteStartSent = true
				call, _ := json.Marshal([]interface{}{2, "remote-start-1", "RemoteStartTransaction", map[string]interface{}{
					"connectorId": 1,
					"idTag":       "REMOTE1",
				}})
				conn.WriteMessage(websocket.TextMessage, call)
			}
		}
	}))
}

func TestIdleEngine_RemoteStartDrivesFullTransaction(t *testing.T) {
	csms := &fakeCSMS{}
	srv := newRemoteStartCSMSServer(t, csms)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client := transport.New(transport.Config{URL: url, StationID: "CP002", Subprotocol: "ocpp1.6"}, nil)

	table := correlation.New()
	adapter := v16.NewAdapter("CP002", 1, table, v16.MeterReadingDeterministic, false, nil)

	cfg := EngineConfig{
		StationID:          "CP002",
		BootDelay:          0,
		HeartbeatInterval:  2 * time.Second,
		StartTxConfirmWait: 50 * time.Millisecond,
	}
	sim := SimulationConfig{HardwareDelay: 5 * time.Millisecond}
	engine := NewIdleEngine(cfg, sim, adapter, client, table, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := engine.Run(ctx)
	if err != nil && err != context.DeadlineExceeded {
		t.Fatalf("Run returned unexpected error: %v", err)
	}

	actions := csms.recorded()
	want := []string{"BootNotification", "StartTransaction"}
	for i := 0; i < meterSampleCount; i++ {
		want = append(want, "MeterValues")
	}
	want = append(want, "StopTransaction")
	mustContainInOrder(t, actions, want)
}

func TestSimulationConfig_HardwareDelayDefaultsWhenUnset(t *testing.T) {
	var sim SimulationConfig
	if got := sim.hardwareDelay(); got != 3*time.Second {
		t.Errorf("expected default hardware delay of 3s, got %v", got)
	}
}
