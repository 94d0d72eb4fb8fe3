package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ruslanhut/ocpp-emu/internal/correlation"
	"github.com/ruslanhut/ocpp-emu/internal/ocpp/v16"
	"github.com/ruslanhut/ocpp-emu/internal/transport"
)

// fakeCSMS is a minimal mock CSMS: for every inbound Call it replies with an
// Accepted-flavored CallResult (or, for StartTransaction, one carrying a
// transaction id) and records the action in arrival order.
type fakeCSMS struct {
	mu      sync.Mutex
	actions []string
}

func (f *fakeCSMS) record(action string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, action)
}

func (f *fakeCSMS) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.actions))
	copy(out, f.actions)
	return out
}

func newFakeCSMSServer(t *testing.T, csms *fakeCSMS) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{Subprotocols: []string{"ocpp1.6"}}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
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
		}
	}))
}

func TestEngine_DynamicLifecycleSendsExpectedSequence(t *testing.T) {
	csms := &fakeCSMS{}
	srv := newFakeCSMSServer(t, csms)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client := transport.New(transport.Config{URL: url, StationID: "CP001", Subprotocol: "ocpp1.6"}, nil)

	table := correlation.New()
	adapter := v16.NewAdapter("CP001", 1, table, v16.MeterReadingDeterministic, false, nil)

	cfg := EngineConfig{
		StationID:          "CP001",
		BootDelay:          0,
		HeartbeatInterval:  50 * time.Millisecond,
		StartTxAfter:       20 * time.Millisecond,
		StopTxAfter:        80 * time.Millisecond,
		IDTags:             []string{"TAG1"},
		StartTxConfirmWait: 100 * time.Millisecond,
	}
	engine := NewEngine(cfg, adapter, client, table, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	err := engine.Run(ctx)
	if err != nil && err != context.DeadlineExceeded {
		t.Fatalf("Run returned unexpected error: %v", err)
	}

	actions := csms.recorded()
	mustContainInOrder(t, actions, []string{
		"BootNotification", "StartTransaction", "StatusNotification", "StatusNotification", "StopTransaction",
	})
}

func mustContainInOrder(t *testing.T, actions []string, want []string) {
	t.Helper()
	i := 0
	for _, a := range actions {
		if i < len(want) && a == want[i] {
			i++
		}
	}
	if i != len(want) {
		t.Fatalf("expected actions %v to appear in order within %v, only matched %d", want, actions, i)
	}
}

func TestEngineConfig_IdTagFallsBackWhenEmpty(t *testing.T) {
	cfg := EngineConfig{}
	if tag := cfg.idTag(); tag != "DEFAULT" {
		t.Errorf("expected DEFAULT fallback id tag, got %q", tag)
	}
}
