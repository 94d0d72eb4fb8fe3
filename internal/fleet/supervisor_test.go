package fleet

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

	"github.com/ruslanhut/ocpp-emu/internal/config"
)

// acceptAllCSMS answers every Call with a bare Accepted-flavored
// CallResult, tracking how many distinct charge point ids connected.
type acceptAllCSMS struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newAcceptAllServer(t *testing.T, csms *acceptAllCSMS) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{Subprotocols: []string{"ocpp1.6"}}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		csms.mu.Lock()
		if csms.seen == nil {
			csms.seen = map[string]bool{}
		}
		csms.seen[strings.TrimPrefix(r.URL.Path, "/")] = true
		csms.mu.Unlock()

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

			var payload interface{}
			switch action {
			case "StartTransaction":
				payload = map[string]interface{}{
					"idTagInfo":     map[string]string{"status": "Accepted"},
					"transactionId": 1,
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

func TestSupervisor_RunsExplicitAndImplicitChargePoints(t *testing.T) {
	csms := &acceptAllCSMS{}
	srv := newAcceptAllServer(t, csms)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	cfg := &config.FleetConfig{
		General: config.GeneralConfig{
			ServerURL:   url,
			OcppVersion: config.OcppVersion16,
		},
		ChargePoints: []config.ChargePointConfig{
			{ID: "CP-EXPLICIT", HeartbeatInterval: 1, StartTxAfter: 1, StopTxAfter: 1},
		},
		ImplicitChargePoints: &config.ImplicitChargePointConfig{
			Count:                  2,
			Prefix:                 "CP-GEN",
			BootDelayRange:         config.Range{0, 0},
			HeartbeatIntervalRange: config.Range{1, 1},
			StatusIntervalRange:    config.Range{1, 1},
			StartTxAfterRange:      config.Range{1, 1},
			StopTxAfterRange:       config.Range{1, 1},
		},
	}

	sup := New(cfg, config.ModeDynamic, nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	if err := sup.Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	csms.mu.Lock()
	defer csms.mu.Unlock()
	wantIDs := []string{"CP-EXPLICIT", "CP-GEN000000", "CP-GEN000001"}
	for _, id := range wantIDs {
		if !csms.seen[id] {
			t.Errorf("expected charge point %q to have connected, seen=%v", id, csms.seen)
		}
	}
}

func TestGenerateImplicit_ProducesZeroPaddedIDs(t *testing.T) {
	cps := generateImplicit(&config.ImplicitChargePointConfig{
		Count:                  3,
		Prefix:                 "SIM",
		BootDelayRange:         config.Range{10, 20},
		HeartbeatIntervalRange: config.Range{30, 30},
		StatusIntervalRange:    config.Range{30, 30},
		StartTxAfterRange:      config.Range{5, 5},
		StopTxAfterRange:       config.Range{5, 5},
	})
	if len(cps) != 3 {
		t.Fatalf("expected 3 charge points, got %d", len(cps))
	}
	if cps[0].ID != "SIM000000" || cps[2].ID != "SIM000002" {
		t.Errorf("unexpected ids: %q, %q", cps[0].ID, cps[2].ID)
	}
	for _, cp := range cps {
		if cp.BootDelayMs < 10 || cp.BootDelayMs > 20 {
			t.Errorf("boot delay %d out of range [10,20]", cp.BootDelayMs)
		}
		if cp.HeartbeatInterval != 30 {
			t.Errorf("expected fixed heartbeat 30, got %d", cp.HeartbeatInterval)
		}
	}
}
