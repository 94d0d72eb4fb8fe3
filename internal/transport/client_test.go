package transport

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func echoServer(t *testing.T, subprotocols []string) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{Subprotocols: subprotocols}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			mt, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if err := conn.WriteMessage(mt, data); err != nil {
				return
			}
		}
	}))
}

func TestClient_ConnectSendReceive(t *testing.T) {
	srv := echoServer(t, []string{"ocpp1.6"})
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client := New(Config{URL: url, StationID: "CP001", Subprotocol: "ocpp1.6"}, nil)

	if err := client.Connect(); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer client.Close()

	if err := client.Send([]byte(`[2,"msg-1","Heartbeat",{}]`)); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	select {
	case in := <-client.Inbound:
		if in.Err != nil {
			t.Fatalf("unexpected inbound error: %v", in.Err)
		}
		if string(in.Data) != `[2,"msg-1","Heartbeat",{}]` {
			t.Errorf("unexpected echoed payload: %s", in.Data)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for echoed message")
	}
}

func TestClient_CloseEndsInbound(t *testing.T) {
	srv := echoServer(t, []string{"ocpp1.6"})
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client := New(Config{URL: url, StationID: "CP002", Subprotocol: "ocpp1.6"}, nil)

	if err := client.Connect(); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	client.Close()

	select {
	case _, ok := <-client.Inbound:
		if ok {
			t.Error("expected Inbound to close without a terminal error after Close")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Inbound to close")
	}
}
