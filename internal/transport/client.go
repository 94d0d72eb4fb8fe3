// Package transport is a thin WebSocket client wrapper the session engine
// dials out to a CSMS with. It is adapted from the teacher's
// internal/connection/websocket.go: the dial/read-pump/write-pump/ping-pump
// structure is kept, but OnMessage callback delivery is replaced with an
// Inbound channel so a cooperative select loop (internal/session) can treat
// it as one more event source, and the reconnect-with-backoff logic is
// removed entirely — §7 of the fleet simulator calls for no automatic
// reconnect; a transport error always ends the session.
package transport

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Config describes how to dial a single charge point session's CSMS
// connection.
type Config struct {
	URL            string
	StationID      string
	Subprotocol    string // the OCPP version wire string, e.g. "ocpp1.6"
	AuthHeader     string // raw Authorization header value, if any
	ConnectTimeout time.Duration
	WriteTimeout   time.Duration
	ReadTimeout    time.Duration
	PingInterval   time.Duration
	TLSEnabled     bool
	TLSCACert      string
	TLSClientCert  string
	TLSClientKey   string
	TLSSkipVerify  bool
}

// Inbound is one message or terminal error delivered from the read pump.
// Err is non-nil at most once, as the last value sent before the channel
// closes: a read error or a clean server-initiated close both end the
// session, so the consumer does not need to distinguish them further.
// After Close the channel closes without a terminal error.
type Inbound struct {
	Data []byte
	Err  error
}

// Client is a single WebSocket connection to a CSMS.
type Client struct {
	config Config
	logger *slog.Logger

	conn *websocket.Conn

	Inbound chan Inbound

	ctx       context.Context
	cancel    context.CancelFunc
	sendQueue chan []byte
	closeOnce sync.Once

	statsMu      sync.Mutex
	messagesSent int64
	messagesRecv int64
}

// New returns a Client for config. Call Connect to dial.
func New(config Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if config.ConnectTimeout == 0 {
		config.ConnectTimeout = 30 * time.Second
	}
	if config.WriteTimeout == 0 {
		config.WriteTimeout = 10 * time.Second
	}
	if config.ReadTimeout == 0 {
		config.ReadTimeout = 60 * time.Second
	}
	if config.PingInterval == 0 {
		config.PingInterval = 30 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		config:    config,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
		sendQueue: make(chan []byte, 32),
		Inbound:   make(chan Inbound, 32),
	}
}

// Connect dials the CSMS and starts the read/write/ping pumps. The
// subprotocol is sent as the WebSocket handshake's Sec-WebSocket-Protocol
// header, selecting the OCPP version per §4.10; a mismatch or rejection by
// the server surfaces here as a dial error and the caller's session fails
// without affecting any other charge point (S6).
func (c *Client) Connect() error {
	headers := http.Header{}
	if c.config.AuthHeader != "" {
		headers.Set("Authorization", c.config.AuthHeader)
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: c.config.ConnectTimeout,
		Subprotocols:     []string{c.config.Subprotocol},
	}

	if c.config.TLSEnabled {
		tlsConfig, err := c.tlsConfig()
		if err != nil {
			return fmt.Errorf("failed to build TLS config: %w", err)
		}
		dialer.TLSClientConfig = tlsConfig
	}

	conn, resp, err := dialer.Dial(c.config.URL, headers)
	if err != nil {
		return fmt.Errorf("failed to dial %s: %w", c.config.URL, err)
	}
	defer resp.Body.Close()

	c.conn = conn
	c.logger.Info("connected to CSMS",
		slog.String("station_id", c.config.StationID),
		slog.String("subprotocol", conn.Subprotocol()),
	)

	go c.readPump()
	go c.writePump()

	return nil
}

// Send queues data for transmission. It never blocks past ctx cancellation.
func (c *Client) Send(data []byte) error {
	select {
	case c.sendQueue <- data:
		return nil
	case <-c.ctx.Done():
		return fmt.Errorf("transport closed")
	}
}

// Close ends the session's connection without attempting any reconnect.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		if c.conn != nil {
			_ = c.conn.WriteMessage(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			)
			err = c.conn.Close()
		}
	})
	return err
}

func (c *Client) readPump() {
	defer close(c.Inbound)

	c.conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))
		return nil
	})

	for {
		messageType, message, err := c.conn.ReadMessage()
		if err != nil {
			if c.ctx.Err() != nil {
				return
			}
			select {
			case c.Inbound <- Inbound{Err: err}:
			case <-c.ctx.Done():
			}
			return
		}

		if messageType != websocket.TextMessage {
			continue
		}

		c.statsMu.Lock()
		c.messagesRecv++
		c.statsMu.Unlock()

		select {
		case c.Inbound <- Inbound{Data: message}:
		case <-c.ctx.Done():
			return
		}

		c.conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(c.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return

		case data, ok := <-c.sendQueue:
			if !ok {
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Warn("write failed, ending session transport",
					slog.String("station_id", c.config.StationID), slog.Any("error", err))
				return
			}
			c.statsMu.Lock()
			c.messagesSent++
			c.statsMu.Unlock()

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Warn("ping failed, ending session transport",
					slog.String("station_id", c.config.StationID), slog.Any("error", err))
				return
			}
		}
	}
}

func (c *Client) tlsConfig() (*tls.Config, error) {
	tlsConfig := &tls.Config{InsecureSkipVerify: c.config.TLSSkipVerify}

	if c.config.TLSCACert != "" {
		caCert, err := os.ReadFile(c.config.TLSCACert)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA cert")
		}
		tlsConfig.RootCAs = pool
	}

	if c.config.TLSClientCert != "" && c.config.TLSClientKey != "" {
		cert, err := tls.LoadX509KeyPair(c.config.TLSClientCert, c.config.TLSClientKey)
		if err != nil {
			return nil, fmt.Errorf("failed to load client cert: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}
