// Package tracelog is the wire-level trace logger every session feeds its
// outbound OCPP Calls through. Inbound frames, and the CallResult/CallError
// replies a session sends to CSMS Calls, are not traced.
//
// Adapted from the teacher's internal/logging/message_logger.go: the
// buffered-channel batching idiom and periodic-flush ticker are kept, but
// the MongoDB sink is removed (the simulator has no persistence layer —
// its job is to generate load, not archive it) and replaced with
// structured log/slog output: a Debug summary line per flushed batch,
// followed by one Debug line per frame in it.
package tracelog

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Config controls the logger's buffering behavior.
type Config struct {
	BufferSize    int
	BatchSize     int
	FlushInterval time.Duration
}

// Entry is one logged frame.
type Entry struct {
	StationID   string
	Direction   string // "sent" or "received"
	MessageType string // "Call", "CallResult", "CallError"
	Action      string
	MessageID   string
	Timestamp   time.Time
}

// Stats summarizes what the logger has flushed so far.
type Stats struct {
	TotalMessages   int64
	DroppedMessages int64
	FlushCount      int64
}

// Logger batches Entry values and periodically emits them as structured
// log records, rather than logging (and blocking the session loop) on
// every single frame.
type Logger struct {
	logger *slog.Logger
	buffer chan Entry
	config Config

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	statsMu sync.Mutex
	stats   Stats
}

// New returns a Logger. Call Start to begin the background flush loop.
func New(logger *slog.Logger, config Config) *Logger {
	if logger == nil {
		logger = slog.Default()
	}
	if config.BufferSize == 0 {
		config.BufferSize = 1000
	}
	if config.BatchSize == 0 {
		config.BatchSize = 100
	}
	if config.FlushInterval == 0 {
		config.FlushInterval = 5 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Logger{
		logger: logger,
		buffer: make(chan Entry, config.BufferSize),
		config: config,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins the background flush loop.
func (l *Logger) Start() {
	l.wg.Add(1)
	go l.run()
}

// Stop drains any buffered entries and ends the flush loop.
func (l *Logger) Stop() {
	l.cancel()
	l.wg.Wait()
}

// Log buffers entry for the next flush. If the buffer is full the entry
// is dropped and counted, rather than blocking the session's event loop.
func (l *Logger) Log(entry Entry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	select {
	case l.buffer <- entry:
	default:
		l.statsMu.Lock()
		l.stats.DroppedMessages++
		l.statsMu.Unlock()
		l.logger.Warn("trace buffer full, dropping entry",
			slog.String("station_id", entry.StationID),
			slog.String("action", entry.Action),
		)
	}
}

// Stats returns a snapshot of the logger's counters.
func (l *Logger) Stats() Stats {
	l.statsMu.Lock()
	defer l.statsMu.Unlock()
	return l.stats
}

func (l *Logger) run() {
	defer l.wg.Done()

	ticker := time.NewTicker(l.config.FlushInterval)
	defer ticker.Stop()

	batch := make([]Entry, 0, l.config.BatchSize)

	for {
		select {
		case <-l.ctx.Done():
			l.drain(&batch)
			l.flush(batch)
			return

		case entry := <-l.buffer:
			batch = append(batch, entry)
			if len(batch) >= l.config.BatchSize {
				l.flush(batch)
				batch = batch[:0]
			}

		case <-ticker.C:
			if len(batch) > 0 {
				l.flush(batch)
				batch = batch[:0]
			}
		}
	}
}

func (l *Logger) drain(batch *[]Entry) {
	for {
		select {
		case entry := <-l.buffer:
			*batch = append(*batch, entry)
		default:
			return
		}
	}
}

func (l *Logger) flush(batch []Entry) {
	if len(batch) == 0 {
		return
	}

	l.logger.Debug("flushed trace batch", slog.Int("count", len(batch)))
	for _, e := range batch {
		l.logger.Debug("ocpp frame",
			slog.String("station_id", e.StationID),
			slog.String("direction", e.Direction),
			slog.String("message_type", e.MessageType),
			slog.String("action", e.Action),
			slog.String("message_id", e.MessageID),
		)
	}

	l.statsMu.Lock()
	l.stats.TotalMessages += int64(len(batch))
	l.stats.FlushCount++
	l.statsMu.Unlock()
}
