package v16

import (
	"context"
	"log/slog"
	"testing"

	"github.com/ruslanhut/ocpp-emu/internal/correlation"
)

// capturingHandler records whether any record was logged, for asserting
// debug_mode's EnergyStats diagnostic actually fires.
type capturingHandler struct {
	records []string
}

func (h *capturingHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *capturingHandler) Handle(_ context.Context, r slog.Record) error {
	h.records = append(h.records, r.Message)
	return nil
}
func (h *capturingHandler) WithAttrs(attrs []slog.Attr) slog.Handler { return h }
func (h *capturingHandler) WithGroup(name string) slog.Handler      { return h }

func TestAdapter_StopTransactionLogsEnergyStatsWhenDebugMode(t *testing.T) {
	handler := &capturingHandler{}
	logger := slog.New(handler)

	a := NewAdapter("CP001", 1, correlation.New(), MeterReadingDeterministic, true, logger)
	if _, err := a.MeterValues(1); err != nil {
		t.Fatalf("MeterValues failed: %v", err)
	}
	if _, err := a.StopTransaction(1, "tag-1", 1000); err != nil {
		t.Fatalf("StopTransaction failed: %v", err)
	}

	found := false
	for _, msg := range handler.records {
		if msg == "energy stats for transaction" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected StopTransaction to log an energy stats summary in debug mode, got %v", handler.records)
	}
}

func TestAdapter_StopTransactionSkipsEnergyStatsWhenNotDebugMode(t *testing.T) {
	handler := &capturingHandler{}
	logger := slog.New(handler)

	a := NewAdapter("CP001", 1, correlation.New(), MeterReadingDeterministic, false, logger)
	if _, err := a.MeterValues(1); err != nil {
		t.Fatalf("MeterValues failed: %v", err)
	}
	if _, err := a.StopTransaction(1, "tag-1", 1000); err != nil {
		t.Fatalf("StopTransaction failed: %v", err)
	}

	if len(handler.records) != 0 {
		t.Errorf("expected no energy stats log outside debug mode, got %v", handler.records)
	}
}
