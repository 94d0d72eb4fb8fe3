package tracelog

import (
	"testing"
	"time"
)

func TestLogger_FlushesOnBatchSize(t *testing.T) {
	l := New(nil, Config{BufferSize: 10, BatchSize: 3, FlushInterval: time.Hour})
	l.Start()
	defer l.Stop()

	for i := 0; i < 3; i++ {
		l.Log(Entry{StationID: "CP001", Direction: "sent", Action: "Heartbeat"})
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if l.Stats().TotalMessages >= 3 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected batch of 3 to flush, got stats %+v", l.Stats())
}

func TestLogger_DropsWhenBufferFull(t *testing.T) {
	l := New(nil, Config{BufferSize: 1, BatchSize: 1000, FlushInterval: time.Hour})
	l.Start()
	defer l.Stop()

	for i := 0; i < 20; i++ {
		l.Log(Entry{StationID: "CP001", Action: "Heartbeat"})
	}

	deadline := time.Now().Add(1 * time.Second)
	for time.Now().Before(deadline) {
		if l.Stats().DroppedMessages > 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("expected some entries to be dropped under buffer pressure")
}

func TestLogger_StopFlushesRemainder(t *testing.T) {
	l := New(nil, Config{BufferSize: 10, BatchSize: 1000, FlushInterval: time.Hour})
	l.Start()

	l.Log(Entry{StationID: "CP001", Action: "StartTransaction"})
	time.Sleep(20 * time.Millisecond)
	l.Stop()

	if l.Stats().TotalMessages != 1 {
		t.Errorf("expected the buffered entry to flush on Stop, got %+v", l.Stats())
	}
}
