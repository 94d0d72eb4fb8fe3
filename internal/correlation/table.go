// Package correlation implements the per-session outbound message
// correlation table: a map from msg_id to the action that produced it,
// plus a distinguished transaction_id slot updated once the CSMS accepts
// a StartTransaction.
//
// Grounded on original_source/crates/common/src/shared_data.rs's
// SharedState<A>/SharedData<A>, translated into Go idiom. A session's
// generator and handler are both the session's own goroutine, so
// contention on the mutex is near-zero (§5 of the spec this implements);
// the lock exists for defensive symmetry, not to solve real contention.
package correlation

import (
	"context"
	"sync"
	"time"
)

// entry is a pending correlation plus the time it was inserted, so an
// eviction sweep can tell a stale entry from a fresh one.
type entry struct {
	action     string
	insertedAt time.Time
}

// Table maps outbound msg_ids to the action that was sent, and tracks the
// session's current transaction id once assigned.
type Table struct {
	mu            sync.Mutex
	pending       map[string]entry
	transactionID *int
}

// New returns an empty correlation table.
func New() *Table {
	return &Table{pending: make(map[string]entry)}
}

// Insert records that msgID was sent for action. Called once per outbound Call.
func (t *Table) Insert(msgID, action string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending[msgID] = entry{action: action, insertedAt: time.Now()}
}

// Take removes and returns the action recorded for msgID, if any. Called
// once per inbound CallResult/CallError.
func (t *Table) Take(msgID string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.pending[msgID]
	if ok {
		delete(t.pending, msgID)
	}
	return e.action, ok
}

// Len reports the number of outstanding correlations, mainly for tests and
// the eviction sweep.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}

// evictOlderThan removes every pending entry inserted before the cutoff and
// reports how many were dropped.
func (t *Table) evictOlderThan(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)
	t.mu.Lock()
	defer t.mu.Unlock()
	evicted := 0
	for msgID, e := range t.pending {
		if e.insertedAt.Before(cutoff) {
			delete(t.pending, msgID)
			evicted++
		}
	}
	return evicted
}

// RunEvictionSweep is an opt-in goroutine that periodically drops
// correlations nobody ever answered (a CSMS that drops a Call on the floor
// would otherwise pin that msg_id in the table forever). Callers that want
// it run it explicitly; ctx cancellation stops the sweep. onEvict, if
// non-nil, is called with the number of entries dropped on sweeps that
// dropped at least one.
func (t *Table) RunEvictionSweep(ctx context.Context, interval, maxAge time.Duration, onEvict func(int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := t.evictOlderThan(maxAge); n > 0 && onEvict != nil {
				onEvict(n)
			}
		}
	}
}

// TransactionID returns the current transaction id, or nil if none has
// been assigned yet (e.g. StartTransaction hasn't completed).
func (t *Table) TransactionID() *int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.transactionID == nil {
		return nil
	}
	id := *t.transactionID
	return &id
}

// SetTransactionID stores the transaction id assigned by the CSMS (or the
// degraded fallback value) for this session.
func (t *Table) SetTransactionID(id int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.transactionID = &id
}

// ClearTransactionID clears the transaction id once a transaction ends.
func (t *Table) ClearTransactionID() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.transactionID = nil
}
