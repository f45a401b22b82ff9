package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/tallyup/tallyup/internal/models"
	"github.com/tallyup/tallyup/internal/report"
)

// DefaultDebounce is how long the recomputer waits for edits to settle
// before rebuilding.
const DefaultDebounce = 500 * time.Millisecond

// Snapshot is one consistent view of a receipt mid-editing. The
// recomputer rebuilds both report shapes from the latest snapshot only.
type Snapshot struct {
	Receipt models.Receipt
	Orders  []models.Order
	Splits  []models.SplitOrder
}

// Reports is a matched pair of rendered reports from a single snapshot.
type Reports struct {
	One string
	All string
}

// Recomputer coalesces rapid edit bursts into one report rebuild.
// Rebuilds run off the caller's goroutine; only fully successful
// rebuilds are published, so consumers never see a half-updated pair.
type Recomputer struct {
	debounce time.Duration
	publish  func(Reports)

	mu      sync.Mutex
	pending *Snapshot
	timer   *time.Timer
	closed  bool
}

// NewRecomputer creates a Recomputer that calls publish with each
// rebuilt report pair. A debounce of 0 falls back to DefaultDebounce.
func NewRecomputer(debounce time.Duration, publish func(Reports)) *Recomputer {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Recomputer{debounce: debounce, publish: publish}
}

// Submit records the latest snapshot and restarts the debounce window.
// Snapshots arriving inside the window replace earlier ones.
func (r *Recomputer) Submit(snapshot Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.pending = &snapshot
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.debounce, r.fire)
}

// Flush rebuilds immediately from any pending snapshot, without waiting
// out the debounce window.
func (r *Recomputer) Flush() {
	r.mu.Lock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.mu.Unlock()
	r.fire()
}

// Close stops the recomputer. Pending work is dropped.
func (r *Recomputer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.pending = nil
}

func (r *Recomputer) fire() {
	r.mu.Lock()
	snapshot := r.pending
	r.pending = nil
	closed := r.closed
	r.mu.Unlock()
	if snapshot == nil || closed {
		return
	}

	// Build outside the lock; a rebuild must never block Submit.
	one, err := report.ForOne(snapshot.Receipt, snapshot.Orders)
	if err != nil {
		slog.Warn("Recompute failed", "report", "one", "error", err)
		return
	}
	all, err := report.ForAllConsumers(snapshot.Receipt, snapshot.Splits)
	if err != nil {
		slog.Warn("Recompute failed", "report", "all", "error", err)
		return
	}
	r.publish(Reports{One: one, All: all})
}
