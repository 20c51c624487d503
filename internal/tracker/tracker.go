// Package tracker keeps the in-memory dedup/cooldown state of the
// reconciliation engine. The state lives for the process only: after a
// restart the ledger is the ground truth and the engine re-derives
// already_checkedin from it, while the cooldown restarts empty. That makes
// the cooldown a best-effort guard against rapid repeated detections of one
// physical presence, deliberately weaker than the ledger-level uniqueness.
package tracker

import (
	"sync"
	"time"

	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/shift"
)

// DefaultCooldown matches the recognizer's detection cadence.
const DefaultCooldown = 300 * time.Second

// Tracker records the last mark time and the shifts already marked per
// person per day. Safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	cooldown time.Duration
	lastMark map[string]time.Time
	marked   map[string]map[shift.Kind]struct{}
}

// New creates a tracker. cooldown <= 0 selects DefaultCooldown.
func New(cooldown time.Duration) *Tracker {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Tracker{
		cooldown: cooldown,
		lastMark: make(map[string]time.Time),
		marked:   make(map[string]map[shift.Kind]struct{}),
	}
}

// CanMark reports whether a check-in mark is allowed: the assigned shift must
// be known, not yet marked today, and the cooldown must have elapsed.
func (t *Tracker) CanMark(name string, assigned shift.Kind, now time.Time) bool {
	if _, ok := shift.ParseKind(string(assigned)); !ok {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.resetIfNewDay(name, now)

	if _, done := t.marked[name][assigned]; done {
		return false
	}
	return !t.inCooldown(name, now)
}

// InCooldown reports whether the per-person cooldown is still running.
// Checkout and outside-hours marks use this alone, without the per-shift
// dedup that CanMark adds.
func (t *Tracker) InCooldown(name string, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.resetIfNewDay(name, now)
	return t.inCooldown(name, now)
}

func (t *Tracker) inCooldown(name string, now time.Time) bool {
	last, ok := t.lastMark[name]
	if !ok {
		return false
	}
	return now.Sub(last) < t.cooldown
}

// RecordMark stores a successful check-in mark for the given shift.
func (t *Tracker) RecordMark(name string, assigned shift.Kind, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lastMark[name] = now
	if t.marked[name] == nil {
		t.marked[name] = make(map[shift.Kind]struct{})
	}
	t.marked[name][assigned] = struct{}{}
}

// Touch restarts the cooldown without consuming the daily shift mark.
// Used after checkout and other non-check-in appends.
func (t *Tracker) Touch(name string, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lastMark[name] = now
}

// resetIfNewDay clears the marked shifts once the calendar day rolls over.
// Caller holds the lock.
func (t *Tracker) resetIfNewDay(name string, now time.Time) {
	last, ok := t.lastMark[name]
	if !ok {
		return
	}
	ly, lm, ld := last.Date()
	ny, nm, nd := now.Date()
	if ly != ny || lm != nm || ld != nd {
		delete(t.marked, name)
	}
}
