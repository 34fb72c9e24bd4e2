// Package debounce collapses rapid successive calls into a single delayed
// execution. One pending timer slot exists per debouncer: a new call
// cancels and replaces the pending one.
package debounce

import (
	"sync"
	"time"
)

// Debouncer delays function execution by a fixed interval, keeping only
// the most recent call. A zero interval runs calls synchronously.
type Debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// New returns a debouncer with the given interval.
func New(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Call schedules fn, cancelling any pending call. After Stop, calls are
// dropped.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.interval <= 0 {
		// Run outside the lock so fn may call back into the debouncer.
		go fn()
		return
	}
	d.timer = time.AfterFunc(d.interval, fn)
}

// Cancel drops the pending call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Stop cancels the pending call and makes the debouncer inert. Safe to
// call more than once.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.stopped = true
}
