package watcher

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of triggers into a single callback after a quiet period
type Debouncer interface {
	Trigger()
	Stop()
}

type debouncer struct {
	duration time.Duration
	callback func()
	timer    *time.Timer
	pending  bool
	mu       sync.Mutex
	stopped  bool
}

// NewDebouncer creates a Debouncer that calls callback once per burst
func NewDebouncer(duration time.Duration, callback func()) Debouncer {
	return &debouncer{
		duration: duration,
		callback: callback,
	}
}

// Trigger records an event and restarts the quiet period
func (d *debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.pending = true

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.duration, d.fire)
}

// Stop cancels any pending callback; later triggers are ignored
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.pending = false

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *debouncer) fire() {
	d.mu.Lock()

	if d.stopped || !d.pending {
		d.mu.Unlock()
		return
	}

	d.pending = false
	d.timer = nil

	d.mu.Unlock()

	d.callback()
}
