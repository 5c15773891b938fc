package ui

import (
	"sync"
	"time"
)

// FilterDebounce is the default settle delay for rapid event sources.
const FilterDebounce = 300 * time.Millisecond

// Debouncer coalesces rapid events, firing only after the duration has
// elapsed without a new call. The upload watcher uses one so a single
// editor save does not become several uploads.
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	duration time.Duration
}

// NewDebouncer creates a debouncer with the given settle duration.
func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{duration: duration}
}

// Debounce schedules fn after the settle duration, replacing any pending
// call.
func (d *Debouncer) Debounce(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, fn)
}

// Cancel drops any pending call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Flush cancels any pending call and runs fn now.
func (d *Debouncer) Flush(fn func()) {
	d.Cancel()
	fn()
}
