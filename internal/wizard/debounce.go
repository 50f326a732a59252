package wizard

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period before a username check is issued.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer runs at most one pending callback. Scheduling again stops the
// previous timer and invalidates its generation.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// NewDebouncer returns a Debouncer with the given delay. A non-positive
// delay fires on the next timer tick.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay < 0 {
		delay = 0
	}
	return &Debouncer{delay: delay}
}

// Schedule arranges for run to be called with a fresh generation after the
// delay and returns that generation.
func (d *Debouncer) Schedule(run func(gen uint64)) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	if d.timer != nil {
		d.timer.Stop()
	}
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { run(gen) })
	return gen
}

// Cancel stops any pending callback and invalidates in-flight generations.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Current reports whether gen is the most recently scheduled generation.
func (d *Debouncer) Current(gen uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return gen == d.gen
}
