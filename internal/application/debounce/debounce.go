package debounce

import (
	"context"
	"sync"
	"time"
)

// Default bounds for the typeahead delay. Anything outside this window
// either hammers the search endpoint or feels unresponsive.
const (
	MinDelay     = 150 * time.Millisecond
	MaxDelay     = 500 * time.Millisecond
	DefaultDelay = 300 * time.Millisecond
)

// Debouncer coalesces rapid-fire calls (a search box typeahead) into one
// invocation after a quiet period. Scheduling a new call cancels the
// pending one; a cancelled call never runs, so no partial result is ever
// applied.
type Debouncer struct {
	delay time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	cancel context.CancelFunc
}

// New creates a Debouncer with the given delay, clamped to the
// [MinDelay, MaxDelay] window. A non-positive delay uses DefaultDelay.
func New(delay time.Duration) *Debouncer {
	switch {
	case delay <= 0:
		delay = DefaultDelay
	case delay < MinDelay:
		delay = MinDelay
	case delay > MaxDelay:
		delay = MaxDelay
	}
	return &Debouncer{delay: delay}
}

// Do schedules fn to run after the quiet period, cancelling any pending
// invocation. fn receives a context that is cancelled when a newer call
// supersedes it or when the caller's ctx ends, whichever comes first.
// PRE: fn is non-nil
// POST: at most one invocation is pending at any time
func (d *Debouncer) Do(ctx context.Context, fn func(ctx context.Context)) {
	runCtx, cancel := context.WithCancel(ctx)

	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	if d.cancel != nil {
		d.cancel()
	}
	d.cancel = cancel
	d.timer = time.AfterFunc(d.delay, func() {
		if runCtx.Err() != nil {
			return
		}
		fn(runCtx)
	})
	d.mu.Unlock()
}

// Stop cancels any pending invocation, for when the caller detaches.
// POST: no invocation will fire until Do is called again
func (d *Debouncer) Stop() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()
}
