package search

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of Schedule calls into one invocation after a
// quiet period. Each Schedule cancels the pending run and supersedes any run
// already in flight: callers receive a stale func and must discard their
// result once it reports true, so a slow search can never overwrite the
// results of a newer query.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	gen   uint64
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Schedule runs fn after the quiet period unless another Schedule arrives
// first. fn runs on the timer goroutine.
func (d *Debouncer) Schedule(fn func(stale func() bool)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	gen := d.gen

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		fn(func() bool {
			d.mu.Lock()
			defer d.mu.Unlock()
			return d.gen != gen
		})
	})
}

// Stop cancels any pending run. In-flight runs see stale() = true.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
