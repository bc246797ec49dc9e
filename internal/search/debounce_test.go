package search

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCoalescesBursts(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var runs atomic.Int32
	done := make(chan struct{}, 1)

	for i := 0; i < 5; i++ {
		d.Schedule(func(stale func() bool) {
			runs.Add(1)
			select {
			case done <- struct{}{}:
			default:
			}
		})
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debounced fn never ran")
	}
	// Give any stragglers a chance to fire before counting.
	time.Sleep(100 * time.Millisecond)

	if got := runs.Load(); got != 1 {
		t.Errorf("expected exactly 1 run for a burst, got %d", got)
	}
}

func TestDebouncerStaleDetection(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)

	started := make(chan struct{})
	verdict := make(chan bool, 1)

	d.Schedule(func(stale func() bool) {
		close(started)
		// Simulate a slow search; a newer schedule arrives meanwhile.
		time.Sleep(50 * time.Millisecond)
		verdict <- stale()
	})

	<-started
	fresh := make(chan bool, 1)
	d.Schedule(func(stale func() bool) {
		fresh <- stale()
	})

	select {
	case v := <-verdict:
		if !v {
			t.Errorf("superseded run should see stale() = true")
		}
	case <-time.After(time.Second):
		t.Fatal("first run never finished")
	}

	select {
	case v := <-fresh:
		if v {
			t.Errorf("latest run should see stale() = false")
		}
	case <-time.After(time.Second):
		t.Fatal("second run never fired")
	}
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var runs atomic.Int32

	d.Schedule(func(stale func() bool) {
		if !stale() {
			runs.Add(1)
		}
	})
	d.Stop()

	time.Sleep(80 * time.Millisecond)
	if got := runs.Load(); got != 0 {
		t.Errorf("stopped debouncer should not run fresh work, got %d runs", got)
	}
}
