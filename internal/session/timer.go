package session

import (
	"sync"
	"time"
)

// tickInterval is how often a running timer reports elapsed time.
const tickInterval = 500 * time.Millisecond

// Timer measures how long the user takes to answer a card. While running
// it invokes an optional callback on every tick so the elapsed time can be
// displayed live.
type Timer struct {
	mu      sync.Mutex
	started time.Time
	stop    chan struct{}
	running bool
}

// NewTimer returns a stopped timer.
func NewTimer() *Timer {
	return &Timer{}
}

// Start begins timing. onTick, if non-nil, is called with the elapsed time
// every half second until Stop. Calling Start on a running timer restarts it.
func (t *Timer) Start(onTick func(elapsed time.Duration)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		close(t.stop)
	}

	t.started = time.Now()
	t.stop = make(chan struct{})
	t.running = true

	if onTick == nil {
		return
	}

	go func(started time.Time, stop chan struct{}) {
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				onTick(time.Since(started))
			case <-stop:
				return
			}
		}
	}(t.started, t.stop)
}

// Stop ends timing and returns the elapsed duration. Stopping a stopped
// timer returns zero.
func (t *Timer) Stop() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return 0
	}

	close(t.stop)
	t.running = false
	return time.Since(t.started)
}

// Running reports whether the timer is currently measuring.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}
