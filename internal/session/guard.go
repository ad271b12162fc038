package session

import "sync/atomic"

// Guard admits one in-flight LLM request at a time. Duplicate submissions
// while a request is outstanding are rejected rather than queued.
type Guard struct {
	busy atomic.Bool
}

// TryAcquire reports whether the caller may start a request. A true return
// must be paired with Release.
func (g *Guard) TryAcquire() bool {
	return g.busy.CompareAndSwap(false, true)
}

// Release marks the request finished.
func (g *Guard) Release() {
	g.busy.Store(false)
}

// Busy reports whether a request is outstanding.
func (g *Guard) Busy() bool {
	return g.busy.Load()
}
