package authclient

import (
	"sync"
	"time"
)

// timerHandle owns at most one pending timer for a single concern. Arming a
// new timer always cancels the previous one, so a stale timer from an older
// token can never fire into a newer token's schedule.
type timerHandle struct {
	mu sync.Mutex
	t  *time.Timer
}

// arm schedules fn after d, cancelling any previously pending timer.
func (h *timerHandle) arm(d time.Duration, fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.t != nil {
		h.t.Stop()
	}
	h.t = time.AfterFunc(d, fn)
}

// cancel stops any pending timer. Safe to call repeatedly.
func (h *timerHandle) cancel() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.t != nil {
		h.t.Stop()
		h.t = nil
	}
}
