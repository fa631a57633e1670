//go:build integration

package mock

import (
	"sync"
	"time"
)

// Time is a clock frozen at a settable instant.
type Time struct {
	mu  sync.RWMutex
	now time.Time
}

func NewTime() *Time {
	return &Time{now: time.Now().UTC()}
}

func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.now = currentTime
}

func (t *Time) Now() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.now
}
