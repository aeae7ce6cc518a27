package throttle

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultMinInterval = 1500 * time.Millisecond
	DefaultQuota       = 30
	DefaultWindow      = 60 * time.Second
)

// Throttle gates outbound sends for a single session: consecutive
// admissions are spaced at least minInterval apart, and at most quota
// admissions happen per window. When the quota is hit the next caller
// waits out the remainder of the current window, not a fresh full
// window from the point of exhaustion; the counter then resets with
// the new window.
type Throttle struct {
	minInterval time.Duration
	quota       int
	window      time.Duration

	mu          sync.Mutex
	lastSend    time.Time
	windowStart time.Time
	count       int
}

func New(minInterval time.Duration, quota int, window time.Duration) *Throttle {
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}
	if quota <= 0 {
		quota = DefaultQuota
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Throttle{
		minInterval: minInterval,
		quota:       quota,
		window:      window,
	}
}

// Admit blocks until a send is allowed, then records it. The check and
// the record happen under one lock so concurrent callers can never both
// see "quota available" and slip through together. If ctx is cancelled
// while waiting, nothing is recorded and the counters are untouched.
func (t *Throttle) Admit(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		t.mu.Lock()
		now := time.Now()

		if t.windowStart.IsZero() || now.Sub(t.windowStart) >= t.window {
			t.windowStart = now
			t.count = 0
		}

		var delay time.Duration
		if !t.lastSend.IsZero() {
			if gap := now.Sub(t.lastSend); gap < t.minInterval {
				delay = t.minInterval - gap
			}
		}
		if t.count >= t.quota {
			if cooldown := t.windowStart.Add(t.window).Sub(now); cooldown > delay {
				delay = cooldown
			}
		}

		if delay <= 0 {
			t.lastSend = now
			t.count++
			t.mu.Unlock()
			return nil
		}
		t.mu.Unlock()

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}

// Stats reports the admissions recorded in the current window and the
// window's start, for operator status output.
func (t *Throttle) Stats() (count int, quota int, windowStart time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count, t.quota, t.windowStart
}
