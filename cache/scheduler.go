package cache

import (
	"sync/atomic"
	"time"
)

// Scheduler runs deferred actions.
//
// Contract:
// - Schedule runs fn exactly once after delay, on its own goroutine.
// - Scheduled actions cannot be cancelled.
type Scheduler interface {
	Schedule(delay time.Duration, fn func())
}

// TimerScheduler schedules actions with time.AfterFunc.
// Timers are fire-and-forget: nothing holds a handle to stop them.
type TimerScheduler struct {
	pending atomic.Int64
}

// NewTimerScheduler creates a scheduler backed by runtime timers.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{}
}

// Schedule runs fn after delay.
func (s *TimerScheduler) Schedule(delay time.Duration, fn func()) {
	s.pending.Add(1)
	time.AfterFunc(delay, func() {
		defer s.pending.Add(-1)
		fn()
	})
}

// Pending returns the number of timers that have not fired yet.
func (s *TimerScheduler) Pending() int64 {
	return s.pending.Load()
}

var _ Scheduler = (*TimerScheduler)(nil)
