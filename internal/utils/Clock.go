package utils

import (
	"sort"
	"sync"
	"time"
)

// Clock abstracts wall-clock time and one-shot timers so that time-based
// logic can run against a virtual clock in tests.
type Clock interface {
	Now() time.Time
	// AfterFunc arms a one-shot callback that runs after d has elapsed.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is the handle for a callback armed via Clock.AfterFunc.
// Stop reports whether the call prevented the callback from running.
type Timer interface {
	Stop() bool
}

type SystemClock struct{}

func (s SystemClock) Now() time.Time {
	return time.Now()
}

func (s SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// MockClock is a manually driven clock. Armed callbacks fire synchronously
// from Advance or SetNow on the calling goroutine, which keeps tests
// deterministic.
type MockClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*mockTimer
}

type mockTimer struct {
	clock   *MockClock
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func NewMockClock(now time.Time) *MockClock {
	return &MockClock{now: now}
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *MockClock) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &mockTimer{clock: m, at: m.now.Add(d), f: f}
	m.timers = append(m.timers, t)
	return t
}

// Advance moves the clock forward and fires every callback due by then,
// in trigger order.
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	m.setNowLocked(m.now.Add(d))
}

// SetNow jumps the clock to the given instant and fires due callbacks.
func (m *MockClock) SetNow(now time.Time) {
	m.mu.Lock()
	m.setNowLocked(now)
}

// setNowLocked expects m.mu held and releases it before firing callbacks,
// so callbacks may call back into the clock.
func (m *MockClock) setNowLocked(now time.Time) {
	m.now = now
	var due []*mockTimer
	remaining := m.timers[:0]
	for _, t := range m.timers {
		if !t.stopped && !t.at.After(now) {
			t.fired = true
			due = append(due, t)
		} else if !t.stopped {
			remaining = append(remaining, t)
		}
	}
	m.timers = remaining
	m.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, t := range due {
		t.f()
	}
}

// PendingTimers returns the number of armed, not yet fired callbacks.
func (m *MockClock) PendingTimers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

func (t *mockTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}
