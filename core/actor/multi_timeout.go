package actor

import (
	"time"

	"github.com/codewandler/loom-go/internal/timerheap"
)

// MultiTimeout is an actor maintaining many independent keyed deadlines that
// share one callback. Expired keys fire in non-decreasing deadline order and
// are removed before the callback runs, so the callback decides per firing
// whether to rearm.
//
// All methods must be called on the MultiTimeout's scheduler.
type MultiTimeout struct {
	Base
	callback func(key int64)
	entries  map[int64]*mtEntry
	timers   timerheap.Heap[*mtEntry]
}

type mtEntry struct {
	key      int64
	deadline time.Time
	index    int
}

func (e *mtEntry) TimerDeadline() time.Time { return e.deadline }
func (e *mtEntry) TimerIndex() int          { return e.index }
func (e *mtEntry) SetTimerIndex(i int)      { e.index = i }

// SetCallback binds the shared callback. Bind once, before the first arm.
func (m *MultiTimeout) SetCallback(fn func(key int64)) {
	m.callback = fn
}

// HasTimeout reports whether key is armed.
func (m *MultiTimeout) HasTimeout(key int64) bool {
	_, ok := m.entries[key]
	return ok
}

// AddTimeoutIn arms key d from now if it is not armed yet. An armed key
// keeps its earlier deadline.
func (m *MultiTimeout) AddTimeoutIn(key int64, d time.Duration) {
	m.AddTimeoutAt(key, time.Now().Add(d))
}

// AddTimeoutAt arms key at the absolute deadline if it is not armed yet.
func (m *MultiTimeout) AddTimeoutAt(key int64, at time.Time) {
	if m.HasTimeout(key) {
		return
	}
	m.arm(key, at)
}

// SetTimeoutIn arms or rearms key d from now, replacing a pending deadline.
func (m *MultiTimeout) SetTimeoutIn(key int64, d time.Duration) {
	m.SetTimeoutAt(key, time.Now().Add(d))
}

// SetTimeoutAt arms or rearms key at the absolute deadline.
func (m *MultiTimeout) SetTimeoutAt(key int64, at time.Time) {
	if e, ok := m.entries[key]; ok {
		e.deadline = at
		m.timers.Fix(e)
		m.updateDeadline()
		return
	}
	m.arm(key, at)
}

// CancelTimeout disarms key; canceling an unarmed key is a no-op.
func (m *MultiTimeout) CancelTimeout(key int64) {
	e, ok := m.entries[key]
	if !ok {
		return
	}
	delete(m.entries, key)
	m.timers.Remove(e)
	m.updateDeadline()
}

// Size returns the number of armed keys.
func (m *MultiTimeout) Size() int { return len(m.entries) }

// TimeoutExpired pops every expired key in deadline order and fires the
// callback for each. The callback may rearm the key.
func (m *MultiTimeout) TimeoutExpired() {
	now := time.Now()
	for m.timers.Len() > 0 {
		e := m.timers.Peek()
		if e.deadline.After(now) {
			break
		}
		m.timers.Pop()
		delete(m.entries, e.key)
		if m.callback != nil {
			m.callback(e.key)
		}
	}
	m.updateDeadline()
}

// RunAll fires every armed key immediately, in deadline order.
func (m *MultiTimeout) RunAll() {
	for m.timers.Len() > 0 {
		e := m.timers.Pop()
		delete(m.entries, e.key)
		if m.callback != nil {
			m.callback(e.key)
		}
	}
	m.updateDeadline()
}

func (m *MultiTimeout) arm(key int64, at time.Time) {
	if m.entries == nil {
		m.entries = make(map[int64]*mtEntry)
	}
	e := &mtEntry{key: key, deadline: at, index: -1}
	m.entries[key] = e
	m.timers.Push(e)
	m.updateDeadline()
}

// updateDeadline mirrors the nearest keyed deadline onto the actor's own
// timer so the scheduler wakes up exactly when needed.
func (m *MultiTimeout) updateDeadline() {
	if m.timers.Len() == 0 {
		m.Base.CancelTimeout()
		return
	}
	m.Base.SetTimeoutAt(m.timers.Peek().deadline)
}

var (
	_ TimeoutHandler = (*MultiTimeout)(nil)
	_ Behavior       = (*MultiTimeout)(nil)
)
