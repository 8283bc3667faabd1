// Package clock provides the deferred-callback scheduler used by the
// transition locks and animations. Every scheduled callback can be
// cancelled so owners can release it on teardown.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Task is a pending one-shot callback.
type Task interface {
	// Stop cancels the callback. It reports whether the call stopped the
	// task before it fired.
	Stop() bool
}

// Scheduler runs fn once after d has elapsed.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Task
}

// Real schedules callbacks on the runtime timer. Callbacks run on their own
// goroutine, so owners must guard the state they touch.
type Real struct{}

func (Real) AfterFunc(d time.Duration, fn func()) Task {
	return time.AfterFunc(d, fn)
}

// Manual is a deterministic Scheduler. Time only moves when Advance is
// called and due callbacks run on the caller's goroutine.
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	owner   *Manual
	due     time.Duration
	seq     int
	fn      func()
	stopped bool
	fired   bool
}

// NewManual returns a Manual scheduler at time zero.
func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) AfterFunc(d time.Duration, fn func()) Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTask{owner: m, due: m.now + d, seq: m.seq, fn: fn}
	m.tasks = append(m.tasks, t)
	return t
}

func (t *manualTask) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves time forward by d and runs every task that became due, in
// due order. Tasks scheduled by a callback run in the same call when they
// fall inside the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDueLocked(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.now = next.due
		next.fired = true
		m.mu.Unlock()

		next.fn()
	}
}

func (m *Manual) nextDueLocked(limit time.Duration) *manualTask {
	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	m.tasks = live
	sort.SliceStable(m.tasks, func(i, j int) bool {
		if m.tasks[i].due == m.tasks[j].due {
			return m.tasks[i].seq < m.tasks[j].seq
		}
		return m.tasks[i].due < m.tasks[j].due
	})
	if len(m.tasks) == 0 || m.tasks[0].due > limit {
		return nil
	}
	return m.tasks[0]
}

// Pending reports how many tasks are scheduled and not yet fired or stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tasks {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Now returns the elapsed manual time.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}
