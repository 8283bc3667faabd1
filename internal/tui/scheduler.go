package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zachkp/portfolio/internal/clock"
)

// timerMsg is delivered by tea.Tick when a scheduled callback is due.
type timerMsg struct{ id uint64 }

// Scheduler runs deferred callbacks on the Bubble Tea event loop. AfterFunc
// queues a tea.Tick; the model drains the queue after every Update and fires
// the callback when the tick's message comes back.
type Scheduler struct {
	mu      sync.Mutex
	next    uint64
	tasks   map[uint64]func()
	pending []tea.Cmd
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{tasks: make(map[uint64]func())}
}

type teaTask struct {
	s  *Scheduler
	id uint64
}

func (t *teaTask) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	_, ok := t.s.tasks[t.id]
	delete(t.s.tasks, t.id)
	return ok
}

// AfterFunc implements clock.Scheduler.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) clock.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	id := s.next
	s.tasks[id] = fn
	s.pending = append(s.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return timerMsg{id: id}
	}))
	return &teaTask{s: s, id: id}
}

// fire runs the callback for id unless it was stopped.
func (s *Scheduler) fire(id uint64) {
	s.mu.Lock()
	fn, ok := s.tasks[id]
	delete(s.tasks, id)
	s.mu.Unlock()
	if ok {
		fn()
	}
}

// drain returns the ticks queued since the last call.
func (s *Scheduler) drain() tea.Cmd {
	s.mu.Lock()
	cmds := s.pending
	s.pending = nil
	s.mu.Unlock()
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Pending reports how many callbacks are waiting to fire.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// due returns the ids of waiting callbacks in scheduling order.
func (s *Scheduler) due() []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]uint64, 0, len(s.tasks))
	for id := uint64(1); id <= s.next; id++ {
		if _, ok := s.tasks[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}
