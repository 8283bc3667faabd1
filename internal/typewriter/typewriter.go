// Package typewriter reveals a line of text one rune at a time.
package typewriter

import (
	"sync"
	"time"

	"github.com/Zachkp/portfolio/internal/clock"
)

// DefaultInterval is the delay between revealed runes.
const DefaultInterval = 50 * time.Millisecond

// Typewriter is a cancellable reveal effect. Each step schedules the next,
// so Stop leaves no timer behind.
type Typewriter struct {
	mu        sync.Mutex
	runes     []rune
	shown     int
	interval  time.Duration
	scheduler clock.Scheduler
	task      clock.Task
	running   bool
	gen       uint64
}

// New returns a stopped typewriter for text.
func New(text string, scheduler clock.Scheduler, interval time.Duration) *Typewriter {
	if scheduler == nil {
		scheduler = clock.Real{}
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Typewriter{
		runes:     []rune(text),
		interval:  interval,
		scheduler: scheduler,
	}
}

// Duration is how long a typewriter with interval takes to reveal text.
// Hosts that animate on the client use it to pace the same effect.
func Duration(text string, interval time.Duration) time.Duration {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return time.Duration(len([]rune(text))) * interval
}

// Start begins revealing from the first rune. Restarting resets progress.
func (t *Typewriter) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
	t.shown = 0
	t.running = true
	t.gen++
	t.scheduleLocked(t.gen)
}

func (t *Typewriter) scheduleLocked(gen uint64) {
	t.task = t.scheduler.AfterFunc(t.interval, func() {
		t.step(gen)
	})
}

func (t *Typewriter) step(gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running || gen != t.gen {
		return
	}
	if t.shown < len(t.runes) {
		t.shown++
	}
	if t.shown >= len(t.runes) {
		t.running = false
		t.task = nil
		return
	}
	t.scheduleLocked(gen)
}

// Text returns the revealed prefix.
func (t *Typewriter) Text() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.runes[:t.shown])
}

// Done reports whether the whole text is revealed.
func (t *Typewriter) Done() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.shown >= len(t.runes)
}

// Running reports whether a reveal step is scheduled.
func (t *Typewriter) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Stop cancels the pending step and keeps the revealed prefix.
func (t *Typewriter) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopLocked()
}

func (t *Typewriter) stopLocked() {
	if t.task != nil {
		t.task.Stop()
		t.task = nil
	}
	t.running = false
	t.gen++
}
