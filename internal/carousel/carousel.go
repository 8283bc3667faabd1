// Package carousel pages through a fixed list of slides a page at a time,
// with a transition lock that keeps at most one page change in flight.
package carousel

import (
	"sync"
	"time"

	"github.com/Zachkp/portfolio/internal/clock"
)

const (
	// DefaultTransitionDelay is how long a page change stays in flight.
	DefaultTransitionDelay = 150 * time.Millisecond
	// DefaultBreakpoint is the viewport width below which one slide is shown.
	DefaultBreakpoint = 768
)

// Phase is the controller state.
type Phase int

const (
	Idle Phase = iota
	Transitioning
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Transitioning:
		return "transitioning"
	default:
		return "unknown"
	}
}

// ItemsPerPage derives the page size from a viewport width.
func ItemsPerPage(width, breakpoint int) int {
	if width < breakpoint {
		return 1
	}
	return 2
}

type settings struct {
	delay time.Duration
}

// Option configures a Controller.
type Option func(*settings)

// WithTransitionDelay overrides the transition lock duration.
func WithTransitionDelay(d time.Duration) Option {
	return func(s *settings) {
		s.delay = d
	}
}

// Snapshot is a consistent read of the controller.
type Snapshot struct {
	Page          int
	TotalPages    int
	ItemsPerPage  int
	Transitioning bool
}

// Controller owns the paging state of one carousel instance. Page changes
// are committed by the scheduler callback, so all state is mutex guarded.
type Controller[T any] struct {
	mu        sync.Mutex
	items     []T
	perPage   int
	page      int
	phase     Phase
	pending   int
	gen       uint64
	task      clock.Task
	closed    bool
	scheduler clock.Scheduler
	delay     time.Duration
}

// New returns an idle controller on the first page. perPage values below one
// are treated as one.
func New[T any](items []T, perPage int, scheduler clock.Scheduler, opts ...Option) *Controller[T] {
	s := settings{delay: DefaultTransitionDelay}
	for _, opt := range opts {
		opt(&s)
	}
	if scheduler == nil {
		scheduler = clock.Real{}
	}
	if perPage < 1 {
		perPage = 1
	}
	return &Controller[T]{
		items:     items,
		perPage:   perPage,
		scheduler: scheduler,
		delay:     s.delay,
	}
}

func (c *Controller[T]) totalPagesLocked() int {
	return (len(c.items) + c.perPage - 1) / c.perPage
}

// Next requests the following page, wrapping from the last to the first.
func (c *Controller[T]) Next() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := c.totalPagesLocked()
	if total == 0 {
		return false
	}
	return c.beginLocked((c.page + 1) % total)
}

// Prev requests the preceding page, wrapping from the first to the last.
func (c *Controller[T]) Prev() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := c.totalPagesLocked()
	if total == 0 {
		return false
	}
	return c.beginLocked((c.page - 1 + total) % total)
}

// Goto requests page i. Requesting the current page is rejected.
func (c *Controller[T]) Goto(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i == c.page || i < 0 || i >= c.totalPagesLocked() {
		return false
	}
	return c.beginLocked(i)
}

// beginLocked enters Transitioning with the target fixed at request time.
func (c *Controller[T]) beginLocked(target int) bool {
	if c.closed || c.phase == Transitioning {
		return false
	}
	c.phase = Transitioning
	c.pending = target
	c.gen++
	gen := c.gen
	c.task = c.scheduler.AfterFunc(c.delay, func() {
		c.commit(gen)
	})
	return true
}

func (c *Controller[T]) commit(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.gen || c.phase != Transitioning {
		return
	}
	c.page = c.pending
	c.phase = Idle
	c.task = nil
}

// Resize recomputes the page size from a new viewport width. The current
// page is clamped so it stays in range. Ignored while transitioning.
func (c *Controller[T]) Resize(width, breakpoint int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	perPage := ItemsPerPage(width, breakpoint)
	if c.closed || c.phase == Transitioning || perPage == c.perPage {
		return false
	}
	first := c.page * c.perPage
	c.perPage = perPage
	c.page = first / perPage
	if total := c.totalPagesLocked(); c.page >= total {
		c.page = max(total-1, 0)
	}
	return true
}

// CurrentItems returns the slides on the current page. The last page may
// hold fewer than ItemsPerPage slides.
func (c *Controller[T]) CurrentItems() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	start := c.page * c.perPage
	if start >= len(c.items) {
		return []T{}
	}
	end := min(start+c.perPage, len(c.items))
	out := make([]T, end-start)
	copy(out, c.items[start:end])
	return out
}

// Page returns the current page index.
func (c *Controller[T]) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// TotalPages returns ceil(len(items)/ItemsPerPage).
func (c *Controller[T]) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPagesLocked()
}

// Transitioning reports whether a page change is in flight.
func (c *Controller[T]) Transitioning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase == Transitioning
}

// Phase returns the controller state.
func (c *Controller[T]) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Snapshot returns page, page count, page size and lock state together.
func (c *Controller[T]) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Page:          c.page,
		TotalPages:    c.totalPagesLocked(),
		ItemsPerPage:  c.perPage,
		Transitioning: c.phase == Transitioning,
	}
}

// TransitionDelay returns the configured lock duration.
func (c *Controller[T]) TransitionDelay() time.Duration {
	return c.delay
}

// Close cancels any pending transition. A closed controller rejects every
// request and late timer callbacks are discarded.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.task != nil {
		c.task.Stop()
		c.task = nil
	}
	c.closed = true
	c.gen++
	c.phase = Idle
}
