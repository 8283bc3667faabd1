// Package skills drives the tabbed skills display. Switching tabs shows a
// short loading state before the new tab is committed.
package skills

import (
	"sync"
	"time"

	"github.com/Zachkp/portfolio/internal/clock"
	"github.com/Zachkp/portfolio/internal/content"
)

// DefaultLoadingDelay is how long a tab switch shows the loading state.
const DefaultLoadingDelay = 200 * time.Millisecond

// Panel owns the active tab of one skills display.
type Panel struct {
	mu        sync.Mutex
	portfolio *content.Portfolio
	scheduler clock.Scheduler
	delay     time.Duration

	active  content.SkillCategory
	pending content.SkillCategory
	loading bool
	gen     uint64
	task    clock.Task
	closed  bool
}

// NewPanel returns a panel on the Frontend tab.
func NewPanel(p *content.Portfolio, scheduler clock.Scheduler, delay time.Duration) *Panel {
	if scheduler == nil {
		scheduler = clock.Real{}
	}
	if delay <= 0 {
		delay = DefaultLoadingDelay
	}
	return &Panel{
		portfolio: p,
		scheduler: scheduler,
		delay:     delay,
		active:    content.Frontend,
	}
}

// Select switches to tab after the loading delay. It is rejected while
// loading, for the active tab and for unknown tabs.
func (p *Panel) Select(tab content.SkillCategory) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.loading || tab == p.active {
		return false
	}
	if _, ok := content.ParseCategory(string(tab)); !ok {
		return false
	}
	p.loading = true
	p.pending = tab
	p.gen++
	gen := p.gen
	p.task = p.scheduler.AfterFunc(p.delay, func() {
		p.commit(gen)
	})
	return true
}

// Cycle selects the tab after the active one, wrapping around.
func (p *Panel) Cycle() bool {
	cats := content.Categories()
	p.mu.Lock()
	next := cats[0]
	for i, c := range cats {
		if c == p.active {
			next = cats[(i+1)%len(cats)]
			break
		}
	}
	p.mu.Unlock()
	return p.Select(next)
}

func (p *Panel) commit(gen uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || gen != p.gen || !p.loading {
		return
	}
	p.active = p.pending
	p.loading = false
	p.task = nil
}

// Active returns the committed tab.
func (p *Panel) Active() content.SkillCategory {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Loading reports whether a tab switch is in flight.
func (p *Panel) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// Skills returns the skills of the committed tab.
func (p *Panel) Skills() []content.Skill {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.portfolio.SkillsFor(p.active)
}

// Delay returns the loading duration.
func (p *Panel) Delay() time.Duration {
	return p.delay
}

// Close cancels a pending tab switch.
func (p *Panel) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.task != nil {
		p.task.Stop()
		p.task = nil
	}
	p.closed = true
	p.loading = false
	p.gen++
}
