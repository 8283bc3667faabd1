package web

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Zachkp/portfolio/internal/carousel"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/nav"
	"github.com/Zachkp/portfolio/internal/skills"
)

// view is the state one open browser page owns on the server. Handlers hold
// mu for the whole request so the tracker sees calls one at a time.
type view struct {
	mu       sync.Mutex
	id       string
	clientIP string
	lastSeen time.Time

	layout   *measuredLayout
	scroller *hxScroller
	feed     nav.Feed
	tracker  *nav.Tracker
	journey  *carousel.Controller[content.JourneyItem]
	skills   *skills.Panel
	closed   bool
}

// teardown detaches the scroll listener and cancels pending timers.
// Requests that fetched the view before it was closed see closed and stop.
func (v *view) teardown() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	v.tracker.Unmount()
	if v.journey != nil {
		v.journey.Close()
	}
	if v.skills != nil {
		v.skills.Close()
	}
}

// Registry tracks open views by id and expires the idle ones.
type Registry struct {
	mu    sync.Mutex
	views map[string]*view
	ttl   time.Duration
	now   func() time.Time
	build func(v *view)
}

// NewRegistry returns an empty registry. build wires the per-view tracker.
func NewRegistry(ttl time.Duration, build func(v *view)) *Registry {
	return &Registry{
		views: make(map[string]*view),
		ttl:   ttl,
		now:   time.Now,
		build: build,
	}
}

// Open allocates a new view for a page load.
func (r *Registry) Open(clientIP string) *view {
	layout := &measuredLayout{}
	v := &view{
		id:       uuid.New().String(),
		clientIP: clientIP,
		layout:   layout,
		scroller: &hxScroller{layout: layout},
	}
	r.build(v)

	r.mu.Lock()
	defer r.mu.Unlock()
	v.lastSeen = r.now()
	r.views[v.id] = v
	return v
}

// Get returns the view and marks it as recently used.
func (r *Registry) Get(id string) (*view, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.views[id]
	if ok {
		v.lastSeen = r.now()
	}
	return v, ok
}

// Close tears the view down and forgets it.
func (r *Registry) Close(id string) bool {
	r.mu.Lock()
	v, ok := r.views[id]
	delete(r.views, id)
	r.mu.Unlock()

	if ok {
		v.teardown()
	}
	return ok
}

// Len reports the number of open views.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// Sweep closes views idle for longer than the ttl.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	var stale []*view
	for id, v := range r.views {
		if v.lastSeen.Before(cutoff) {
			stale = append(stale, v)
			delete(r.views, id)
		}
	}
	r.mu.Unlock()

	for _, v := range stale {
		v.teardown()
	}
	return len(stale)
}

// CloseAll tears down every open view.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	views := r.views
	r.views = make(map[string]*view)
	r.mu.Unlock()

	for _, v := range views {
		v.teardown()
	}
}

// Run sweeps idle views every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
