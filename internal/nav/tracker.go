package nav

// Option configures a Tracker.
type Option func(*Tracker)

// WithThresholds overrides the default tuning constants.
func WithThresholds(th Thresholds) Option {
	return func(t *Tracker) {
		t.th = th
	}
}

// WithOnChange registers a hook called whenever the active section changes.
func WithOnChange(fn func(prev, next SectionID)) Option {
	return func(t *Tracker) {
		t.onChange = fn
	}
}

// Tracker keeps the active section consistent with the scroll position.
type Tracker struct {
	layout   Layout
	scroller Scroller
	th       Thresholds
	onChange func(prev, next SectionID)

	state  State
	cancel func()
}

// New returns an unmounted tracker.
func New(layout Layout, scroller Scroller, opts ...Option) *Tracker {
	t := &Tracker{
		layout:   layout,
		scroller: scroller,
		th:       DefaultThresholds(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Mount attaches the scroll listener and runs one scan so the initial
// active section is derived from the current layout.
func (t *Tracker) Mount(events Events) {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	if events != nil {
		t.cancel = events.Subscribe(t.OnScroll)
	}
	t.OnScroll()
}

// Mounted reports whether a scroll listener is attached.
func (t *Tracker) Mounted() bool {
	return t.cancel != nil
}

// Unmount detaches the scroll listener and resets the navigation state.
func (t *Tracker) Unmount() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.state = State{}
}

// OnScroll re-derives the scrolled flag and the active section.
func (t *Tracker) OnScroll() {
	if t.layout == nil {
		return
	}
	y := t.layout.ScrollY()
	t.state.Scrolled = y > t.th.ScrolledAfter

	if y+t.layout.ViewportHeight() >= t.layout.DocumentHeight()-t.th.BottomSlack {
		t.setActive(Contact)
		return
	}

	probe := y + t.th.LookAhead
	for i := len(order) - 1; i >= 0; i-- {
		top, ok := t.layout.OffsetTop(order[i])
		if !ok {
			continue
		}
		if top-t.th.PreTrigger <= probe {
			t.setActive(order[i])
			return
		}
	}
}

func (t *Tracker) setActive(id SectionID) {
	prev := t.state.Active
	if prev == id {
		return
	}
	t.state.Active = id
	if t.onChange != nil {
		t.onChange(prev, id)
	}
}

// ScrollToSection scrolls the target section into view and closes the
// mobile menu. A section with no rendered element is silently ignored.
func (t *Tracker) ScrollToSection(id SectionID) {
	if t.scroller != nil {
		t.scroller.ScrollIntoView(id)
	}
	t.state.MobileMenuOpen = false
}

// ToggleMobileMenu flips the mobile menu open flag.
func (t *Tracker) ToggleMobileMenu() {
	t.state.MobileMenuOpen = !t.state.MobileMenuOpen
}

// State returns a snapshot of the navigation state.
func (t *Tracker) State() State {
	return t.state
}

// Active returns the active section, or None before the first match.
func (t *Tracker) Active() SectionID {
	return t.state.Active
}

// IsActive reports whether id is the active section.
func (t *Tracker) IsActive(id SectionID) bool {
	return t.state.Active != None && t.state.Active == id
}
