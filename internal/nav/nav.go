// Package nav tracks which page section is active while the viewport
// scrolls, and owns the header chrome state (scrolled, mobile menu).
//
// A Tracker is owned by exactly one view. It is not safe for concurrent use;
// the hosting view serializes scroll, click and teardown calls.
package nav

// SectionID names a logical page section.
type SectionID string

const (
	None     SectionID = ""
	Hero     SectionID = "hero"
	About    SectionID = "about"
	Projects SectionID = "projects"
	Skills   SectionID = "skills"
	Journey  SectionID = "journey"
	Contact  SectionID = "contact"
)

var order = []SectionID{Hero, About, Projects, Skills, Journey, Contact}

// Sections returns the section ids in page declaration order.
func Sections() []SectionID {
	out := make([]SectionID, len(order))
	copy(out, order)
	return out
}

// ParseSection maps s onto a known section id.
func ParseSection(s string) (SectionID, bool) {
	for _, id := range order {
		if string(id) == s {
			return id, true
		}
	}
	return None, false
}

func (id SectionID) String() string {
	return string(id)
}

// Layout answers live measurement queries against the rendered page.
// Offsets are queried on every scan; a Tracker never caches them.
type Layout interface {
	ScrollY() int
	ViewportHeight() int
	DocumentHeight() int
	// OffsetTop returns the top offset of the section element, or false when
	// the element is not rendered.
	OffsetTop(id SectionID) (int, bool)
}

// Scroller moves the viewport so the section top aligns with the viewport
// top. It returns false when there is no element to scroll to.
type Scroller interface {
	ScrollIntoView(id SectionID) bool
}

// Events delivers scroll notifications. The returned cancel func detaches
// the listener.
type Events interface {
	Subscribe(fn func()) (cancel func())
}

// Thresholds are the presentation tuning constants of the tracker, in the
// same units as the Layout (pixels on the web, lines in a terminal).
type Thresholds struct {
	// ScrolledAfter is the offset past which the header counts as scrolled.
	ScrolledAfter int
	// BottomSlack is how close to the document end forces the last section.
	BottomSlack int
	// LookAhead is added to the scroll offset before comparing.
	LookAhead int
	// PreTrigger activates a section this far before its top is reached.
	PreTrigger int
}

// DefaultThresholds are the browser tuning values.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ScrolledAfter: 50,
		BottomSlack:   100,
		LookAhead:     200,
		PreTrigger:    100,
	}
}

// State is a snapshot of the navigation chrome.
type State struct {
	Active         SectionID
	Scrolled       bool
	MobileMenuOpen bool
}
