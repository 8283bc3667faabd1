package web

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/nav"
)

// measuredLayout is the last set of page measurements a browser posted for
// its view. Each scroll request replaces it before the tracker scans.
type measuredLayout struct {
	y, vh, dh int
	offsets   map[nav.SectionID]int
	measured  bool
}

func (l *measuredLayout) ScrollY() int        { return l.y }
func (l *measuredLayout) ViewportHeight() int { return l.vh }
func (l *measuredLayout) DocumentHeight() int { return l.dh }

func (l *measuredLayout) OffsetTop(id nav.SectionID) (int, bool) {
	top, ok := l.offsets[id]
	return top, ok
}

// update reads y, vh, dh and offset_<section> form values. A request without
// measurements leaves the previous ones in place.
func (l *measuredLayout) update(c *gin.Context) bool {
	if _, ok := c.GetPostForm("vh"); !ok {
		return false
	}
	l.y = formInt(c, "y")
	l.vh = formInt(c, "vh")
	l.dh = formInt(c, "dh")
	l.offsets = make(map[nav.SectionID]int)
	for _, id := range nav.Sections() {
		raw, ok := c.GetPostForm("offset_" + string(id))
		if !ok {
			continue
		}
		if top, err := strconv.Atoi(raw); err == nil {
			l.offsets[id] = top
		}
	}
	l.measured = true
	return true
}

func formInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.PostForm(key))
	if err != nil {
		return 0
	}
	return n
}

// hxScroller asks the browser to scroll by answering with an HX-Trigger
// event. Only sections the browser reported as rendered are accepted.
type hxScroller struct {
	layout *measuredLayout
	target nav.SectionID
}

func (s *hxScroller) ScrollIntoView(id nav.SectionID) bool {
	if _, ok := s.layout.OffsetTop(id); !ok {
		return false
	}
	s.target = id
	return true
}

// take returns and clears the pending scroll target.
func (s *hxScroller) take() nav.SectionID {
	id := s.target
	s.target = nav.None
	return id
}
