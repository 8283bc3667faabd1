// Package tui renders the portfolio in a terminal. The page scrolls inside a
// viewport and drives the same section tracker, journey carousel and skills
// panel as the web host, with line numbers standing in for pixels.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zachkp/portfolio/internal/carousel"
	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/nav"
	"github.com/Zachkp/portfolio/internal/skills"
	"github.com/Zachkp/portfolio/internal/typewriter"
)

const (
	headerLines = 2
	footerLines = 1
)

// Options tunes the terminal host.
type Options struct {
	Nav             nav.Thresholds
	Breakpoint      int
	TransitionDelay time.Duration
	SkillsDelay     time.Duration
	TypeInterval    time.Duration
}

// OptionsFrom maps the tui section of cfg onto Options.
func OptionsFrom(cfg *config.Config) Options {
	return Options{
		Nav: nav.Thresholds{
			ScrolledAfter: cfg.TUI.Nav.ScrolledAfter,
			BottomSlack:   cfg.TUI.Nav.BottomSlack,
			LookAhead:     cfg.TUI.Nav.LookAhead,
			PreTrigger:    cfg.TUI.Nav.PreTrigger,
		},
		Breakpoint:      cfg.TUI.Breakpoint,
		TransitionDelay: cfg.Carousel.TransitionDelay,
		SkillsDelay:     cfg.Carousel.SkillsDelay,
		TypeInterval:    cfg.TUI.TypeInterval,
	}
}

// docLayout measures the rendered document for the tracker and scrolls the
// viewport on its behalf.
type docLayout struct {
	vp      *viewport.Model
	offsets map[nav.SectionID]int
}

func (l *docLayout) ScrollY() int        { return l.vp.YOffset }
func (l *docLayout) ViewportHeight() int { return l.vp.Height }
func (l *docLayout) DocumentHeight() int { return l.vp.TotalLineCount() }

func (l *docLayout) OffsetTop(id nav.SectionID) (int, bool) {
	top, ok := l.offsets[id]
	return top, ok
}

func (l *docLayout) ScrollIntoView(id nav.SectionID) bool {
	top, ok := l.offsets[id]
	if !ok {
		return false
	}
	l.vp.SetYOffset(top)
	return true
}

// Model is the root Bubble Tea model.
type Model struct {
	portfolio *content.Portfolio
	opts      Options
	sched     *Scheduler
	keys      keyMap
	help      help.Model

	vp      viewport.Model
	layout  *docLayout
	feed    nav.Feed
	tracker *nav.Tracker
	journey *carousel.Controller[content.JourneyItem]
	skills  *skills.Panel
	typer   *typewriter.Typewriter

	width  int
	height int
	closed bool
}

// New builds the model at a default 80x24 size; the first WindowSizeMsg
// replaces it.
func New(p *content.Portfolio, opts Options) *Model {
	m := &Model{
		portfolio: p,
		opts:      opts,
		sched:     NewScheduler(),
		keys:      defaultKeys(),
		help:      help.New(),
		width:     80,
		height:    24,
	}
	m.vp = viewport.New(m.width, m.height-headerLines-footerLines)
	m.layout = &docLayout{vp: &m.vp}
	m.tracker = nav.New(m.layout, m.layout, nav.WithThresholds(opts.Nav))
	m.journey = carousel.New(p.Journey, carousel.ItemsPerPage(m.width, opts.Breakpoint), m.sched,
		carousel.WithTransitionDelay(opts.TransitionDelay))
	m.skills = skills.NewPanel(p, m.sched, opts.SkillsDelay)
	m.typer = typewriter.New(p.Quote.Text, m.sched, opts.TypeInterval)

	m.refresh()
	m.tracker.Mount(&m.feed)
	m.typer.Start()
	return m
}

func (m *Model) Init() tea.Cmd {
	return m.sched.drain()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case timerMsg:
		m.sched.fire(msg.id)
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.Close()
			return m, tea.Quit
		}
		m.handleKey(msg)
	case tea.MouseMsg:
		before := m.vp.YOffset
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		if m.vp.YOffset != before {
			m.feed.Emit()
		}
		m.refresh()
		return m, tea.Batch(cmd, m.sched.drain())
	}
	m.refresh()
	return m, m.sched.drain()
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.scrollBy(1)
	case key.Matches(msg, m.keys.Up):
		m.scrollBy(-1)
	case key.Matches(msg, m.keys.PageDown):
		m.scrollBy(m.vp.Height)
	case key.Matches(msg, m.keys.PageUp):
		m.scrollBy(-m.vp.Height)
	case key.Matches(msg, m.keys.Jump):
		i := int(msg.String()[0] - '1')
		m.tracker.ScrollToSection(nav.Sections()[i])
		m.feed.Emit()
	case key.Matches(msg, m.keys.Menu):
		m.tracker.ToggleMobileMenu()
	case key.Matches(msg, m.keys.Next):
		m.journey.Next()
	case key.Matches(msg, m.keys.Prev):
		m.journey.Prev()
	case key.Matches(msg, m.keys.Tab):
		m.skills.Cycle()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
}

func (m *Model) scrollBy(n int) {
	before := m.vp.YOffset
	m.vp.SetYOffset(before + n)
	if m.vp.YOffset != before {
		m.feed.Emit()
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.vp.Width = width
	m.vp.Height = max(height-headerLines-footerLines, 1)
	m.help.Width = width
	m.journey.Resize(width, m.opts.Breakpoint)
	m.refresh()
	m.feed.Emit()
}

// refresh re-renders the document from the current widget state.
func (m *Model) refresh() {
	doc := renderDocument(m.portfolio, pageState{
		typed:   m.typer.Text(),
		typing:  m.typer.Running(),
		skills:  m.skills,
		journey: m.journey,
	}, m.width, m.vp.Height)
	m.layout.offsets = doc.offsets
	m.vp.SetContent(doc.String())
}

// Close detaches the tracker and cancels every pending timer.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.tracker.Unmount()
	m.journey.Close()
	m.skills.Close()
	m.typer.Stop()
}

// State returns the tracker state.
func (m *Model) State() nav.State {
	return m.tracker.State()
}

func (m *Model) View() string {
	if m.closed {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.vp.View(),
		m.help.View(m.keys),
	)
}

func (m *Model) renderHeader() string {
	st := m.tracker.State()
	style := Header
	if st.Scrolled {
		style = HeaderScrolled
	}

	compact := m.width < m.opts.Breakpoint
	top := []string{Brand.Render("<" + m.portfolio.Profile.Name + " />")}
	if !compact {
		for _, id := range nav.Sections()[1:] {
			top = append(top, navLabel(id, st.Active == id, NavItem, NavActive))
		}
	} else {
		top = append(top, Muted.Render("m: menu"))
	}

	second := ""
	if st.MobileMenuOpen {
		var items []string
		for i, id := range nav.Sections() {
			items = append(items, navLabel(id, st.Active == id, MenuItem, MenuHot, i+1))
		}
		second = strings.Join(items, "")
	} else {
		second = Muted.Render(strings.Repeat("─", max(m.width-2, 0)))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		style.Width(m.width).Render(strings.Join(top, " ")),
		lipgloss.NewStyle().MaxWidth(m.width).Render(second),
	)
}

func navLabel(id nav.SectionID, active bool, normal, hot lipgloss.Style, number ...int) string {
	label := strings.ToUpper(string(id)[:1]) + string(id)[1:]
	if len(number) > 0 {
		label = string(rune('0'+number[0])) + " " + label
	}
	if active {
		return hot.Render(label)
	}
	return normal.Render(label)
}
