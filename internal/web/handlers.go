package web

import (
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/carousel"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/nav"
	"github.com/Zachkp/portfolio/internal/skills"
	"github.com/Zachkp/portfolio/internal/typewriter"
)

var navLabels = map[nav.SectionID]string{
	nav.About:    "About",
	nav.Projects: "Projects",
	nav.Skills:   "Skills",
	nav.Journey:  "Journey",
	nav.Contact:  "Contact",
}

type navItem struct {
	ID          nav.SectionID
	Label       string
	Active      bool
	Class       string
	MobileClass string
}

type navData struct {
	ViewID      string
	Brand       string
	Active      nav.SectionID
	HeaderClass string
	MenuOpen    bool
	Items       []navItem
}

type tagData struct {
	Name   string
	Hover  string
	Shadow template.CSS
}

type projectData struct {
	Title string
	HTML  template.HTML
	Link  string
	Tags  []tagData
}

type contactData struct {
	Platform string
	URL      string
	Hover    string
}

// pageContent is the part of the home page that does not depend on a view.
type pageContent struct {
	aboutHTML template.HTML
	projects  []projectData
	contacts  []contactData
}

type pageData struct {
	ViewID    string
	Profile   content.Profile
	Quote     content.Quote
	AboutHTML template.HTML
	Projects  []projectData
	Contacts  []contactData
	Sections  []nav.SectionID
	Nav       navData
	Year      int
	TypeSteps int
	TypeMS    int64
}

type dotData struct {
	Index  int
	Label  int
	Active bool
}

type journeyData struct {
	ViewID        string
	Page          int
	Total         int
	Transitioning bool
	PollMS        int64
	Items         []content.JourneyItem
	Dots          []dotData
}

type tabData struct {
	Name   content.SkillCategory
	Active bool
}

type skillsData struct {
	ViewID  string
	Active  content.SkillCategory
	Tabs    []tabData
	Loading bool
	PollMS  int64
	Skills  []content.Skill
}

func buildPageContent(p *content.Portfolio) (pageContent, error) {
	var pc pageContent
	about, err := content.RenderMarkdown(p.Profile.About)
	if err != nil {
		return pc, err
	}
	pc.aboutHTML = about

	for i, pr := range p.Projects {
		html, err := p.ProjectHTML(i)
		if err != nil {
			return pc, err
		}
		data := projectData{Title: pr.Title, HTML: html, Link: pr.Link}
		for _, tag := range pr.Tags {
			style := content.TagStyleFor(tag)
			data.Tags = append(data.Tags, tagData{
				Name:   tag,
				Hover:  style.Hover,
				Shadow: template.CSS(style.Shadow),
			})
		}
		pc.projects = append(pc.projects, data)
	}

	for _, c := range p.Contacts {
		pc.contacts = append(pc.contacts, contactData{
			Platform: c.Platform,
			URL:      c.URL,
			Hover:    content.ContactStyleFor(c.Platform).Hover,
		})
	}
	return pc, nil
}

func headerClass(scrolled bool) string {
	if scrolled {
		return "backdrop-blur-xl bg-background/70 border-b border-border/40 shadow-lg shadow-background/20"
	}
	return "backdrop-blur-sm bg-background/30 border-b border-transparent"
}

func navItemClass(active bool) string {
	if active {
		return "relative transition-all duration-500 text-primary after:absolute after:bottom-0 after:left-0 after:h-0.5 after:bg-primary after:transition-all after:duration-500 after:w-full"
	}
	return "relative transition-all duration-500 text-foreground hover:text-primary after:absolute after:bottom-0 after:left-0 after:h-0.5 after:bg-primary after:transition-all after:duration-500 after:w-0 hover:after:w-full"
}

func mobileNavItemClass(active bool) string {
	if active {
		return "py-2 px-4 rounded-md transition-all duration-500 text-left bg-primary/20 text-primary"
	}
	return "py-2 px-4 rounded-md transition-all duration-500 text-left hover:bg-primary/10 text-foreground"
}

func (s *Server) buildNav(v *view) navData {
	st := v.tracker.State()
	data := navData{
		ViewID:      v.id,
		Brand:       s.portfolio.Profile.Name,
		Active:      st.Active,
		HeaderClass: headerClass(st.Scrolled),
		MenuOpen:    st.MobileMenuOpen,
	}
	for _, id := range nav.Sections() {
		label, ok := navLabels[id]
		if !ok {
			continue
		}
		active := st.Active == id
		data.Items = append(data.Items, navItem{
			ID:          id,
			Label:       label,
			Active:      active,
			Class:       navItemClass(active),
			MobileClass: mobileNavItemClass(active),
		})
	}
	return data
}

func (s *Server) buildJourney(v *view) journeyData {
	snap := v.journey.Snapshot()
	data := journeyData{
		ViewID:        v.id,
		Page:          snap.Page,
		Total:         snap.TotalPages,
		Transitioning: snap.Transitioning,
		PollMS:        v.journey.TransitionDelay().Milliseconds(),
		Items:         v.journey.CurrentItems(),
	}
	for i := 0; i < snap.TotalPages; i++ {
		data.Dots = append(data.Dots, dotData{Index: i, Label: i + 1, Active: i == snap.Page})
	}
	return data
}

func (s *Server) buildSkills(v *view) skillsData {
	active := v.skills.Active()
	data := skillsData{
		ViewID:  v.id,
		Active:  active,
		Loading: v.skills.Loading(),
		PollMS:  v.skills.Delay().Milliseconds(),
		Skills:  v.skills.Skills(),
	}
	for _, c := range content.Categories() {
		data.Tabs = append(data.Tabs, tabData{Name: c, Active: c == active})
	}
	return data
}

func (s *Server) routes() {
	r := s.engine

	r.GET("/", s.handleIndex)
	r.GET("/healthz", s.handleHealth)
	r.POST("/contact", s.handleContact)

	views := r.Group("/views/:id")
	views.POST("/scroll", s.withView(s.handleScroll))
	views.POST("/nav/:section", s.withView(s.handleNav))
	views.POST("/menu", s.withView(s.handleMenu))
	views.GET("/journey", s.withView(s.handleJourney))
	views.POST("/journey/next", s.withView(s.handleJourneyNext))
	views.POST("/journey/prev", s.withView(s.handleJourneyPrev))
	views.POST("/journey/goto/:page", s.withView(s.handleJourneyGoto))
	views.GET("/skills", s.withView(s.handleSkills))
	views.POST("/skills/:tab", s.withView(s.handleSkillsTab))
	views.POST("/close", s.handleClose)

	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "not-found.html", gin.H{})
	})
}

// withView resolves the :id view and holds its lock for the handler.
func (s *Server) withView(fn func(c *gin.Context, v *view)) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := s.views.Get(c.Param("id"))
		if !ok {
			c.String(http.StatusNotFound, "This page has expired. Reload to continue.")
			return
		}
		v.mu.Lock()
		defer v.mu.Unlock()
		if v.closed {
			c.String(http.StatusNotFound, "This page has expired. Reload to continue.")
			return
		}
		fn(c, v)
	}
}

func (s *Server) handleIndex(c *gin.Context) {
	v := s.views.Open(c.ClientIP())
	v.mu.Lock()
	defer v.mu.Unlock()

	c.HTML(http.StatusOK, "index.html", pageData{
		ViewID:    v.id,
		Profile:   s.portfolio.Profile,
		Quote:     s.portfolio.Quote,
		AboutHTML: s.page.aboutHTML,
		Projects:  s.page.projects,
		Contacts:  s.page.contacts,
		Sections:  nav.Sections(),
		Nav:       s.buildNav(v),
		Year:      time.Now().Year(),
		TypeSteps: utf8.RuneCountInString(s.portfolio.Quote.Text),
		TypeMS:    typewriter.Duration(s.portfolio.Quote.Text, 0).Milliseconds(),
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"views":  s.views.Len(),
	})
}

// handleScroll mounts the tracker on the first measurement and re-runs the
// scan on every later one.
func (s *Server) handleScroll(c *gin.Context, v *view) {
	if v.layout.update(c) {
		if v.tracker.Mounted() {
			v.feed.Emit()
		} else {
			v.tracker.Mount(&v.feed)
		}
	}
	c.HTML(http.StatusOK, "nav.html", s.buildNav(v))
}

func (s *Server) handleNav(c *gin.Context, v *view) {
	v.layout.update(c)
	v.tracker.ScrollToSection(nav.SectionID(c.Param("section")))
	if target := v.scroller.take(); target != nav.None {
		trigger, err := json.Marshal(map[string]string{"scrollToSection": string(target)})
		if err == nil {
			c.Header("HX-Trigger", string(trigger))
		}
	}
	c.HTML(http.StatusOK, "nav.html", s.buildNav(v))
}

func (s *Server) handleMenu(c *gin.Context, v *view) {
	v.tracker.ToggleMobileMenu()
	c.HTML(http.StatusOK, "nav.html", s.buildNav(v))
}

func requestWidth(c *gin.Context) (int, bool) {
	raw, ok := c.GetQuery("width")
	if !ok {
		raw, ok = c.GetPostForm("width")
	}
	if !ok {
		return 0, false
	}
	w, err := strconv.Atoi(raw)
	if err != nil || w <= 0 {
		return 0, false
	}
	return w, true
}

// ensureJourney creates the carousel on first use and follows width changes
// afterwards. Without a width the desktop layout is assumed.
func (s *Server) ensureJourney(c *gin.Context, v *view) {
	bp := s.cfg.Carousel.Breakpoint
	width, ok := requestWidth(c)
	if v.journey == nil {
		if !ok {
			width = bp
		}
		v.journey = carousel.New(s.portfolio.Journey, carousel.ItemsPerPage(width, bp), s.scheduler,
			carousel.WithTransitionDelay(s.cfg.Carousel.TransitionDelay))
		return
	}
	if ok {
		v.journey.Resize(width, bp)
	}
}

func (s *Server) renderJourney(c *gin.Context, v *view) {
	c.HTML(http.StatusOK, "journey.html", s.buildJourney(v))
}

func (s *Server) handleJourney(c *gin.Context, v *view) {
	s.ensureJourney(c, v)
	s.renderJourney(c, v)
}

func (s *Server) handleJourneyNext(c *gin.Context, v *view) {
	s.ensureJourney(c, v)
	v.journey.Next()
	s.renderJourney(c, v)
}

func (s *Server) handleJourneyPrev(c *gin.Context, v *view) {
	s.ensureJourney(c, v)
	v.journey.Prev()
	s.renderJourney(c, v)
}

func (s *Server) handleJourneyGoto(c *gin.Context, v *view) {
	s.ensureJourney(c, v)
	if page, err := strconv.Atoi(c.Param("page")); err == nil {
		v.journey.Goto(page)
	}
	s.renderJourney(c, v)
}

func (s *Server) ensureSkills(v *view) {
	if v.skills == nil {
		v.skills = skills.NewPanel(s.portfolio, s.scheduler, s.cfg.Carousel.SkillsDelay)
	}
}

func (s *Server) handleSkills(c *gin.Context, v *view) {
	s.ensureSkills(v)
	c.HTML(http.StatusOK, "skills.html", s.buildSkills(v))
}

func (s *Server) handleSkillsTab(c *gin.Context, v *view) {
	s.ensureSkills(v)
	if tab, ok := content.ParseCategory(c.Param("tab")); ok {
		v.skills.Select(tab)
	}
	c.HTML(http.StatusOK, "skills.html", s.buildSkills(v))
}

func (s *Server) handleClose(c *gin.Context) {
	s.views.Close(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (s *Server) handleContact(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("fullName"))
	email := strings.TrimSpace(c.PostForm("email"))
	message := strings.TrimSpace(c.PostForm("message"))

	if name == "" || email == "" || message == "" {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Please fill in your name, email and message.",
		})
		return
	}

	if err := s.mailer.Send(name, email, message); err != nil {
		log.Printf("Error sending contact email: %v", err)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}
