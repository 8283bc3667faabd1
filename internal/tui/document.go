package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/Zachkp/portfolio/internal/carousel"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/nav"
	"github.com/Zachkp/portfolio/internal/skills"
)

const barCells = 20

// document accumulates the rendered page and the first line of each section.
type document struct {
	b       strings.Builder
	lines   int
	offsets map[nav.SectionID]int
	width   int
}

func newDocument(width int) *document {
	return &document{
		offsets: make(map[nav.SectionID]int),
		width:   max(width, 20),
	}
}

func (d *document) line(s string) {
	d.b.WriteString(s)
	d.b.WriteByte('\n')
	d.lines += strings.Count(s, "\n") + 1
}

func (d *document) blank() {
	d.line("")
}

// paragraph wraps s to the document width with a two column indent.
func (d *document) paragraph(s string) {
	wrapped := wordwrap.String(s, d.width-4)
	d.line(indent.String(wrapped, 2))
}

func (d *document) section(id nav.SectionID, title string) {
	d.offsets[id] = d.lines
	d.line(SectionTitle.Render(title))
	d.blank()
}

func (d *document) String() string {
	return strings.TrimSuffix(d.b.String(), "\n")
}

// plainMarkdown drops inline emphasis markers for terminal output.
func plainMarkdown(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	return strings.ReplaceAll(s, "__", "")
}

// pageState is the live widget state the document is rendered from.
type pageState struct {
	typed   string
	typing  bool
	skills  *skills.Panel
	journey *carousel.Controller[content.JourneyItem]
}

func renderDocument(p *content.Portfolio, st pageState, width, viewportHeight int) *document {
	d := newDocument(width)

	d.section(nav.Hero, p.Profile.Name)
	d.line(Title.Render(p.Profile.Title))
	d.paragraph(p.Profile.Tagline)
	var roles []string
	for _, r := range p.Profile.Roles {
		roles = append(roles, Tag.Render(r))
	}
	d.line(strings.Join(roles, " "))
	// Keep the hero a full screen tall so the next section starts below it.
	for d.lines < viewportHeight {
		d.blank()
	}

	d.section(nav.About, "🧰 About Me And Tech Stack")
	d.paragraph(plainMarkdown(p.Profile.About))
	d.blank()
	cursor := ""
	if st.typing {
		cursor = "▌"
	}
	d.line("  " + Prompt.Render(p.Profile.Handle+"@"+p.Profile.Host+":~$") + " " + st.typed + cursor)
	d.line("  {")
	d.line(fmt.Sprintf("    nickname: '%s',", p.Profile.Name))
	d.line(fmt.Sprintf("    pronouns: '%s',", p.Profile.Pronouns))
	d.line(fmt.Sprintf("    desc: '%s',", p.Profile.Description))
	d.line(fmt.Sprintf("    code: [%s],", strings.Join(p.Profile.Code, ", ")))
	d.line(fmt.Sprintf("    focus: ['%s'],", strings.Join(p.Profile.Focus, "', '")))
	d.line("  }")
	d.blank()

	d.section(nav.Projects, "👨‍💻 Featured Creations")
	for _, pr := range p.Projects {
		d.line("  " + pr.Icon + " " + Title.Render(pr.Title))
		d.paragraph(plainMarkdown(pr.Description))
		var tags []string
		for _, t := range pr.Tags {
			tags = append(tags, Tag.Render(t))
		}
		d.line("  " + strings.Join(tags, " "))
		d.line("  " + Muted.Render(pr.Link))
		d.blank()
	}

	d.section(nav.Skills, "🛠️ Tech Stack")
	renderSkills(d, st.skills)
	d.blank()

	d.section(nav.Journey, "📈 My Learning Journey")
	renderJourney(d, st.journey)
	d.blank()

	d.section(nav.Contact, "📬 Let's Connect")
	for _, c := range p.Contacts {
		d.line(fmt.Sprintf("  %-10s %s", c.Platform, Muted.Render(c.URL)))
	}
	d.blank()
	d.line(Muted.Render(fmt.Sprintf("  \"%s\" — %s", p.Quote.Text, p.Quote.Author)))
	return d
}

func renderSkills(d *document, panel *skills.Panel) {
	active := panel.Active()
	var tabs []string
	for _, c := range content.Categories() {
		if c == active {
			tabs = append(tabs, TabActive.Render(string(c)))
		} else {
			tabs = append(tabs, Tag.Render(string(c)))
		}
	}
	d.line("  " + strings.Join(tabs, " "))
	d.blank()
	if panel.Loading() {
		d.line("  " + Muted.Render("⠋ loading…"))
		return
	}
	for _, s := range panel.Skills() {
		filled := s.Level * barCells / 100
		bar := Bar.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", barCells-filled))
		d.line(fmt.Sprintf("  %s %-14s %s %3d%%", s.Icon, s.Name, bar, s.Level))
	}
}

func renderJourney(d *document, c *carousel.Controller[content.JourneyItem]) {
	snap := c.Snapshot()
	if snap.Transitioning {
		d.line("  " + Muted.Render("⠋ loading…"))
	} else {
		for _, item := range c.CurrentItems() {
			d.line(fmt.Sprintf("  %s %s", item.Icon, Title.Render(item.Date)))
			d.paragraph(item.Skill)
		}
	}
	var dots []string
	for i := 0; i < snap.TotalPages; i++ {
		if i == snap.Page {
			dots = append(dots, Bar.Render("●"))
		} else {
			dots = append(dots, Muted.Render("○"))
		}
	}
	d.line("  ‹ " + strings.Join(dots, " ") + " ›")
}
