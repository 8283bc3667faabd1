// Package content holds the static portfolio copy: profile, projects,
// skills, learning journey and contact links. The default copy is embedded
// YAML; a site can point at its own file instead.
package content

import (
	"bytes"
	_ "embed"
	"html/template"
	"os"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

//go:embed portfolio.yaml
var defaultYAML []byte

// SkillCategory is one of the skills tabs.
type SkillCategory string

const (
	Frontend SkillCategory = "Frontend"
	Backend  SkillCategory = "Backend"
	DevOps   SkillCategory = "DevOps"
	Others   SkillCategory = "Others"
)

// Categories returns the skills tabs in display order.
func Categories() []SkillCategory {
	return []SkillCategory{Frontend, Backend, DevOps, Others}
}

// ParseCategory maps s onto a known skills tab.
func ParseCategory(s string) (SkillCategory, bool) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

type Profile struct {
	Name        string   `yaml:"name"`
	Handle      string   `yaml:"handle"`
	Host        string   `yaml:"host"`
	Title       string   `yaml:"title"`
	Tagline     string   `yaml:"tagline"`
	Roles       []string `yaml:"roles"`
	Pronouns    string   `yaml:"pronouns"`
	About       string   `yaml:"about"`
	Description string   `yaml:"description"`
	Code        []string `yaml:"code"`
	Focus       []string `yaml:"focus"`
	GitHub      string   `yaml:"github"`
}

type Quote struct {
	Text   string `yaml:"text"`
	Author string `yaml:"author"`
}

// Project is a gallery card. Description is markdown.
type Project struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Link        string   `yaml:"link"`
	Icon        string   `yaml:"icon"`
	Tags        []string `yaml:"tags"`
}

// Skill is a tool with a 0-100 proficiency level.
type Skill struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
	Icon  string `yaml:"icon"`
}

// JourneyItem is one learning-journey slide.
type JourneyItem struct {
	Date  string `yaml:"date"`
	Skill string `yaml:"skill"`
	Icon  string `yaml:"icon"`
}

type Contact struct {
	Platform string `yaml:"platform"`
	URL      string `yaml:"url"`
}

// Portfolio is the whole page copy.
type Portfolio struct {
	Profile  Profile                   `yaml:"profile"`
	Quote    Quote                     `yaml:"quote"`
	Projects []Project                 `yaml:"projects"`
	Skills   map[SkillCategory][]Skill `yaml:"skills"`
	Journey  []JourneyItem             `yaml:"journey"`
	Contacts []Contact                 `yaml:"contacts"`
}

// Default returns the embedded portfolio.
func Default() (*Portfolio, error) {
	p, err := Parse(defaultYAML)
	if err != nil {
		return nil, errors.Wrap(err, "embedded portfolio")
	}
	return p, nil
}

// Load reads and validates a portfolio file.
func Load(path string) (*Portfolio, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return p, nil
}

// LoadOrDefault loads path, or the embedded portfolio when path is empty.
func LoadOrDefault(path string) (*Portfolio, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}

// Parse decodes and validates portfolio YAML.
func Parse(data []byte) (*Portfolio, error) {
	var p Portfolio
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(err, "decoding portfolio yaml")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the invariants the page relies on.
func (p *Portfolio) Validate() error {
	if len(p.Journey) == 0 {
		return errors.New("journey must have at least one item")
	}
	for cat, skills := range p.Skills {
		if _, ok := ParseCategory(string(cat)); !ok {
			return errors.Errorf("unknown skill category %q", cat)
		}
		for _, s := range skills {
			if s.Level < 0 || s.Level > 100 {
				return errors.Errorf("skill %q level %d out of range 0..100", s.Name, s.Level)
			}
		}
	}
	for i, pr := range p.Projects {
		if pr.Title == "" {
			return errors.Errorf("project %d has no title", i)
		}
	}
	return nil
}

// SkillsFor returns the skills of a tab, or nil for an unknown tab.
func (p *Portfolio) SkillsFor(c SkillCategory) []Skill {
	return p.Skills[c]
}

var md = goldmark.New()

// ProjectHTML renders the markdown description of project i.
func (p *Portfolio) ProjectHTML(i int) (template.HTML, error) {
	if i < 0 || i >= len(p.Projects) {
		return "", errors.Errorf("project %d out of range", i)
	}
	return RenderMarkdown(p.Projects[i].Description)
}

// RenderMarkdown converts markdown copy into trusted HTML.
func RenderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", errors.Wrap(err, "rendering markdown")
	}
	return template.HTML(buf.String()), nil
}
