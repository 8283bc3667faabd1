package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	p, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if len(p.Journey) != 18 {
		t.Errorf("expected 18 journey items, got %d", len(p.Journey))
	}
	last := p.Journey[len(p.Journey)-1]
	if last != (JourneyItem{Date: "May 2025", Skill: "Present Day", Icon: "📍"}) {
		t.Errorf("unexpected last journey item %+v", last)
	}
	if len(p.Projects) != 6 {
		t.Errorf("expected 6 projects, got %d", len(p.Projects))
	}
	for _, c := range Categories() {
		if len(p.SkillsFor(c)) == 0 {
			t.Errorf("category %s has no skills", c)
		}
	}
	if len(p.Contacts) != 6 {
		t.Errorf("expected 6 contacts, got %d", len(p.Contacts))
	}
	if p.Quote.Text == "" {
		t.Errorf("expected a quote")
	}
}

func TestParseRejectsInvalidContent(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "empty journey",
			yaml: "projects: []\n",
			want: "journey",
		},
		{
			name: "level out of range",
			yaml: "journey: [{date: x, skill: y, icon: z}]\nskills:\n  Frontend: [{name: Go, level: 120}]\n",
			want: "out of range",
		},
		{
			name: "unknown category",
			yaml: "journey: [{date: x, skill: y, icon: z}]\nskills:\n  Mobile: [{name: Swift, level: 10}]\n",
			want: "unknown skill category",
		},
		{
			name: "bad yaml",
			yaml: "journey: [",
			want: "decoding",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	data := "journey:\n  - {date: Jan 2020, skill: Go, icon: \"🐹\"}\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	p, err := LoadOrDefault(path)
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if len(p.Journey) != 1 || p.Journey[0].Skill != "Go" {
		t.Fatalf("unexpected journey %+v", p.Journey)
	}

	if _, err := LoadOrDefault(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	def, err := LoadOrDefault("")
	if err != nil || len(def.Journey) != 18 {
		t.Fatalf("expected embedded portfolio, got %v", err)
	}
}

func TestTagStyleFallback(t *testing.T) {
	if got := TagStyleFor("Docker"); got.Hover != "hover:bg-blue-500/20 hover:text-blue-300" {
		t.Errorf("unexpected docker style %+v", got)
	}
	for _, tag := range []string{"Framer Motion", "", "docker"} {
		if got := TagStyleFor(tag); got != DefaultTagStyle {
			t.Errorf("tag %q: expected fallback, got %+v", tag, got)
		}
	}
}

func TestContactStyleFallback(t *testing.T) {
	if got := ContactStyleFor("GitHub"); got == DefaultContactStyle {
		t.Errorf("expected dedicated GitHub style")
	}
	if got := ContactStyleFor("Mastodon"); got != DefaultContactStyle {
		t.Errorf("expected fallback, got %+v", got)
	}
}

func TestProjectHTML(t *testing.T) {
	p, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	html, err := p.ProjectHTML(1)
	if err != nil {
		t.Fatalf("ProjectHTML: %v", err)
	}
	if !strings.Contains(string(html), "<strong>e-commerce</strong>") {
		t.Errorf("expected rendered emphasis, got %s", html)
	}
	if _, err := p.ProjectHTML(42); err == nil {
		t.Errorf("expected out of range error")
	}
}

func TestParseCategory(t *testing.T) {
	if c, ok := ParseCategory("DevOps"); !ok || c != DevOps {
		t.Fatalf("expected DevOps")
	}
	if _, ok := ParseCategory("devops"); ok {
		t.Fatalf("categories are case sensitive")
	}
}
