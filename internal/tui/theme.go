package tui

import "github.com/charmbracelet/lipgloss"

var (
	Primary  = lipgloss.Color("#a78bfa")
	Accent   = lipgloss.Color("#22d3ee")
	Text     = lipgloss.Color("#e5e7eb")
	Subtext  = lipgloss.Color("#9ca3af")
	Surface  = lipgloss.Color("#374151")
	Terminal = lipgloss.Color("#4ade80")

	Header = lipgloss.NewStyle().
		Foreground(Text).
		Padding(0, 1)

	HeaderScrolled = Header.
			Background(lipgloss.Color("#111827")).
			Bold(true)

	Brand     = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	NavItem   = lipgloss.NewStyle().Foreground(Text).Padding(0, 1)
	NavActive = lipgloss.NewStyle().Foreground(Primary).Underline(true).Padding(0, 1)
	MenuItem  = lipgloss.NewStyle().Foreground(Subtext).Padding(0, 1)
	MenuHot   = lipgloss.NewStyle().Foreground(Primary).Bold(true).Padding(0, 1)

	SectionTitle = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	Title        = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Muted        = lipgloss.NewStyle().Foreground(Subtext)
	Tag          = lipgloss.NewStyle().Foreground(Text).Background(Surface).Padding(0, 1)
	TabActive    = lipgloss.NewStyle().Foreground(lipgloss.Color("#111827")).Background(Primary).Padding(0, 1)
	Prompt       = lipgloss.NewStyle().Foreground(Terminal)
	Bar          = lipgloss.NewStyle().Foreground(Primary)
)
