package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/content"
)

var contentCmd = &cobra.Command{
	Use:   "content [file]",
	Short: "Validate portfolio content and print a summary",
	Long: `Loads the portfolio content (the file argument, the configured content_path,
or the embedded default), validates it and prints what each section holds.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var p *content.Portfolio
		var err error
		if len(args) == 1 {
			p, err = content.Load(args[0])
		} else {
			_, p, err = loadAll()
		}
		if err != nil {
			return err
		}
		printSummary(p)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(contentCmd)
}

func printSummary(p *content.Portfolio) {
	title := color.New(color.Bold, color.Underline)
	faint := color.New(color.Faint)
	ok := color.New(color.FgGreen)

	_, _ = title.Printf("%s — %s\n", p.Profile.Name, p.Profile.Title)
	_, _ = faint.Printf("\"%s\" — %s\n\n", p.Quote.Text, p.Quote.Author)

	_, _ = title.Println("Projects")
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow("TITLE", "TAGS", "LINK")
	for _, pr := range p.Projects {
		tbl.AddRow(pr.Icon+" "+pr.Title, strings.Join(pr.Tags, ", "), pr.Link)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println()

	_, _ = title.Println("Skills")
	tbl = uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("TAB", "COUNT", "AVERAGE")
	for _, c := range content.Categories() {
		list := p.SkillsFor(c)
		avg := 0
		for _, s := range list {
			avg += s.Level
		}
		if len(list) > 0 {
			avg /= len(list)
		}
		tbl.AddRow(string(c), len(list), fmt.Sprintf("%d%%", avg))
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println()

	_, _ = title.Println("Journey")
	first, last := p.Journey[0], p.Journey[len(p.Journey)-1]
	fmt.Printf("%d milestones, %s to %s\n\n", len(p.Journey), first.Date, last.Date)

	_, _ = title.Println("Contacts")
	tbl = uitable.New()
	tbl.Separator = "  "
	for _, c := range p.Contacts {
		tbl.AddRow(c.Platform, c.URL)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	fmt.Println()

	_, _ = ok.Println("✓ content is valid")
}
