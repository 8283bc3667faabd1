package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/content"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Personal portfolio site and terminal viewer",
	Long: `Portfolio serves a single-page developer portfolio over HTTP with HTMX,
or renders the same page in the terminal. Content comes from an embedded
YAML file unless content_path points at another one.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
}

// loadAll reads the configuration and the portfolio content it points at.
func loadAll() (*config.Config, *content.Portfolio, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	p, err := content.LoadOrDefault(cfg.ContentPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading content: %w", err)
	}
	return cfg, p, nil
}
