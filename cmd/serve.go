package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/analytics"
	"github.com/Zachkp/portfolio/internal/web"
)

var noAnalytics bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, p, err := loadAll()
		if err != nil {
			return err
		}

		var opts []web.Option
		if !noAnalytics {
			store, err := analytics.Open(cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("opening analytics: %w", err)
			}
			defer store.Close()
			opts = append(opts, web.WithStore(store))
			log.Println("Privacy: Visitor tracking enabled with hashed IP addresses")
		}

		srv, err := web.New(cfg, p, opts...)
		if err != nil {
			return fmt.Errorf("creating server: %w", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&noAnalytics, "no-analytics", false, "disable visitor and section tracking")
	rootCmd.AddCommand(serveCmd)
}
