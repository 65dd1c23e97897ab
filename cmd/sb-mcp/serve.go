// ABOUTME: serve subcommand: runs the MCP server over stdio or Streamable HTTP
// ABOUTME: Flags override settings from config and survive settings reloads

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mauromedda/storybook-mcp-go/internal/config"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var (
		httpAddr    string
		metricsAddr string
		noTelemetry bool
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server (stdio by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := cmd.Flags().Changed
			live, err := loadSettings(flags, func(s *config.Settings) {
				if changed("http") {
					s.HTTPAddr = httpAddr
				}
				if changed("metrics") {
					s.MetricsAddr = metricsAddr
				}
				if changed("concurrency") {
					s.MaxConcurrency = concurrency
				}
				if noTelemetry {
					s.DisableTelemetry = true
				}
			})
			if err != nil {
				return err
			}

			rt, err := newRuntime(live)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return rt.serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&httpAddr, "http", "", "Serve Streamable HTTP on this address instead of stdio (e.g. :6008)")
	cmd.Flags().StringVar(&metricsAddr, "metrics", "", "Serve Prometheus metrics on a separate address")
	cmd.Flags().BoolVar(&noTelemetry, "no-telemetry", false, "Disable tool usage telemetry")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Maximum in-flight stdio requests")
	return cmd
}
