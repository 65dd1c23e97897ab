// ABOUTME: CLI entry point for sb-mcp, the Storybook MCP server
// ABOUTME: Cobra root command with serve, instructions, frameworks, renderer, and version

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mauromedda/storybook-mcp-go/internal/config"
	"github.com/mauromedda/storybook-mcp-go/internal/log"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// rootFlags are shared by every subcommand.
type rootFlags struct {
	verbose bool
	project string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	root := &cobra.Command{
		Use:   "sb-mcp",
		Short: "Storybook MCP server for UI component development",
		Long: `sb-mcp exposes Storybook-aware tools to coding agents over the
Model Context Protocol.

Run "sb-mcp serve" from an MCP client configuration to start a stdio session,
or "sb-mcp serve --http :6008" to accept Streamable HTTP sessions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.verbose {
				log.SetLevel(log.LevelDebug)
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			log.Sync()
		},
	}

	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVarP(&flags.project, "project", "p", "", "Project root holding .sb-mcp/settings.yaml (default: current directory)")

	root.AddCommand(
		newServeCmd(&flags),
		newInstructionsCmd(&flags),
		newFrameworksCmd(),
		newRendererCmd(),
		newVersionCmd(),
	)
	return root
}

// loadSettings reads global and project settings for the selected project
// root, applying overrides now and after every reload.
func loadSettings(flags *rootFlags, overrides ...config.Override) (*config.Live, error) {
	root := flags.project
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		root = cwd
	}
	live, err := config.NewLive(root, overrides...)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return live, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sb-mcp %s (%s) built %s\n", version, commit, date)
		},
	}
}
