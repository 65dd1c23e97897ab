// ABOUTME: instructions subcommand: prints the UI building instructions locally
// ABOUTME: Renders markdown with glamour when stdout is a terminal

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mauromedda/storybook-mcp-go/internal/config"
	"github.com/mauromedda/storybook-mcp-go/internal/framework"
	"github.com/mauromedda/storybook-mcp-go/internal/mcp"
	"github.com/mauromedda/storybook-mcp-go/internal/tools"
)

const (
	renderAuto   = "auto"
	renderAlways = "always"
	renderNever  = "never"

	wordWrap = 100
)

func newInstructionsCmd(flags *rootFlags) *cobra.Command {
	var (
		fw     string
		render string
	)

	cmd := &cobra.Command{
		Use:   "instructions",
		Short: "Print the UI building instructions for the configured framework",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			live, err := loadSettings(flags, func(s *config.Settings) {
				if fw != "" {
					s.Framework.Descriptor = framework.PlainName(fw)
				}
				// Local invocations are never reported.
				s.DisableTelemetry = true
			})
			if err != nil {
				return err
			}

			rt, err := newRuntime(live)
			if err != nil {
				return err
			}
			text, err := rt.instructions(cmd.Context())
			if err != nil {
				return err
			}
			return writeMarkdown(cmd.OutOrStdout(), text, render)
		},
	}

	cmd.Flags().StringVarP(&fw, "framework", "f", "", "Framework package, e.g. @storybook/react-vite")
	cmd.Flags().StringVar(&render, "render", renderAuto, "Markdown rendering: auto, always, or never")
	return cmd
}

// instructions invokes the tool through the registry, as an MCP client would.
func (rt *runtime) instructions(ctx context.Context) (string, error) {
	sess := mcp.NewSession(rt.live.Current().OriginOrDefault())
	res, err := rt.registry.Call(ctx, tools.GetUIBuildingInstructionsToolName, tools.Call{
		SessionID: sess.ID,
		Addon:     rt.addonContext(sess),
	})
	if err != nil {
		return "", err
	}
	if res.IsError() {
		return "", res.Err
	}
	return res.Text, nil
}

func writeMarkdown(w io.Writer, text, mode string) error {
	pretty := false
	switch mode {
	case renderAlways:
		pretty = true
	case renderNever:
	case renderAuto:
		pretty = isTerminal(w)
	default:
		return fmt.Errorf("invalid --render %q: want %s, %s, or %s", mode, renderAuto, renderAlways, renderNever)
	}

	if pretty {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(wordWrap))
		if err != nil {
			return fmt.Errorf("creating markdown renderer: %w", err)
		}
		out, err := r.Render(text)
		if err != nil {
			return fmt.Errorf("rendering markdown: %w", err)
		}
		text = out
	}

	_, err := io.WriteString(w, text)
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
