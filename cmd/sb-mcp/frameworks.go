// ABOUTME: frameworks and renderer subcommands for inspecting the renderer table
// ABOUTME: Output is styled with lipgloss, which drops color when not on a terminal

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mauromedda/storybook-mcp-go/internal/framework"
)

const suggestLimit = 3

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	frameworkCell = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func newFrameworksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "frameworks",
		Short: "List known frameworks and the renderer each maps to",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), frameworkTable())
		},
	}
}

func frameworkTable() string {
	names := framework.Frameworks()
	width := len("FRAMEWORK")
	for _, n := range names {
		width = max(width, len(n))
	}
	col := lipgloss.NewStyle().Width(width + 2)

	var b strings.Builder
	b.WriteString(headerStyle.Render(col.Render("FRAMEWORK") + "RENDERER"))
	b.WriteByte('\n')
	for _, n := range names {
		b.WriteString(col.Render(frameworkCell.Render(n)))
		b.WriteString(framework.RendererFor(n))
		b.WriteByte('\n')
	}
	return b.String()
}

func newRendererCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "renderer <framework>",
		Short: "Print the renderer for a framework package",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id := args[0]
			fmt.Fprintln(cmd.OutOrStdout(), framework.RendererFor(id))

			if _, ok := framework.LookupRenderer(id); ok {
				return
			}
			msg := fmt.Sprintf("%s is not a known framework; using it as the renderer", id)
			if s := framework.Suggest(id, suggestLimit); len(s) > 0 {
				msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(s, ", "))
			}
			fmt.Fprintln(cmd.ErrOrStderr(), dimStyle.Render(msg))
		},
	}
}
