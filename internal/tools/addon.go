// ABOUTME: Per-invocation addon context handed to tool handlers by the MCP layer
// ABOUTME: Carries the preset options, telemetry switch, origin, and toolset switches

package tools

import (
	"github.com/mauromedda/storybook-mcp-go/internal/preset"
)

// ToolsetDev groups the component development tools.
const ToolsetDev = "dev"

// Options is the Storybook options capability available to tools.
type Options struct {
	Presets preset.Resolver
}

// AddonContext is built fresh for each request by the dispatch layer.
type AddonContext struct {
	Options          *Options // nil when the host did not supply options
	DisableTelemetry bool
	Origin           string
	Toolsets         map[string]bool
}

// ToolsetEnabled reports whether a toolset is on. Toolsets are on unless
// explicitly set to false.
func (a *AddonContext) ToolsetEnabled(name string) bool {
	if a == nil {
		return true
	}
	on, ok := a.Toolsets[name]
	return !ok || on
}

// Call is one tool invocation.
type Call struct {
	SessionID string
	Addon     *AddonContext
	Arguments map[string]any
}
