// ABOUTME: Converts tool Results into MCP tools/call payloads
// ABOUTME: Failures become a single "Error: <message>" text item with isError set

package mcp

import "github.com/mauromedda/storybook-mcp-go/internal/tools"

// ToolResultFromResult is the only place a tool Result is turned into wire format.
func ToolResultFromResult(r tools.Result) ToolCallResult {
	if r.IsError() {
		return ToolCallResult{
			Content: []ContentItem{{Type: "text", Text: "Error: " + r.Err.Error()}},
			IsError: true,
		}
	}
	return ToolCallResult{
		Content: []ContentItem{{Type: "text", Text: r.Text}},
	}
}
