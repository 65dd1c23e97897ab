// ABOUTME: Tool registry: registers, stores, and dispatches MCP tools
// ABOUTME: Tools carry an Enabled predicate evaluated per addon context

package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Dispatch errors. These are protocol-level failures, distinct from a tool
// returning Err.
var (
	ErrUnknownTool  = errors.New("unknown tool")
	ErrToolDisabled = errors.New("tool disabled")
)

// defaultInputSchema is used for tools that take no arguments.
var defaultInputSchema = json.RawMessage(`{"type":"object","properties":{}}`)

// Handler executes a tool call.
type Handler func(ctx context.Context, call Call) Result

// Tool describes a registered tool.
type Tool struct {
	Name        string
	Title       string
	Description string
	InputSchema json.RawMessage
	// Enabled reports whether the tool is offered for the given context.
	// A nil Enabled means always on.
	Enabled func(addon *AddonContext) bool
	Handler Handler
}

// IsEnabled evaluates the tool's Enabled predicate.
func (t *Tool) IsEnabled(addon *AddonContext) bool {
	return t.Enabled == nil || t.Enabled(addon)
}

// Schema returns the tool's input schema, defaulting to an empty object schema.
func (t *Tool) Schema() json.RawMessage {
	if len(t.InputSchema) == 0 {
		return defaultInputSchema
	}
	return t.InputSchema
}

// Registry manages the collection of available tools. Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]*Tool
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*Tool)}
}

// Register adds a tool, replacing any existing tool with the same name.
func (r *Registry) Register(tool *Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[tool.Name] = tool
}

// Get returns a tool by name, or nil if not found.
func (r *Registry) Get(name string) *Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tools[name]
}

// All returns every registered tool sorted by name.
func (r *Registry) All() []*Tool {
	r.mu.RLock()
	out := make([]*Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Enabled returns the tools whose predicate accepts addon, sorted by name.
func (r *Registry) Enabled(addon *AddonContext) []*Tool {
	var out []*Tool
	for _, t := range r.All() {
		if t.IsEnabled(addon) {
			out = append(out, t)
		}
	}
	return out
}

// Remove deletes a tool from the registry by name.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tools, name)
}

// Call looks up an enabled tool and runs it. The error is non-nil only for
// dispatch failures; tool failures are reported through the Result.
func (r *Registry) Call(ctx context.Context, name string, call Call) (Result, error) {
	tool := r.Get(name)
	if tool == nil {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	if !tool.IsEnabled(call.Addon) {
		return Result{}, fmt.Errorf("%w: %s", ErrToolDisabled, name)
	}
	return tool.Handler(ctx, call), nil
}
