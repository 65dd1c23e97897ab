// ABOUTME: Tests for the get-ui-building-instructions tool
// ABOUTME: Framework resolution, renderer fallback, telemetry gating, and error results

package tools

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mauromedda/storybook-mcp-go/internal/framework"
	"github.com/mauromedda/storybook-mcp-go/internal/instructions"
	"github.com/mauromedda/storybook-mcp-go/internal/preset"
	"github.com/mauromedda/storybook-mcp-go/internal/telemetry"
)

// recorder is a telemetry.Collector that remembers events and the order in
// which it was called relative to preset resolution.
type recorder struct {
	mu     sync.Mutex
	events []telemetry.Event
	trace  *[]string
	err    error
}

func (r *recorder) Collect(_ context.Context, e telemetry.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	if r.trace != nil {
		*r.trace = append(*r.trace, "telemetry")
	}
	return r.err
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func frameworkResolver(v any, trace *[]string) preset.Resolver {
	return preset.Func(func(_ context.Context, name string) (any, error) {
		if trace != nil {
			*trace = append(*trace, "apply:"+name)
		}
		return v, nil
	})
}

func callWith(v any) Call {
	return Call{
		SessionID: "test-session",
		Addon: &AddonContext{
			Origin:           "http://localhost:6006",
			Options:          &Options{Presets: frameworkResolver(v, nil)},
			DisableTelemetry: true,
		},
	}
}

func assertNoPlaceholders(t *testing.T, text string) {
	t.Helper()
	for _, tok := range []string{instructions.FrameworkToken, instructions.RendererToken, instructions.CompanionToolToken} {
		if strings.Contains(text, tok) {
			t.Errorf("output still contains %s", tok)
		}
	}
}

func TestUIInstructions_Frameworks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		preset       any
		wantFW       string
		wantRenderer string
	}{
		{"react vite", "@storybook/react-vite", "@storybook/react-vite", "@storybook/react"},
		{"vue", "@storybook/vue3-vite", "@storybook/vue3-vite", "@storybook/vue3"},
		{"stencil vite", "@storybook/stencil-vite", "@storybook/stencil-vite", "@storybook/web-components"},
		{"stencil", "@storybook/stencil", "@storybook/stencil", "@storybook/web-components"},
		{"object descriptor", map[string]any{"name": "@storybook/nextjs", "options": map[string]any{}}, "@storybook/nextjs", "@storybook/react"},
		{"typed descriptor", framework.Named{Name: "@nuxtjs/storybook"}, "@nuxtjs/storybook", "@storybook/vue3"},
		{"unmapped framework", "@storybook/ember", "@storybook/ember", "@storybook/ember"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewUIInstructions(nil, nil)
			res := h.Handle(context.Background(), callWith(tt.preset))
			if res.IsError() {
				t.Fatalf("Handle() error = %v", res.Err)
			}
			if !strings.Contains(res.Text, tt.wantFW) {
				t.Errorf("output missing framework %q", tt.wantFW)
			}
			if !strings.Contains(res.Text, tt.wantRenderer) {
				t.Errorf("output missing renderer %q", tt.wantRenderer)
			}
			if !strings.Contains(res.Text, GetStoryURLsToolName) {
				t.Errorf("output missing %q", GetStoryURLsToolName)
			}
			assertNoPlaceholders(t, res.Text)
		})
	}
}

func TestUIInstructions_ExactRendering(t *testing.T) {
	t.Parallel()

	tmpl := instructions.MustLoad("---\nplaceholders: [FRAMEWORK, RENDERER, GET_STORY_URLS_TOOL_NAME]\n---\n{{FRAMEWORK}}|{{RENDERER}}|{{GET_STORY_URLS_TOOL_NAME}}")
	h := NewUIInstructions(nil, tmpl)

	tests := []struct {
		preset any
		want   string
	}{
		{"@storybook/react-webpack5", "@storybook/react-webpack5|@storybook/react|get-story-urls"},
		{"@storybook/qwik-vite", "@storybook/qwik-vite|@storybook/qwik-vite|get-story-urls"},
		{nil, "undefined|undefined|get-story-urls"},
		{42, "undefined|undefined|get-story-urls"},
	}
	for _, tt := range tests {
		res := h.Handle(context.Background(), callWith(tt.preset))
		if res.IsError() || res.Text != tt.want {
			t.Errorf("Handle(%v) = %+v; want Ok(%q)", tt.preset, res, tt.want)
		}
	}
}

func TestUIInstructions_DescriptorMatchesPlainName(t *testing.T) {
	t.Parallel()

	h := NewUIInstructions(nil, nil)
	// "" is a present, empty name in both shapes; only absence renders undefined.
	for _, fw := range append(framework.Frameworks(), "", "@acme/unmapped") {
		plain := h.Handle(context.Background(), callWith(fw))
		named := h.Handle(context.Background(), callWith(map[string]any{"name": fw, "options": map[string]any{}}))
		if diff := cmp.Diff(plain.Text, named.Text); diff != "" {
			t.Errorf("%q: descriptor output differs (-plain +named):\n%s", fw, diff)
		}
		typed := h.Handle(context.Background(), callWith(framework.Named{Name: fw, Options: map[string]any{}}))
		if diff := cmp.Diff(plain.Text, typed.Text); diff != "" {
			t.Errorf("%q: Named output differs (-plain +typed):\n%s", fw, diff)
		}
	}
}

func TestUIInstructions_EmptyNameIsNotUndefined(t *testing.T) {
	t.Parallel()

	tmpl := instructions.MustLoad("---\nname: t\nplaceholders: [FRAMEWORK, RENDERER, GET_STORY_URLS_TOOL_NAME]\n---\n" +
		"{{FRAMEWORK}}|{{RENDERER}}|{{GET_STORY_URLS_TOOL_NAME}}")
	h := NewUIInstructions(nil, tmpl)

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"plain empty", "", "||get-story-urls"},
		{"object empty name", map[string]any{"name": "", "options": map[string]any{}}, "||get-story-urls"},
		{"object without name", map[string]any{"options": map[string]any{}}, "undefined|undefined|get-story-urls"},
		{"absent", nil, "undefined|undefined|get-story-urls"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := h.Handle(context.Background(), callWith(tt.in))
			if res.IsError() || res.Text != tt.want {
				t.Errorf("Handle(%#v) = %+v; want %q", tt.in, res, tt.want)
			}
		})
	}
}

func TestUIInstructions_MissingOptions(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	h := NewUIInstructions(rec, nil)

	for _, addon := range []*AddonContext{
		nil,
		{Origin: "http://localhost:6006"},
		{Options: &Options{}},
	} {
		res := h.Handle(context.Background(), Call{SessionID: "test-session", Addon: addon})
		if !errors.Is(res.Err, ErrMissingConfiguration) {
			t.Fatalf("Handle() = %+v; want ErrMissingConfiguration", res)
		}
		if res.Message() != "Options are required in addon context" {
			t.Errorf("Message() = %q", res.Message())
		}
	}
	if rec.count() != 0 {
		t.Errorf("telemetry called %d times; want 0", rec.count())
	}
}

func TestUIInstructions_TelemetryEnabled(t *testing.T) {
	t.Parallel()

	var trace []string
	rec := &recorder{trace: &trace}
	h := NewUIInstructions(rec, nil)

	call := Call{
		SessionID: "test-session",
		Addon: &AddonContext{
			Options: &Options{Presets: frameworkResolver("@storybook/react-vite", &trace)},
		},
	}
	res := h.Handle(context.Background(), call)
	if res.IsError() {
		t.Fatalf("Handle() error = %v", res.Err)
	}

	want := []telemetry.Event{{
		Name:      "tool:getUIBuildingInstructions",
		SessionID: "test-session",
		Toolset:   "dev",
	}}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"telemetry", "apply:framework"}, trace); diff != "" {
		t.Errorf("call order mismatch (-want +got):\n%s", diff)
	}
}

func TestUIInstructions_TelemetryDisabled(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	h := NewUIInstructions(rec, nil)

	h.Handle(context.Background(), callWith("@storybook/angular"))

	failing := callWith(nil)
	failing.Addon.Options.Presets = preset.Func(func(context.Context, string) (any, error) {
		return nil, errors.New("preset failed")
	})
	h.Handle(context.Background(), failing)

	if rec.count() != 0 {
		t.Errorf("telemetry called %d times; want 0", rec.count())
	}
}

func TestUIInstructions_UpstreamFailure(t *testing.T) {
	t.Parallel()

	call := callWith(nil)
	call.Addon.Options.Presets = preset.Func(func(context.Context, string) (any, error) {
		return nil, errors.New("Cannot find module '@storybook/react-vite'")
	})

	res := NewUIInstructions(nil, nil).Handle(context.Background(), call)
	if !res.IsError() {
		t.Fatal("Handle() expected error result")
	}
	if res.Message() != "Cannot find module '@storybook/react-vite'" {
		t.Errorf("Message() = %q; want upstream message unchanged", res.Message())
	}
	if res.Text != "" {
		t.Errorf("partial output returned on failure: %q", res.Text)
	}
}

func TestUIInstructions_ResolverPanic(t *testing.T) {
	t.Parallel()

	call := callWith(nil)
	call.Addon.Options.Presets = preset.Func(func(context.Context, string) (any, error) {
		panic("preset loader crashed")
	})

	res := NewUIInstructions(nil, nil).Handle(context.Background(), call)
	if !res.IsError() || res.Message() != "preset loader crashed" {
		t.Errorf("Handle() = %+v; want Err(preset loader crashed)", res)
	}
}

func TestUIInstructions_TelemetryFailure(t *testing.T) {
	t.Parallel()

	var trace []string
	rec := &recorder{trace: &trace, err: errors.New("telemetry endpoint unreachable")}
	call := Call{
		SessionID: "s",
		Addon:     &AddonContext{Options: &Options{Presets: frameworkResolver("@storybook/react-vite", &trace)}},
	}

	res := NewUIInstructions(rec, nil).Handle(context.Background(), call)
	if res.Message() != "telemetry endpoint unreachable" || !res.IsError() {
		t.Errorf("Handle() = %+v; want telemetry error", res)
	}
	if diff := cmp.Diff([]string{"telemetry"}, trace); diff != "" {
		t.Errorf("framework resolved after telemetry failure (-want +got):\n%s", diff)
	}
}

func TestUIInstructions_Idempotent(t *testing.T) {
	t.Parallel()

	h := NewUIInstructions(telemetry.Nop{}, nil)
	call := callWith("@storybook/svelte-vite")

	first := h.Handle(context.Background(), call)
	second := h.Handle(context.Background(), call)
	if diff := cmp.Diff(first.Text, second.Text); diff != "" || first.IsError() != second.IsError() {
		t.Errorf("repeated calls differ (-first +second):\n%s", diff)
	}
}

func TestGetUIBuildingInstructionsTool_Definition(t *testing.T) {
	t.Parallel()

	tool := NewGetUIBuildingInstructionsTool(nil)
	if tool.Name != "get-ui-building-instructions" {
		t.Errorf("Name = %q", tool.Name)
	}
	if tool.Title != "UI Component Building Instructions" {
		t.Errorf("Title = %q", tool.Title)
	}
	if !strings.Contains(tool.Description, "ALWAYS call this tool") {
		t.Errorf("Description = %q", tool.Description)
	}

	tests := []struct {
		name  string
		addon *AddonContext
		want  bool
	}{
		{"nil context", nil, true},
		{"no toolsets", &AddonContext{}, true},
		{"dev on", &AddonContext{Toolsets: map[string]bool{"dev": true}}, true},
		{"other toolset off", &AddonContext{Toolsets: map[string]bool{"docs": false}}, true},
		{"dev off", &AddonContext{Toolsets: map[string]bool{"dev": false}}, false},
	}
	for _, tt := range tests {
		if got := tool.IsEnabled(tt.addon); got != tt.want {
			t.Errorf("%s: IsEnabled() = %v; want %v", tt.name, got, tt.want)
		}
	}
}
