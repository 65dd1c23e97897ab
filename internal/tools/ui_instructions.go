// ABOUTME: get-ui-building-instructions tool: framework-aware component building guide
// ABOUTME: Resolves the framework preset, maps it to a renderer, and renders the embedded template

package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mauromedda/storybook-mcp-go/internal/framework"
	"github.com/mauromedda/storybook-mcp-go/internal/instructions"
	"github.com/mauromedda/storybook-mcp-go/internal/log"
	"github.com/mauromedda/storybook-mcp-go/internal/preset"
	"github.com/mauromedda/storybook-mcp-go/internal/telemetry"
)

// Tool names.
const (
	GetUIBuildingInstructionsToolName = "get-ui-building-instructions"
	// GetStoryURLsToolName is the companion tool the instructions point agents
	// to once stories are written.
	GetStoryURLsToolName = "get-story-urls"
)

// EventUIBuildingInstructions is the telemetry event emitted per call.
const EventUIBuildingInstructions = "tool:getUIBuildingInstructions"

// ErrMissingConfiguration is returned when the addon context carries no options.
var ErrMissingConfiguration = errors.New("Options are required in addon context")

const uiInstructionsDescription = `Instructions on how to do UI component development. 
      
      ALWAYS call this tool before doing any UI/frontend/React/component development, including but not
      limited to adding or updating new components, pages, screens or layouts.`

// UIInstructions renders the UI building instructions for the active framework.
type UIInstructions struct {
	telemetry telemetry.Collector
	template  *instructions.Template
}

// NewUIInstructions creates the handler. A nil collector is replaced by
// telemetry.Nop and a nil template selects the embedded one.
func NewUIInstructions(collector telemetry.Collector, tmpl *instructions.Template) *UIInstructions {
	if collector == nil {
		collector = telemetry.Nop{}
	}
	if tmpl == nil {
		tmpl = instructions.UIBuilding()
	}
	return &UIInstructions{telemetry: collector, template: tmpl}
}

// NewGetUIBuildingInstructionsTool returns the registrable tool definition.
func NewGetUIBuildingInstructionsTool(collector telemetry.Collector) *Tool {
	h := NewUIInstructions(collector, nil)
	return &Tool{
		Name:        GetUIBuildingInstructionsToolName,
		Title:       "UI Component Building Instructions",
		Description: uiInstructionsDescription,
		Enabled: func(addon *AddonContext) bool {
			return addon.ToolsetEnabled(ToolsetDev)
		},
		Handler: h.Handle,
	}
}

// Handle runs one invocation. Every failure comes back as Err, including a
// panic in a preset resolver or collector.
func (u *UIInstructions) Handle(ctx context.Context, call Call) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("%s: session=%s: panic: %v", GetUIBuildingInstructionsToolName, call.SessionID, r)
			res = Err(fmt.Errorf("%v", r))
		}
	}()

	text, err := u.build(ctx, call)
	if err != nil {
		log.Debug("%s: session=%s: %v", GetUIBuildingInstructionsToolName, call.SessionID, err)
		return Err(err)
	}
	return Ok(text)
}

func (u *UIInstructions) build(ctx context.Context, call Call) (string, error) {
	addon := call.Addon
	if addon == nil || addon.Options == nil || addon.Options.Presets == nil {
		return "", ErrMissingConfiguration
	}

	if !addon.DisableTelemetry {
		err := u.telemetry.Collect(ctx, telemetry.Event{
			Name:      EventUIBuildingInstructions,
			SessionID: call.SessionID,
			Toolset:   ToolsetDev,
		})
		if err != nil {
			return "", err
		}
	}

	raw, err := addon.Options.Presets.Apply(ctx, preset.Framework)
	if err != nil {
		return "", err
	}

	fw := framework.NameOrUndefined(raw)
	renderer, ok := framework.LookupRenderer(fw)
	if !ok {
		renderer = fw
		log.Debug("no renderer mapped for framework %q (closest: %v)", fw, framework.Suggest(fw, 3))
	}

	return u.template.Render(instructions.Values{
		Framework:     fw,
		Renderer:      renderer,
		CompanionTool: GetStoryURLsToolName,
	}), nil
}
