// ABOUTME: Preset resolution: the options capability that answers named presets
// ABOUTME: Static and Func resolvers; settings-backed resolver for the framework preset

package preset

import (
	"context"

	"github.com/mauromedda/storybook-mcp-go/internal/config"
)

// Framework is the preset naming the active Storybook framework. Its value is
// a string or a {name, options} descriptor.
const Framework = "framework"

// Resolver answers preset queries, mirroring Storybook's presets.apply.
type Resolver interface {
	Apply(ctx context.Context, name string) (any, error)
}

// Func adapts a function to the Resolver interface.
type Func func(ctx context.Context, name string) (any, error)

func (f Func) Apply(ctx context.Context, name string) (any, error) {
	return f(ctx, name)
}

// Static resolves presets from a fixed map. Unknown presets resolve to nil,
// the same as an unset preset in Storybook.
type Static map[string]any

func (s Static) Apply(ctx context.Context, name string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s[name], nil
}

// FromSettings returns a resolver answering the framework preset from settings.
func FromSettings(s *config.Settings) Static {
	return Static{Framework: s.Framework.Value()}
}
