// ABOUTME: Telemetry collection for tool invocations
// ABOUTME: Collector interface plus Nop, Func, Multi, and log-backed sinks

package telemetry

import (
	"context"
	"errors"

	"github.com/mauromedda/storybook-mcp-go/internal/log"
)

// Source tags every event emitted by this server.
const Source = "addon-mcp"

// Event describes one tool usage.
type Event struct {
	Name      string // e.g. "tool:getUIBuildingInstructions"
	SessionID string
	Toolset   string
}

// Collector receives telemetry events. Implementations must be safe for
// concurrent use.
type Collector interface {
	Collect(ctx context.Context, e Event) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Collect(context.Context, Event) error { return nil }

// Func adapts a function to the Collector interface.
type Func func(ctx context.Context, e Event) error

func (f Func) Collect(ctx context.Context, e Event) error { return f(ctx, e) }

// Multi fans an event out to every collector and joins their errors.
type Multi []Collector

func (m Multi) Collect(ctx context.Context, e Event) error {
	var errs []error
	for _, c := range m {
		if err := c.Collect(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Logger writes each event to the debug log.
type Logger struct{}

func (Logger) Collect(_ context.Context, e Event) error {
	log.Debug("telemetry %s: event=%s session=%s toolset=%s", Source, e.Name, e.SessionID, e.Toolset)
	return nil
}
