// ABOUTME: Prometheus-backed telemetry collector
// ABOUTME: Counts tool events by event name and toolset; sessions are not used as labels

package telemetry

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus counts events in a CounterVec.
type Prometheus struct {
	events *prometheus.CounterVec
}

// NewPrometheus registers the event counter with reg.
func NewPrometheus(reg prometheus.Registerer) (*Prometheus, error) {
	events := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sb_mcp",
			Name:      "tool_events_total",
			Help:      "Total number of tool telemetry events",
		},
		[]string{"event", "toolset"},
	)
	if err := reg.Register(events); err != nil {
		return nil, fmt.Errorf("register telemetry counter: %w", err)
	}
	return &Prometheus{events: events}, nil
}

func (p *Prometheus) Collect(ctx context.Context, e Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.events.WithLabelValues(e.Name, e.Toolset).Inc()
	return nil
}
