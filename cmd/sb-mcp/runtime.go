// ABOUTME: Wires settings, telemetry, tools, and the MCP dispatcher for a process
// ABOUTME: Runs stdio or HTTP transports plus an optional Prometheus metrics listener

package main

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/storybook-mcp-go/internal/config"
	sbhttp "github.com/mauromedda/storybook-mcp-go/internal/http"
	"github.com/mauromedda/storybook-mcp-go/internal/log"
	"github.com/mauromedda/storybook-mcp-go/internal/mcp"
	"github.com/mauromedda/storybook-mcp-go/internal/preset"
	"github.com/mauromedda/storybook-mcp-go/internal/telemetry"
	"github.com/mauromedda/storybook-mcp-go/internal/tools"
)

const serverName = "storybook-mcp"

// runtime holds the per-process wiring.
type runtime struct {
	live     *config.Live
	registry *tools.Registry
	metrics  *prometheus.Registry
}

func newRuntime(live *config.Live) (*runtime, error) {
	metrics := prometheus.NewRegistry()
	counter, err := telemetry.NewPrometheus(metrics)
	if err != nil {
		return nil, err
	}

	reg := tools.NewRegistry()
	reg.Register(tools.NewGetUIBuildingInstructionsTool(telemetry.Multi{counter, telemetry.Logger{}}))

	if live.Current().Framework.IsZero() {
		log.Warn("no framework configured; set framework in %s or %s", config.ProjectConfigFile("."), config.EnvFramework)
	}

	return &runtime{live: live, registry: reg, metrics: metrics}, nil
}

// addonContext builds the per-request context the tools see from the
// settings in effect, so a reload applies to the next call.
func (rt *runtime) addonContext(sess *mcp.Session) *tools.AddonContext {
	s := rt.live.Current()
	return &tools.AddonContext{
		Options:          &tools.Options{Presets: preset.FromSettings(s)},
		DisableTelemetry: s.DisableTelemetry,
		Origin:           sess.Origin,
		Toolsets:         s.Toolsets,
	}
}

func (rt *runtime) dispatcher() *mcp.Dispatcher {
	return mcp.NewDispatcher(rt.registry, mcp.ServerInfo{Name: serverName, Version: version}, rt.addonContext)
}

func (rt *runtime) metricsHandler() http.Handler {
	return promhttp.HandlerFor(rt.metrics, promhttp.HandlerOpts{})
}

// httpMux routes /mcp and, when no separate metrics listener is configured, /metrics.
func (rt *runtime) httpMux(d *mcp.Dispatcher) *http.ServeMux {
	mux := http.NewServeMux()
	s := rt.live.Current()
	mux.Handle("/mcp", mcp.NewHTTPHandler(d, s.Origin))
	if s.MetricsAddr == "" {
		mux.Handle("/metrics", rt.metricsHandler())
	}
	return mux
}

// serve runs the configured transport until it ends or ctx is cancelled.
func (rt *runtime) serve(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	d := rt.dispatcher()
	// Listener addresses are fixed at startup; everything else follows reloads.
	s := rt.live.Current()

	g.Go(func() error { return rt.live.Watch(ctx, config.DefaultReloadInterval) })

	if addr := s.MetricsAddr; addr != "" {
		srv := sbhttp.NewServer(addr, rt.metricsHandler())
		log.Info("serving metrics on %s", addr)
		g.Go(func() error { return sbhttp.Run(ctx, srv) })
	}

	if addr := s.HTTPAddr; addr != "" {
		srv := sbhttp.NewServer(addr, rt.httpMux(d))
		log.Info("serving MCP over HTTP on %s/mcp", addr)
		g.Go(func() error { return sbhttp.Run(ctx, srv) })
	} else {
		sess := mcp.NewSession(s.OriginOrDefault())
		srv := mcp.NewServer(d, sess, in, out, s.Concurrency())
		log.Debug("serving MCP over stdio, session %s", sess.ID)
		g.Go(func() error {
			// stdin EOF ends the process, including any metrics listener.
			defer cancel()
			return runStdio(ctx, srv)
		})
	}

	return g.Wait()
}

// runStdio returns when the stream ends or ctx is cancelled. A read blocked
// on stdin cannot be interrupted, so on cancellation the reader is abandoned.
func runStdio(ctx context.Context, srv *mcp.Server) error {
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	select {
	case err := <-done:
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	case <-ctx.Done():
		return nil
	}
}
