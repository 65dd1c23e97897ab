// ABOUTME: Live settings: the current merged Settings, swapped atomically on reload
// ABOUTME: Overrides (CLI flags) are re-applied after every reload

package config

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/mauromedda/storybook-mcp-go/internal/log"
)

// Override adjusts freshly loaded settings, e.g. from command-line flags.
type Override func(*Settings)

// Live holds the settings in effect for a running process.
type Live struct {
	projectRoot string
	overrides   []Override
	current     atomic.Pointer[Settings]
}

// NewLive loads settings for projectRoot and applies overrides.
func NewLive(projectRoot string, overrides ...Override) (*Live, error) {
	l := &Live{projectRoot: projectRoot, overrides: overrides}
	if err := l.Reload(); err != nil {
		return nil, err
	}
	return l, nil
}

// Fixed wraps settings that are never reloaded.
func Fixed(s *Settings) *Live {
	l := &Live{}
	l.current.Store(s)
	return l
}

// Current returns the settings in effect. Callers must not modify them.
func (l *Live) Current() *Settings {
	return l.current.Load()
}

// Paths returns the settings files a reload reads.
func (l *Live) Paths() []string {
	if l.projectRoot == "" {
		return nil
	}
	return []string{GlobalConfigFile(), ProjectConfigFile(l.projectRoot)}
}

// Reload re-reads settings. On error the previous settings stay in effect.
func (l *Live) Reload() error {
	if l.projectRoot == "" {
		return nil
	}
	s, err := Load(l.projectRoot)
	if err != nil {
		return err
	}
	for _, o := range l.overrides {
		o(s)
	}
	l.current.Store(s)
	return nil
}

// Watch reloads whenever a settings file changes, until ctx is cancelled.
func (l *Live) Watch(ctx context.Context, interval time.Duration) error {
	paths := l.Paths()
	if len(paths) == 0 {
		<-ctx.Done()
		return nil
	}
	w := NewWatcher(paths, interval, func() {
		if err := l.Reload(); err != nil {
			log.Warn("config: reload failed, keeping previous settings: %v", err)
			return
		}
		log.Info("config: reloaded settings from %s", l.projectRoot)
	})
	return w.Run(ctx)
}
