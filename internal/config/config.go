// ABOUTME: Settings loading with global + project YAML config merge
// ABOUTME: Project values override global ones; env vars are applied last

package config

import (
	"fmt"
	"maps"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mauromedda/storybook-mcp-go/internal/framework"
)

// Defaults applied when a setting is left unset.
const (
	DefaultOrigin         = "http://localhost:6006"
	DefaultMaxConcurrency = 4
)

// Settings holds the merged configuration.
type Settings struct {
	// Framework is the value answered for the "framework" preset.
	// Either a package name or {name, options}.
	Framework        framework.Preset `yaml:"framework,omitempty"`
	DisableTelemetry bool             `yaml:"disable_telemetry,omitempty"`
	Origin           string           `yaml:"origin,omitempty"`
	Toolsets         map[string]bool  `yaml:"toolsets,omitempty"`
	HTTPAddr         string           `yaml:"http_addr,omitempty"`
	MetricsAddr      string           `yaml:"metrics_addr,omitempty"`
	MaxConcurrency   int              `yaml:"max_concurrency,omitempty"`
}

// Load reads and merges global and project-local settings, then applies
// ${VAR} expansion and environment overrides.
func Load(projectRoot string) (*Settings, error) {
	global, err := loadFile(GlobalConfigFile())
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	project, err := loadFile(ProjectConfigFile(projectRoot))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	merged := merge(global, project)
	ResolveEnvVars(merged)
	ApplyEnv(merged)
	return merged, nil
}

// loadFile reads Settings from a YAML file. Returns zero Settings if the file
// does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge overlays project settings onto global settings.
// Non-zero project values override global values.
func merge(global, project *Settings) *Settings {
	if global == nil {
		global = &Settings{}
	}
	if project == nil {
		return global
	}

	result := *global
	result.Toolsets = maps.Clone(global.Toolsets)

	if !project.Framework.IsZero() {
		result.Framework = project.Framework
	}
	if project.DisableTelemetry {
		result.DisableTelemetry = true
	}
	if project.Origin != "" {
		result.Origin = project.Origin
	}
	if project.HTTPAddr != "" {
		result.HTTPAddr = project.HTTPAddr
	}
	if project.MetricsAddr != "" {
		result.MetricsAddr = project.MetricsAddr
	}
	if project.MaxConcurrency != 0 {
		result.MaxConcurrency = project.MaxConcurrency
	}

	if len(project.Toolsets) > 0 {
		if result.Toolsets == nil {
			result.Toolsets = make(map[string]bool)
		}
		maps.Copy(result.Toolsets, project.Toolsets)
	}

	return &result
}

// OriginOrDefault returns the configured origin or DefaultOrigin.
func (s *Settings) OriginOrDefault() string {
	if s.Origin == "" {
		return DefaultOrigin
	}
	return s.Origin
}

// Concurrency returns the maximum number of in-flight tool calls per session.
func (s *Settings) Concurrency() int {
	if s.MaxConcurrency <= 0 {
		return DefaultMaxConcurrency
	}
	return s.MaxConcurrency
}
