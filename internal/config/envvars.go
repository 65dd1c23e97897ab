// ABOUTME: Environment variable expansion and overrides for settings
// ABOUTME: Replaces ${VAR} patterns in string fields; SB_MCP_* vars override file values

package config

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/mauromedda/storybook-mcp-go/internal/framework"
)

// Environment variables read by ApplyEnv.
const (
	EnvFramework            = "SB_MCP_FRAMEWORK"
	EnvDisableTelemetry     = "SB_MCP_DISABLE_TELEMETRY"
	EnvStorybookNoTelemetry = "STORYBOOK_DISABLE_TELEMETRY"
	EnvOrigin               = "SB_MCP_ORIGIN"
)

var envVarPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// ResolveEnvVars expands ${VAR} patterns in string fields of Settings.
func ResolveEnvVars(s *Settings) {
	s.Origin = expandEnv(s.Origin)
	s.HTTPAddr = expandEnv(s.HTTPAddr)
	s.MetricsAddr = expandEnv(s.MetricsAddr)

	switch d := s.Framework.Descriptor.(type) {
	case framework.PlainName:
		s.Framework.Descriptor = framework.PlainName(expandEnv(string(d)))
	case framework.Named:
		d.Name = expandEnv(d.Name)
		s.Framework.Descriptor = d
	}
}

// ApplyEnv overrides settings from SB_MCP_* variables. Storybook's own
// STORYBOOK_DISABLE_TELEMETRY is honoured as well.
func ApplyEnv(s *Settings) {
	if v := os.Getenv(EnvFramework); v != "" {
		s.Framework.Descriptor = framework.PlainName(v)
	}
	if v := os.Getenv(EnvOrigin); v != "" {
		s.Origin = v
	}
	if truthy(os.Getenv(EnvDisableTelemetry)) || truthy(os.Getenv(EnvStorybookNoTelemetry)) {
		s.DisableTelemetry = true
	}
}

// truthy accepts strconv.ParseBool values plus "yes"/"on".
func truthy(v string) bool {
	v = strings.TrimSpace(strings.ToLower(v))
	if v == "yes" || v == "on" {
		return true
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// expandEnv replaces ${VAR} with os.Getenv(VAR). Unset vars become "".
func expandEnv(s string) string {
	if s == "" {
		return s
	}
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}
