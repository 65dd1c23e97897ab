// ABOUTME: Standard filesystem paths for sb-mcp configuration
// ABOUTME: Resolves ~/.sb-mcp/ for global and .sb-mcp/ for project-local settings

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName  = ".sb-mcp"
	projectDirName = ".sb-mcp"
	settingsFile   = "settings.yaml"
)

// GlobalDir returns the user-global config directory (~/.sb-mcp/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// ProjectDir returns the project-local config directory (.sb-mcp/ in the project root).
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, projectDirName)
}

// GlobalConfigFile returns the path to the global settings file.
func GlobalConfigFile() string {
	return filepath.Join(GlobalDir(), settingsFile)
}

// ProjectConfigFile returns the path to the project-local settings file.
func ProjectConfigFile(projectRoot string) string {
	return filepath.Join(ProjectDir(projectRoot), settingsFile)
}
