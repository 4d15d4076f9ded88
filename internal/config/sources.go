package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// EnvConfigFile names a user config file explicitly. When set it replaces
// the user-level search below; the project file still applies on top.
const EnvConfigFile = "TASKLINE_CONFIG"

// projectConfigNames are tried in order in the working directory.
var projectConfigNames = []string{"taskline.toml", ".taskline.toml"}

// findProjectConfigFile returns the first project config file in the
// working directory, or "" when there is none.
func findProjectConfigFile() string {
	return firstExisting(projectConfigNames)
}

// findUserConfigFile returns the user-level config file. An explicit
// TASKLINE_CONFIG path must exist; the discovered locations are optional.
func findUserConfigFile() (string, error) {
	if explicit := strings.TrimSpace(os.Getenv(EnvConfigFile)); explicit != "" {
		path := expandPath(explicit)
		info, err := os.Stat(path)
		if err != nil {
			return "", fmt.Errorf("%s: %w", EnvConfigFile, err)
		}
		if info.IsDir() {
			return "", fmt.Errorf("%s: %s is a directory", EnvConfigFile, path)
		}
		return path, nil
	}
	return firstExisting(userConfigCandidates()), nil
}

// userConfigCandidates lists the user-level locations in priority order:
// ~/.taskline/taskline.toml, then <os config dir>/taskline/taskline.toml.
func userConfigCandidates() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".taskline", "taskline.toml"))
	}
	if dir := osUserConfigDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "taskline", "taskline.toml"))
	}
	return paths
}

// firstExisting returns the first path that exists as a regular file.
func firstExisting(paths []string) string {
	for _, p := range paths {
		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// osUserConfigDir returns the per-OS config directory, or "" when it
// cannot be determined.
func osUserConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return os.Getenv("APPDATA")
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ".config")
		}
	}
	return ""
}
