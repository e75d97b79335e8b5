// Package config resolves file locations and loads typed configuration from viper.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// AppName names the per-user config and data directories.
const AppName = "topics"

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// ConfigDir returns $XDG_CONFIG_HOME/topics, falling back to ~/.config/topics.
func ConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DataDir returns $XDG_DATA_HOME/topics, falling back to ~/.local/share/topics.
func DataDir() string {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// DefaultDatabasePath is the history database location when storage.path is unset.
func DefaultDatabasePath() string {
	return filepath.Join(DataDir(), "history.db")
}

// DefaultTokenFile is where the Google Sheets OAuth2 token is kept.
func DefaultTokenFile() string {
	return filepath.Join(ConfigDir(), "sheets-token.json")
}

func xdgDir(env, fallback string) string {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, AppName)
	}
	return filepath.Join(ExpandPath("~"), fallback, AppName)
}
