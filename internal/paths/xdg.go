// Package paths resolves XDG base directories for the holons SDK's
// on-disk config and runtime state.
package paths

import (
	"os"
	"path/filepath"
)

func homeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	h, _ := os.UserHomeDir()
	return h
}

func xdgDir(envVar, fallbackSuffix string) string {
	if v := os.Getenv(envVar); v != "" {
		return filepath.Join(v, "holons")
	}
	return filepath.Join(homeDir(), fallbackSuffix, "holons")
}

// ConfigDir returns the holons config directory ($XDG_CONFIG_HOME/holons).
func ConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// StateDir returns the holons state directory ($XDG_STATE_HOME/holons).
func StateDir() string {
	return xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

// RuntimeDir returns the holons runtime directory for sockets and state.
// Falls back to $XDG_STATE_HOME/holons if XDG_RUNTIME_DIR is unset.
func RuntimeDir() string {
	if v := os.Getenv("XDG_RUNTIME_DIR"); v != "" {
		return filepath.Join(v, "holons")
	}
	return StateDir()
}

// ConfigFile returns the path to config.toml.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// EnsureDir creates a directory and parents if needed.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0700)
}
