package paths

import (
	"path/filepath"
	"testing"
)

func TestRuntimeDirUsesXDGStateHomeFallback(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")
	t.Setenv("XDG_STATE_HOME", "/tmp/state-home")
	t.Setenv("HOME", "/tmp/home")

	got := RuntimeDir()
	want := filepath.Join("/tmp/state-home", "holons")
	if got != want {
		t.Fatalf("RuntimeDir() = %q, want %q", got, want)
	}
}

func TestRuntimeDirFallsBackToHomeLocalState(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "")
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("HOME", "/tmp/home")

	got := RuntimeDir()
	want := filepath.Join("/tmp/home", ".local", "state", "holons")
	if got != want {
		t.Fatalf("RuntimeDir() = %q, want %q", got, want)
	}
}

func TestRuntimeDirPrefersXDGRuntimeDir(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/tmp/xdg-runtime")
	t.Setenv("XDG_STATE_HOME", "/tmp/state-home")

	got := RuntimeDir()
	want := filepath.Join("/tmp/xdg-runtime", "holons")
	if got != want {
		t.Fatalf("RuntimeDir() = %q, want %q", got, want)
	}
}

func TestConfigFileJoinsConfigDirAndFilename(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/config-home")

	got := ConfigFile()
	want := filepath.Join("/tmp/config-home", "holons", "config.toml")
	if got != want {
		t.Fatalf("ConfigFile() = %q, want %q", got, want)
	}
}
