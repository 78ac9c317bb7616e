package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("expected missing config to be ignored, got %v", err)
	}
	if cfg.Practice.Lang != nil || cfg.LogLevel() != "info" {
		t.Fatalf("expected empty config with defaults, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[practice]
lang = "python"
linear = true
weak-top = 4

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Practice.Lang == nil || *cfg.Practice.Lang != "python" {
		t.Fatalf("unexpected lang: %v", cfg.Practice.Lang)
	}
	if cfg.Practice.Linear == nil || !*cfg.Practice.Linear {
		t.Fatalf("expected linear=true")
	}
	if cfg.Practice.WeakTop == nil || *cfg.Practice.WeakTop != 4 {
		t.Fatalf("unexpected weak-top: %v", cfg.Practice.WeakTop)
	}
	if cfg.Practice.FocusWeak != nil {
		t.Fatalf("expected unset focus-weak to stay nil")
	}
	if cfg.LogLevel() != "debug" {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel())
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[practice]\nwords = 25\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "practice.words") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDefaultPathsUseXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_STATE_HOME", "/state")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "codetype", "config.toml") {
		t.Fatalf("unexpected config path: %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "codetype", "codetype.db") {
		t.Fatalf("unexpected db path: %s", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/state", "codetype", "codetype.log") {
		t.Fatalf("unexpected log path: %s", got)
	}
	if got := DefaultCurriculumDir(); got != filepath.Join("/cfg", "codetype", "curriculum") {
		t.Fatalf("unexpected curriculum dir: %s", got)
	}
}
