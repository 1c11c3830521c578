package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `canvas:
  width: 1280
  height: 720
playback:
  poll_interval_ms: 100
  max_renders_per_sec: 5
  discovery_depth: 3
fonts:
  dir: /fonts
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Canvas.Width != 1280 || cfg.Canvas.Height != 720 {
		t.Fatalf("canvas = %+v", cfg.Canvas)
	}
	if cfg.Playback.MaxRendersPerSec != 5 || cfg.Playback.DiscoveryDepth != 3 {
		t.Fatalf("playback = %+v", cfg.Playback)
	}
	if cfg.Fonts.Dir != "/fonts" {
		t.Fatalf("fonts.dir = %q", cfg.Fonts.Dir)
	}
	if got := cfg.PollInterval(); got != 100*time.Millisecond {
		t.Fatalf("PollInterval = %v", got)
	}
}

func TestLoad_MissingExplicitFileErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit file")
	}
}

func TestLoad_NoFileYieldsZeroConfig(t *testing.T) {
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(oldwd) })
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != (Config{}) {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoad_InvalidYAMLErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("canvas: [not a map"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestConfig_PollIntervalDefault(t *testing.T) {
	var cfg Config
	if got := cfg.PollInterval(); got != 250*time.Millisecond {
		t.Fatalf("default poll interval = %v", got)
	}
}
