// Package config handles the optional subtitle-engine config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds tunables shared by the CLI commands. Zero values fall
// back to the built-in defaults.
type Config struct {
	Canvas   CanvasConfig   `yaml:"canvas"`
	Playback PlaybackConfig `yaml:"playback"`
	Fonts    FontsConfig    `yaml:"fonts"`
}

// CanvasConfig sets the rendering canvas. When unset, the script's own
// PlayResX/PlayResY metadata wins.
type CanvasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type PlaybackConfig struct {
	// PollIntervalMs is how often the playback position is sampled.
	PollIntervalMs int `yaml:"poll_interval_ms"`
	// MaxRendersPerSec caps native re-rasterization frequency.
	MaxRendersPerSec float64 `yaml:"max_renders_per_sec"`
	// DiscoveryDepth bounds recursive subtitle search in tree sources.
	DiscoveryDepth int `yaml:"discovery_depth"`
}

type FontsConfig struct {
	// Dir holds extra font files handed to the renderer before drawing.
	Dir string `yaml:"dir"`
}

func (c Config) PollInterval() time.Duration {
	if c.Playback.PollIntervalMs <= 0 {
		return 250 * time.Millisecond
	}
	return time.Duration(c.Playback.PollIntervalMs) * time.Millisecond
}

// DefaultSearchPaths returns the config file search order: the working
// directory first, then the user config directory.
func DefaultSearchPaths() []string {
	paths := []string{"subtitle-engine.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "subtitle-engine", "config.yaml"))
	}
	return paths
}

// Load reads a config file. If explicit is empty the default search
// paths are tried and a missing file yields the zero config.
func Load(explicit string) (Config, error) {
	var cfg Config
	path := explicit
	if path == "" {
		for _, p := range DefaultSearchPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
		if path == "" {
			return cfg, nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
