// Package config loads the TOML configuration controlling themes,
// default grid shape, and state/preset directories.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// GridConfig is the default shape for new grid dashboards.
type GridConfig struct {
	Rows        int     `toml:"rows"`
	Cols        int     `toml:"cols"`
	MinTrackPct float64 `toml:"min_track_pct"`
}

// Config is the top-level configuration.
type Config struct {
	Theme     string     `toml:"theme"`      // auto, mocha, latte, plain
	StateDir  string     `toml:"state_dir"`  // layout persistence root
	PresetDir string     `toml:"preset_dir"` // dashboard preset files
	Mouse     bool       `toml:"mouse"`      // enable mouse tracking
	Grid      GridConfig `toml:"grid"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Theme:     "auto",
		StateDir:  filepath.Join(stateHome(), "tessera"),
		PresetDir: filepath.Join(configHome(), "tessera", "presets"),
		Mouse:     true,
		Grid: GridConfig{
			Rows:        2,
			Cols:        2,
			MinTrackPct: 0.1,
		},
	}
}

// DefaultPath returns the config file location, honoring
// TESSERA_CONFIG.
func DefaultPath() string {
	if p := os.Getenv("TESSERA_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(configHome(), "tessera", "config.toml")
}

func configHome() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return d
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

func stateHome() string {
	if d := os.Getenv("XDG_STATE_HOME"); d != "" {
		return d
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state")
}

// Load reads the config at path, falling back to DefaultPath when path
// is empty. A missing file yields the defaults; a malformed file is an
// error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults, still subject to env overrides below.
	case err != nil:
		return nil, err
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	// Apply defaults for values the file zeroes out.
	def := Default()
	if cfg.Theme == "" {
		cfg.Theme = def.Theme
	}
	if cfg.StateDir == "" {
		cfg.StateDir = def.StateDir
	}
	if cfg.PresetDir == "" {
		cfg.PresetDir = def.PresetDir
	}
	if cfg.Grid.Rows <= 0 {
		cfg.Grid.Rows = def.Grid.Rows
	}
	if cfg.Grid.Cols <= 0 {
		cfg.Grid.Cols = def.Grid.Cols
	}
	if cfg.Grid.MinTrackPct <= 0 {
		cfg.Grid.MinTrackPct = def.Grid.MinTrackPct
	}

	if theme := os.Getenv("TESSERA_THEME"); theme != "" {
		cfg.Theme = theme
	}
	if dir := os.Getenv("TESSERA_STATE_DIR"); dir != "" {
		cfg.StateDir = dir
	}
	return cfg, nil
}
