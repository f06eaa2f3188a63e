package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.Theme != def.Theme || cfg.Grid.Rows != def.Grid.Rows {
		t.Fatalf("missing file did not yield defaults: %+v", cfg)
	}
}

func TestLoadParsesAndFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
theme = "latte"
mouse = false

[grid]
rows = 3
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != "latte" {
		t.Fatalf("theme = %q", cfg.Theme)
	}
	if cfg.Mouse {
		t.Fatal("mouse should be disabled")
	}
	if cfg.Grid.Rows != 3 {
		t.Fatalf("grid rows = %d, want 3", cfg.Grid.Rows)
	}
	// Unset values fall back to defaults.
	if cfg.Grid.Cols != Default().Grid.Cols {
		t.Fatalf("grid cols = %d, want default", cfg.Grid.Cols)
	}
	if cfg.StateDir == "" {
		t.Fatal("state dir not defaulted")
	}
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("theme = ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("malformed config accepted")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TESSERA_THEME", "plain")
	t.Setenv("TESSERA_STATE_DIR", "/tmp/tessera-state")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Theme != "plain" {
		t.Fatalf("env override skipped for missing file: theme = %q", cfg.Theme)
	}

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`theme = "mocha"`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Theme != "plain" {
		t.Fatalf("env override lost: theme = %q", cfg.Theme)
	}
	if cfg.StateDir != "/tmp/tessera-state" {
		t.Fatalf("env override lost: state dir = %q", cfg.StateDir)
	}
}

func TestDefaultPathHonorsEnv(t *testing.T) {
	t.Setenv("TESSERA_CONFIG", "/etc/tessera.toml")
	if got := DefaultPath(); got != "/etc/tessera.toml" {
		t.Fatalf("DefaultPath = %q", got)
	}
}
