package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.TickDelay != 50 || cfg.TicksPerSecond() != 20 {
		t.Fatalf("expected 50ms ticks at 20 TPS, got %dms", cfg.TickDelay)
	}
}

func TestValidate_Rejects(t *testing.T) {
	cases := map[string]func(*Config){
		"zero tick":       func(c *Config) { c.TickDelay = 0 },
		"small frame cap": func(c *Config) { c.MaxFrameMillis = 10 },
		"zero frame":      func(c *Config) { c.TicksPerFrame = 0 },
		"zero dying":      func(c *Config) { c.DyingTicks = 0 },
		"zero ai":         func(c *Config) { c.AIThinkTicks = 0 },
	}
	for name, mutate := range cases {
		cfg := Default()
		mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", name, err)
		}
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.json")
	if err := os.WriteFile(path, []byte(`{"tick_delay_ms": 25, "fog_of_war": false}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TickDelay != 25 || cfg.FogOfWar {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.DyingTicks != Default().DyingTicks {
		t.Fatal("missing fields should keep defaults")
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"tick_delay_ms": -1}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}
