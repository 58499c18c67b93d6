package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultSimConfigValid(t *testing.T) {
	cfg := DefaultSimConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Step() != time.Second/60 {
		t.Errorf("expected 60Hz step, got %v", cfg.Step())
	}
	if cfg.MaxFrameDelta() != 250*time.Millisecond {
		t.Errorf("expected 250ms clamp, got %v", cfg.MaxFrameDelta())
	}
}

func TestPowerupTicks(t *testing.T) {
	cfg := DefaultSimConfig()
	if n := cfg.PowerupTicks(CapShield); n != 300 {
		t.Errorf("expected 5s shield = 300 ticks, got %d", n)
	}
	if n := cfg.PowerupTicks(CapDoubleFire); n != 480 {
		t.Errorf("expected 8s double fire = 480 ticks, got %d", n)
	}
	if n := cfg.PowerupTicks(Capability("warp")); n != 0 {
		t.Errorf("unknown capability should give 0 ticks, got %d", n)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*SimConfig){
		"zero width":        func(c *SimConfig) { c.Width = 0 },
		"zero tick rate":    func(c *SimConfig) { c.TickRate = 0 },
		"no lives":          func(c *SimConfig) { c.Lives = 0 },
		"player too wide":   func(c *SimConfig) { c.PlayerWidth = c.Width + 1 },
		"no quota":          func(c *SimConfig) { c.LevelSpawnBase = 0 },
		"inverted speeds":   func(c *SimConfig) { c.ObstacleMinSpeed = c.ObstacleMaxSpeed + 1 },
		"zero ceiling":      func(c *SimConfig) { c.ClearCeiling = 0 },
		"zero render every": func(c *SimConfig) { c.RenderEvery = 0 },
		"unknown powerup":   func(c *SimConfig) { c.PowerupDurations = map[Capability]float64{"warp": 3} },
		"negative powerup":  func(c *SimConfig) { c.PowerupDurations = map[Capability]float64{CapShield: -1} },
	}
	for name, mutate := range cases {
		cfg := DefaultSimConfig()
		mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", name, err)
		}
	}
}

func TestLoadSimConfigOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.json")
	data := `{"lives": 5, "tick_rate": 120, "powerup_durations": {"shield": 2}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSimConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Lives != 5 || cfg.TickRate != 120 {
		t.Errorf("overlay not applied: lives %d tick rate %d", cfg.Lives, cfg.TickRate)
	}
	if cfg.Width != 800 || cfg.SettleDelay != 1.5 {
		t.Error("missing fields should keep defaults")
	}
	if cfg.PowerupTicks(CapShield) != 240 {
		t.Errorf("expected 2s at 120Hz = 240 ticks, got %d", cfg.PowerupTicks(CapShield))
	}
}

func TestLoadSimConfigErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadSimConfig(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing file should fail")
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte(`{"lives": `), 0o644)
	if _, err := LoadSimConfig(bad); err == nil {
		t.Error("malformed JSON should fail")
	}

	invalid := filepath.Join(dir, "invalid.json")
	os.WriteFile(invalid, []byte(`{"lives": 0}`), 0o644)
	if _, err := LoadSimConfig(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
