package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points HOME and the working directory at empty temp dirs so the
// search order only sees files the test writes.
func isolate(t *testing.T) (home, wd string) {
	t.Helper()
	home = t.TempDir()
	wd = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(wd)
	return home, wd
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
}

func TestLoadGameEmbeddedDefault(t *testing.T) {
	isolate(t)

	cfg, err := LoadGame("")
	if err != nil {
		t.Fatalf("LoadGame() failed: %v", err)
	}
	if cfg != DefaultGameConfig() {
		t.Errorf("embedded default = %+v, expected %+v", cfg, DefaultGameConfig())
	}
}

func TestLoadGameCustomPathOverlaysDefaults(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "spawn:\n  count: 8\nstart_dungeon: crypt\n")

	cfg, err := LoadGame(path)
	if err != nil {
		t.Fatalf("LoadGame() failed: %v", err)
	}
	if cfg.Spawn.Count != 8 {
		t.Errorf("Spawn.Count = %d, expected 8", cfg.Spawn.Count)
	}
	if cfg.StartDungeon != "crypt" {
		t.Errorf("StartDungeon = %q, expected crypt", cfg.StartDungeon)
	}
	if cfg.Spawn.Margin != 50 || cfg.Player.Speed != 180 {
		t.Error("fields absent from the file should keep their defaults")
	}
}

func TestLoadGameCustomPathErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	if _, err := LoadGame(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should be an error")
	}

	broken := filepath.Join(dir, "broken.yaml")
	writeFile(t, broken, "viewport: [not, a, map\n")
	if _, err := LoadGame(broken); err == nil {
		t.Error("malformed custom config should be an error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	writeFile(t, invalid, "spawn:\n  margin: 400\n")
	if _, err := LoadGame(invalid); err == nil || !strings.Contains(err.Error(), "margin") {
		t.Errorf("oversized margin should fail validation, got %v", err)
	}
}

func TestLoadGameSearchOrder(t *testing.T) {
	home, wd := isolate(t)

	writeFile(t, filepath.Join(wd, "configs", "game.yaml"), "spawn:\n  count: 3\n")
	cfg, err := LoadGame("")
	if err != nil {
		t.Fatalf("LoadGame() failed: %v", err)
	}
	if cfg.Spawn.Count != 3 {
		t.Errorf("local config not used: Spawn.Count = %d, expected 3", cfg.Spawn.Count)
	}

	writeFile(t, filepath.Join(home, ".pixel-dungeons", "configs", "game.yaml"), "spawn:\n  count: 9\n")
	cfg, err = LoadGame("")
	if err != nil {
		t.Fatalf("LoadGame() failed: %v", err)
	}
	if cfg.Spawn.Count != 9 {
		t.Errorf("user config should win over local: Spawn.Count = %d, expected 9", cfg.Spawn.Count)
	}
}

func TestLoadGameSkipsInvalidUserConfig(t *testing.T) {
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, ".pixel-dungeons", "configs", "game.yaml"), "loot:\n  affinity_multiplier: 0\n")

	cfg, err := LoadGame("")
	if err != nil {
		t.Fatalf("LoadGame() failed: %v", err)
	}
	if cfg.Loot.AffinityMultiplier != 1.5 {
		t.Errorf("invalid user config should be skipped, multiplier = %g", cfg.Loot.AffinityMultiplier)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GameConfig)
	}{
		{"zero viewport", func(c *GameConfig) { c.Viewport.Width = 0 }},
		{"player larger than viewport", func(c *GameConfig) { c.Player.Width = 2000 }},
		{"negative speed", func(c *GameConfig) { c.Player.Speed = -1 }},
		{"negative spawn count", func(c *GameConfig) { c.Spawn.Count = -1 }},
		{"zero loot log", func(c *GameConfig) { c.Loot.LogSize = 0 }},
		{"no start dungeon", func(c *GameConfig) { c.StartDungeon = "" }},
	}

	if err := DefaultGameConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultGameConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestHoldWindow(t *testing.T) {
	if got := (InputConfig{HoldMS: 150}).HoldWindow().Milliseconds(); got != 150 {
		t.Errorf("HoldWindow() = %dms, expected 150ms", got)
	}
}
