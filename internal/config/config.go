// Package config provides YAML-based tuning for the dungeon prototype:
// viewport size, player and enemy templates, spawn rules and log sizes.
package config

import (
	"errors"
	"fmt"
	"time"
)

// GameConfig contains all tunable parameters of the game.
type GameConfig struct {
	Viewport     ViewportConfig `yaml:"viewport"`
	Player       PlayerConfig   `yaml:"player"`
	Enemy        EnemyConfig    `yaml:"enemy"`
	Spawn        SpawnConfig    `yaml:"spawn"`
	Loot         LootConfig     `yaml:"loot"`
	Info         InfoConfig     `yaml:"info"`
	Input        InputConfig    `yaml:"input"`
	StartDungeon string         `yaml:"start_dungeon"`
}

// ViewportConfig defines the world plane in world units.
type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PlayerConfig defines the default player template.
type PlayerConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Speed  float64 `yaml:"speed"` // world units per second
	HP     int     `yaml:"hp"`
	Attack int     `yaml:"attack"`
}

// EnemyConfig defines the bounding box shared by all enemies.
type EnemyConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SpawnConfig controls dungeon population.
type SpawnConfig struct {
	Count  int `yaml:"count"`
	Margin int `yaml:"margin"` // inset from every viewport edge
}

// LootConfig controls loot resolution.
type LootConfig struct {
	AffinityMultiplier float64 `yaml:"affinity_multiplier"`
	LogSize            int     `yaml:"log_size"`
}

// InfoConfig controls the info message log.
type InfoConfig struct {
	LogSize int `yaml:"log_size"`
}

// InputConfig controls how terminal key presses become held movement keys.
type InputConfig struct {
	HoldMS int `yaml:"hold_ms"`
}

// HoldWindow returns how long a movement key counts as held after a press.
func (c InputConfig) HoldWindow() time.Duration {
	return time.Duration(c.HoldMS) * time.Millisecond
}

// Validate checks that the configuration describes a playable game.
func (c GameConfig) Validate() error {
	var errs []error
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		errs = append(errs, fmt.Errorf("viewport must be positive, got %gx%g", c.Viewport.Width, c.Viewport.Height))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, fmt.Errorf("player size must be positive, got %dx%d", c.Player.Width, c.Player.Height))
	}
	if float64(c.Player.Width) > c.Viewport.Width || float64(c.Player.Height) > c.Viewport.Height {
		errs = append(errs, errors.New("player does not fit in the viewport"))
	}
	if c.Player.Speed < 0 {
		errs = append(errs, fmt.Errorf("player speed must be >= 0, got %g", c.Player.Speed))
	}
	if c.Enemy.Width <= 0 || c.Enemy.Height <= 0 {
		errs = append(errs, fmt.Errorf("enemy size must be positive, got %dx%d", c.Enemy.Width, c.Enemy.Height))
	}
	if c.Spawn.Count < 0 {
		errs = append(errs, fmt.Errorf("spawn count must be >= 0, got %d", c.Spawn.Count))
	}
	if c.Spawn.Margin < 0 || float64(2*c.Spawn.Margin) > c.Viewport.Width || float64(2*c.Spawn.Margin) > c.Viewport.Height {
		errs = append(errs, fmt.Errorf("spawn margin %d leaves no room in the viewport", c.Spawn.Margin))
	}
	if c.Loot.AffinityMultiplier <= 0 {
		errs = append(errs, fmt.Errorf("affinity multiplier must be positive, got %g", c.Loot.AffinityMultiplier))
	}
	if c.Loot.LogSize <= 0 || c.Info.LogSize <= 0 {
		errs = append(errs, errors.New("log sizes must be positive"))
	}
	if c.StartDungeon == "" {
		errs = append(errs, errors.New("start_dungeon must be set"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid game config: %w", errors.Join(errs...))
	}
	return nil
}
