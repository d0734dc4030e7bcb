package config

import (
	_ "embed"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the built-in configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Viewport: ViewportConfig{
			Width:  960,
			Height: 540,
		},
		Player: PlayerConfig{
			Width:  20,
			Height: 20,
			Speed:  180,
			HP:     50,
			Attack: 5,
		},
		Enemy: EnemyConfig{
			Width:  18,
			Height: 18,
		},
		Spawn: SpawnConfig{
			Count:  5,
			Margin: 50,
		},
		Loot: LootConfig{
			AffinityMultiplier: 1.5,
			LogSize:            6,
		},
		Info: InfoConfig{
			LogSize: 4,
		},
		Input: InputConfig{
			HoldMS: 150,
		},
		StartDungeon: "dungeon_1",
	}
}
