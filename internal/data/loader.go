package data

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/*
var defaultFS embed.FS

// Document names, without extension.
const (
	ClassesDoc    = "classes"
	ItemsDoc      = "items"
	LootTablesDoc = "loot_tables"
	DungeonsDoc   = "dungeons"
	StatsFile     = "player_stats.csv"
)

// ErrMissingDocument is returned when a required table document is absent.
var ErrMissingDocument = errors.New("data: missing document")

// docExtensions lists accepted encodings in lookup order. JSON documents
// are valid YAML, so one decoder serves both.
var docExtensions = []string{".yaml", ".yml", ".json"}

type yamlClasses struct {
	Classes map[string]struct {
		Name             string   `yaml:"name"`
		LootAffinityTags []string `yaml:"loot_affinity_tags"`
		Perks            []string `yaml:"perks"`
		Ability          string   `yaml:"ability"`
		CooldownSeconds  *float64 `yaml:"cooldown_seconds"`
	} `yaml:"classes"`
	SpinTable []struct {
		ClassID string  `yaml:"class_id"`
		Weight  float64 `yaml:"weight"`
	} `yaml:"spin_table"`
}

type yamlItems struct {
	Items map[string]struct {
		Name string `yaml:"name"`
	} `yaml:"items"`
}

type yamlLootTables struct {
	Tables map[string][]struct {
		ItemID string   `yaml:"item_id"`
		Weight float64  `yaml:"weight"`
		Tags   []string `yaml:"tags"`
	} `yaml:"tables"`
}

type yamlDungeons struct {
	Dungeons map[string]struct {
		Name         string `yaml:"name"`
		EnemyTableID string `yaml:"enemy_table_id"`
		LootTableID  string `yaml:"loot_table_id"`
	} `yaml:"dungeons"`
	EnemyTables map[string][]struct {
		EnemyID string  `yaml:"enemy_id"`
		Weight  float64 `yaml:"weight"`
	} `yaml:"enemy_tables"`
	Enemies map[string]struct {
		Name   string `yaml:"name"`
		HP     int    `yaml:"hp"`
		Attack int    `yaml:"attack"`
	} `yaml:"enemies"`
}

// LoadDefault loads the tables embedded in the binary.
func LoadDefault() (*Tables, error) {
	sub, err := fs.Sub(defaultFS, "defaults")
	if err != nil {
		return nil, fmt.Errorf("data: embedded tables: %w", err)
	}
	return LoadFS(sub)
}

// LoadDir loads the tables from a directory on disk.
func LoadDir(dir string) (*Tables, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data: %s is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads the four table documents and the optional player stats sheet
// from fsys, then validates every cross reference.
func LoadFS(fsys fs.FS) (*Tables, error) {
	var (
		classes  yamlClasses
		items    yamlItems
		loot     yamlLootTables
		dungeons yamlDungeons
	)
	docs := []struct {
		name string
		dst  any
	}{
		{ClassesDoc, &classes},
		{ItemsDoc, &items},
		{LootTablesDoc, &loot},
		{DungeonsDoc, &dungeons},
	}
	for _, doc := range docs {
		if err := decodeDoc(fsys, doc.name, doc.dst); err != nil {
			return nil, err
		}
	}

	t := &Tables{
		Classes:     make(map[string]ClassDef, len(classes.Classes)),
		Items:       make(map[string]ItemDef, len(items.Items)),
		LootTables:  make(map[string][]LootTableEntry, len(loot.Tables)),
		Dungeons:    make(map[string]DungeonDef, len(dungeons.Dungeons)),
		EnemyTables: make(map[string][]EnemySpawnEntry, len(dungeons.EnemyTables)),
		Enemies:     make(map[string]EnemyDef, len(dungeons.Enemies)),
	}

	for id, c := range classes.Classes {
		t.Classes[id] = ClassDef{
			ID:               id,
			Name:             c.Name,
			LootAffinityTags: c.LootAffinityTags,
			Perks:            c.Perks,
			Ability:          c.Ability,
			CooldownSeconds:  c.CooldownSeconds,
		}
	}
	for _, e := range classes.SpinTable {
		t.SpinTable = append(t.SpinTable, SpinEntry{ClassID: e.ClassID, Weight: e.Weight})
	}
	for id, it := range items.Items {
		t.Items[id] = ItemDef{ID: id, Name: it.Name}
	}
	for id, rows := range loot.Tables {
		entries := make([]LootTableEntry, len(rows))
		for i, r := range rows {
			entries[i] = LootTableEntry{ItemID: r.ItemID, Weight: r.Weight, Tags: r.Tags}
		}
		t.LootTables[id] = entries
	}
	for id, d := range dungeons.Dungeons {
		t.Dungeons[id] = DungeonDef{
			ID:           id,
			Name:         d.Name,
			EnemyTableID: d.EnemyTableID,
			LootTableID:  d.LootTableID,
		}
	}
	for id, rows := range dungeons.EnemyTables {
		entries := make([]EnemySpawnEntry, len(rows))
		for i, r := range rows {
			entries[i] = EnemySpawnEntry{EnemyID: r.EnemyID, Weight: r.Weight}
		}
		t.EnemyTables[id] = entries
	}
	for id, e := range dungeons.Enemies {
		name := e.Name
		if name == "" {
			name = id
		}
		t.Enemies[id] = EnemyDef{ID: id, Name: name, HP: e.HP, Attack: e.Attack}
	}

	stats, err := loadStats(fsys)
	if err != nil {
		return nil, err
	}
	t.PlayerStats = stats

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// decodeDoc finds name with the first supported extension and decodes it into dst.
func decodeDoc(fsys fs.FS, name string, dst any) error {
	for _, ext := range docExtensions {
		file := name + ext
		raw, err := fs.ReadFile(fsys, file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("data: reading %s: %w", file, err)
		}
		if err := yaml.Unmarshal(raw, dst); err != nil {
			return fmt.Errorf("data: parsing %s: %w", file, err)
		}
		return nil
	}
	return fmt.Errorf("%w: %s (tried %s)", ErrMissingDocument, name, path.Join("*", name+".{yaml,yml,json}"))
}
