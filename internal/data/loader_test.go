package data

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/pixel-dungeons/internal/weighted"
)

func TestLoadDefault(t *testing.T) {
	tables, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault() failed: %v", err)
	}

	if _, ok := tables.Dungeons["dungeon_1"]; !ok {
		t.Error("default tables should define dungeon_1")
	}
	if len(tables.SpinTable) == 0 {
		t.Error("default spin table should not be empty")
	}
	if got := tables.ClassIDs(); len(got) != len(tables.Classes) {
		t.Errorf("ClassIDs() returned %d ids, expected %d", len(got), len(tables.Classes))
	}
	if tables.PlayerStats.Health == nil || *tables.PlayerStats.Health != 50 {
		t.Errorf("default player stats Health = %v, expected 50", tables.PlayerStats.Health)
	}
}

func TestLoadDirJSON(t *testing.T) {
	tables, err := LoadDir("testdata/json")
	if err != nil {
		t.Fatalf("LoadDir() failed: %v", err)
	}

	pyro, ok := tables.Classes["pyro"]
	if !ok {
		t.Fatal("expected class pyro")
	}
	if pyro.Name != "Pyromancer" {
		t.Errorf("pyro.Name = %q, expected Pyromancer", pyro.Name)
	}
	if pyro.CooldownSeconds == nil || *pyro.CooldownSeconds != 5 {
		t.Errorf("pyro.CooldownSeconds = %v, expected 5", pyro.CooldownSeconds)
	}
	if tables.Classes["monk"].CooldownSeconds != nil {
		t.Error("monk should have no cooldown")
	}
	if !pyro.HasAffinity([]string{"ice", "fire"}) {
		t.Error("pyro should have affinity for fire")
	}
	if tables.Classes["monk"].HasAffinity([]string{"fire"}) {
		t.Error("monk has no affinity tags")
	}

	if got := tables.Enemies["slime"].Name; got != "slime" {
		t.Errorf("enemy without a name should fall back to its id, got %q", got)
	}
	if got := tables.ItemName("flame_ring"); got != "Flame Ring" {
		t.Errorf("ItemName(flame_ring) = %q, expected Flame Ring", got)
	}
	if got := tables.ItemName("missing"); got != "missing" {
		t.Errorf("ItemName(missing) = %q, expected the id", got)
	}

	s := tables.PlayerStats
	if s.Health == nil || *s.Health != 120 {
		t.Errorf("Health = %v, expected 120", s.Health)
	}
	if s.Speed == nil || *s.Speed != 200 {
		t.Errorf("Speed = %v, expected 200", s.Speed)
	}
	if s.PhysicalDamage == nil || *s.PhysicalDamage != 7 {
		t.Errorf("PhysicalDamage = %v, expected 7", s.PhysicalDamage)
	}
	if s.MagicDamage == nil || *s.MagicDamage != 3 {
		t.Errorf("MagicDamage = %v, expected 3", s.MagicDamage)
	}
}

func TestLoadDirMissing(t *testing.T) {
	if _, err := LoadDir(t.TempDir() + "/nope"); err == nil {
		t.Error("LoadDir() on a missing directory should fail")
	}
}

// validFS returns a minimal consistent set of documents.
func validFS() fstest.MapFS {
	return fstest.MapFS{
		"classes.yaml": {Data: []byte(`
classes:
  warrior: {name: Warrior, loot_affinity_tags: [melee]}
spin_table:
  - {class_id: warrior, weight: 1}
`)},
		"items.yml": {Data: []byte(`
items:
  sword: {name: Sword}
`)},
		"loot_tables.yaml": {Data: []byte(`
tables:
  t1:
    - {item_id: sword, weight: 1, tags: [melee]}
`)},
		"dungeons.yaml": {Data: []byte(`
dungeons:
  dungeon_1: {name: Crypt, enemy_table_id: e1, loot_table_id: t1}
enemy_tables:
  e1:
    - {enemy_id: slime, weight: 1}
enemies:
  slime: {hp: 10, attack: 1}
`)},
	}
}

func TestLoadFSWithoutStats(t *testing.T) {
	tables, err := LoadFS(validFS())
	if err != nil {
		t.Fatalf("LoadFS() failed: %v", err)
	}
	if !tables.PlayerStats.Empty() {
		t.Errorf("PlayerStats = %+v, expected no overrides", tables.PlayerStats)
	}
	if got := tables.EnemyEntries("e1"); len(got) != 1 || got[0] != (weighted.Entry{ID: "slime", Weight: 1}) {
		t.Errorf("EnemyEntries(e1) = %v", got)
	}
}

func TestLoadFSMissingDocument(t *testing.T) {
	fsys := validFS()
	delete(fsys, "items.yml")

	_, err := LoadFS(fsys)
	if !errors.Is(err, ErrMissingDocument) {
		t.Errorf("LoadFS() error = %v, expected ErrMissingDocument", err)
	}
}

func TestLoadFSMalformed(t *testing.T) {
	fsys := validFS()
	fsys["classes.yaml"] = &fstest.MapFile{Data: []byte("classes: [unterminated")}

	_, err := LoadFS(fsys)
	if err == nil || !strings.Contains(err.Error(), "classes.yaml") {
		t.Errorf("LoadFS() error = %v, expected a parse error naming classes.yaml", err)
	}
}

func TestLoadFSValidation(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{
			name: "dangling loot table",
			file: "dungeons.yaml",
			content: `
dungeons:
  dungeon_1: {name: Crypt, enemy_table_id: e1, loot_table_id: nowhere}
enemy_tables:
  e1: [{enemy_id: slime, weight: 1}]
enemies:
  slime: {hp: 10, attack: 1}
`,
			want: `unknown loot table "nowhere"`,
		},
		{
			name: "dangling enemy",
			file: "dungeons.yaml",
			content: `
dungeons:
  dungeon_1: {name: Crypt, enemy_table_id: e1, loot_table_id: t1}
enemy_tables:
  e1: [{enemy_id: ghost, weight: 1}]
enemies:
  slime: {hp: 10, attack: 1}
`,
			want: `unknown enemy "ghost"`,
		},
		{
			name: "dangling item",
			file: "loot_tables.yaml",
			content: `
tables:
  t1: [{item_id: axe, weight: 1}]
`,
			want: `unknown item "axe"`,
		},
		{
			name: "dangling class",
			file: "classes.yaml",
			content: `
classes:
  warrior: {name: Warrior}
spin_table:
  - {class_id: wizard, weight: 1}
`,
			want: `unknown class "wizard"`,
		},
		{
			name: "negative weight",
			file: "loot_tables.yaml",
			content: `
tables:
  t1:
    - {item_id: sword, weight: -2}
`,
			want: "negative weight",
		},
		{
			name: "empty spin table",
			file: "classes.yaml",
			content: `
classes:
  warrior: {name: Warrior}
`,
			want: "no entries",
		},
		{
			name: "zero enemy hp",
			file: "dungeons.yaml",
			content: `
dungeons:
  dungeon_1: {name: Crypt, enemy_table_id: e1, loot_table_id: t1}
enemy_tables:
  e1: [{enemy_id: slime, weight: 1}]
enemies:
  slime: {hp: 0, attack: 1}
`,
			want: "hp must be positive",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fsys := validFS()
			for name := range fsys {
				if strings.HasPrefix(name, strings.TrimSuffix(tc.file, ".yaml")) {
					delete(fsys, name)
				}
			}
			fsys[tc.file] = &fstest.MapFile{Data: []byte(tc.content)}

			_, err := LoadFS(fsys)
			if err == nil {
				t.Fatal("LoadFS() should fail")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("LoadFS() error = %v, expected it to mention %q", err, tc.want)
			}
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("LoadFS() error should wrap a ValidationError, got %T", err)
			}
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	tables := &Tables{
		Classes:   map[string]ClassDef{},
		SpinTable: []SpinEntry{{ClassID: "ghost", Weight: 1}},
		Items:     map[string]ItemDef{},
		LootTables: map[string][]LootTableEntry{
			"t1": {{ItemID: "axe", Weight: 1}},
		},
		Dungeons: map[string]DungeonDef{
			"d": {ID: "d", EnemyTableID: "none", LootTableID: "t1"},
		},
		EnemyTables: map[string][]EnemySpawnEntry{},
		Enemies:     map[string]EnemyDef{},
	}

	err := tables.Validate()
	if err == nil {
		t.Fatal("Validate() should fail")
	}
	for _, want := range []string{`unknown class "ghost"`, `unknown item "axe"`, `unknown enemy table "none"`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() error missing %q: %v", want, err)
		}
	}
}
