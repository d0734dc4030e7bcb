package game

// EventKind identifies something notable that happened during a step.
type EventKind int

const (
	EventClassSpun EventKind = iota
	EventDungeonEntered
	EventEnemyDefeated
	EventLoot
)

// String returns a short name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventClassSpun:
		return "class_spun"
	case EventDungeonEntered:
		return "dungeon_entered"
	case EventEnemyDefeated:
		return "enemy_defeated"
	case EventLoot:
		return "loot"
	default:
		return "unknown"
	}
}

// Event carries the identifiers relevant to its kind; unrelated fields stay empty.
type Event struct {
	Kind        EventKind
	ClassID     string
	ClassName   string
	DungeonID   string
	DungeonName string
	EnemyID     string
	ItemID      string
	ItemName    string
	Boosted     bool
	Spawned     int
}
