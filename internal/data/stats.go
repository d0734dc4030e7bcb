package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
)

// PlayerStats holds optional overrides for the player defaults.
// A nil field keeps the configured default.
type PlayerStats struct {
	Health         *int
	Speed          *float64
	PhysicalDamage *int
	MagicDamage    *int
}

// Empty reports whether no override is set.
func (s PlayerStats) Empty() bool {
	return s.Health == nil && s.Speed == nil && s.PhysicalDamage == nil && s.MagicDamage == nil
}

func loadStats(fsys fs.FS) (PlayerStats, error) {
	f, err := fsys.Open(StatsFile)
	if errors.Is(err, fs.ErrNotExist) {
		return PlayerStats{}, nil
	}
	if err != nil {
		return PlayerStats{}, fmt.Errorf("data: opening %s: %w", StatsFile, err)
	}
	defer f.Close()

	stats, err := ParseStats(f)
	if err != nil {
		return PlayerStats{}, fmt.Errorf("data: %s: %w", StatsFile, err)
	}
	return stats, nil
}

// ParseStats reads a header row and one value row. Headers are matched
// case-insensitively; unknown columns are ignored. An input without a value
// row yields empty stats.
func ParseStats(r io.Reader) (PlayerStats, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return PlayerStats{}, nil
	}
	if err != nil {
		return PlayerStats{}, err
	}
	values, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return PlayerStats{}, nil
	}
	if err != nil {
		return PlayerStats{}, err
	}

	var stats PlayerStats
	for i, name := range header {
		if i >= len(values) {
			break
		}
		raw := strings.TrimSpace(values[i])
		if raw == "" {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "health", "hp":
			v, err := parseInt(name, raw)
			if err != nil {
				return PlayerStats{}, err
			}
			stats.Health = &v
		case "speed":
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return PlayerStats{}, fmt.Errorf("column %q: %w", name, err)
			}
			if v < 0 {
				return PlayerStats{}, fmt.Errorf("column %q: speed must not be negative", name)
			}
			stats.Speed = &v
		case "physical damage", "attack":
			v, err := parseInt(name, raw)
			if err != nil {
				return PlayerStats{}, err
			}
			stats.PhysicalDamage = &v
		case "magic damage", "magic":
			v, err := parseInt(name, raw)
			if err != nil {
				return PlayerStats{}, err
			}
			stats.MagicDamage = &v
		}
	}
	return stats, nil
}

func parseInt(column, raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		// Sheets exported from spreadsheets sometimes carry "50.0".
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil {
			return 0, fmt.Errorf("column %q: %w", column, err)
		}
		v = int(f)
	}
	return v, nil
}
