// Package weighted implements proportional random selection over weighted identifiers.
package weighted

import (
	"errors"
	"fmt"
)

var (
	// ErrNoEntries is returned when selection is requested from an empty set.
	ErrNoEntries = errors.New("weighted: no entries")
	// ErrNegativeWeight is returned when an entry carries a weight below zero.
	ErrNegativeWeight = errors.New("weighted: negative weight")
	// ErrNonPositiveTotal is returned when the weights sum to zero or less.
	ErrNonPositiveTotal = errors.New("weighted: total weight must be positive")
)

// Entry pairs an identifier with its relative weight.
type Entry struct {
	ID     string
	Weight float64
}

// Source supplies uniform draws in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Validate reports whether entries form a usable selection set.
func Validate(entries []Entry) error {
	_, err := total(entries)
	return err
}

// Total returns the sum of all weights, validating the set on the way.
func Total(entries []Entry) (float64, error) {
	return total(entries)
}

// Pick returns one identifier with probability weight/total.
func Pick(src Source, entries []Entry) (string, error) {
	i, err := PickIndex(src, entries)
	if err != nil {
		return "", err
	}
	return entries[i].ID, nil
}

// PickIndex is Pick returning the position of the chosen entry, for tables
// that list the same identifier more than once.
func PickIndex(src Source, entries []Entry) (int, error) {
	sum, err := total(entries)
	if err != nil {
		return 0, err
	}
	return indexAt(entries, src.Float64()*sum), nil
}

// PickAt walks entries in order and returns the first whose cumulative weight
// reaches roll. A roll beyond the accumulated sum, which floating point
// rounding can produce at the upper boundary, yields the last entry.
// entries must be non-empty.
func PickAt(entries []Entry, roll float64) string {
	return entries[indexAt(entries, roll)].ID
}

func indexAt(entries []Entry, roll float64) int {
	upto := 0.0
	for i, e := range entries {
		upto += e.Weight
		if roll <= upto {
			return i
		}
	}
	return len(entries) - 1
}

func total(entries []Entry) (float64, error) {
	if len(entries) == 0 {
		return 0, ErrNoEntries
	}
	sum := 0.0
	for _, e := range entries {
		if e.Weight < 0 {
			return 0, fmt.Errorf("%w: %q has %g", ErrNegativeWeight, e.ID, e.Weight)
		}
		sum += e.Weight
	}
	if sum <= 0 {
		return 0, ErrNonPositiveTotal
	}
	return sum, nil
}
