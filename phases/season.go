package phases

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Seasons in phase-key order. The index doubles as the chronological
// position of a season within its year.
var Seasons = []string{"Winter", "Spring", "Summer", "Autumn"}

// addedAtLayouts are the timestamp shapes the catalog emits once the
// trailing "Z" marker has been stripped.
var addedAtLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseAddedAt parses a library-save timestamp. Returns false for empty or
// unparseable input; such tracks stay out of phase bucketing entirely.
func ParseAddedAt(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	trimmed := strings.TrimSuffix(raw, "Z")
	for _, layout := range addedAtLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SeasonKey maps a save time to its "<Season> <Year>" phase key. January and
// February belong to the winter that began the previous year.
func SeasonKey(t time.Time) string {
	month := int(t.Month())
	year := t.Year()
	switch {
	case month <= 2:
		return fmt.Sprintf("Winter %d", year-1)
	case month <= 5:
		return fmt.Sprintf("Spring %d", year)
	case month <= 8:
		return fmt.Sprintf("Summer %d", year)
	case month <= 11:
		return fmt.Sprintf("Autumn %d", year)
	default:
		return fmt.Sprintf("Winter %d", year)
	}
}

// SeasonKeyFor combines parsing and mapping for a raw save timestamp.
func SeasonKeyFor(raw string) (string, bool) {
	t, ok := ParseAddedAt(raw)
	if !ok {
		return "", false
	}
	return SeasonKey(t), true
}

// periodSortKey decomposes a phase key into its (year, season index)
// composite ordering key.
func periodSortKey(period string) (year int, season int, ok bool) {
	parts := strings.SplitN(period, " ", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	for i, name := range Seasons {
		if name == parts[0] {
			return year, i, true
		}
	}
	return 0, 0, false
}
