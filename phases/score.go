package phases

import (
	spotifyapi "github.com/zmb3/spotify/v2"

	"eraline/models"
)

// TimeWindow selects one of the catalog's fixed top-tracks ranges.
type TimeWindow string

const (
	WindowLongTerm   TimeWindow = "long_term"
	WindowMediumTerm TimeWindow = "medium_term"
	WindowShortTerm  TimeWindow = "short_term"
)

// Windows lists the top-tracks ranges in fetch order.
var Windows = []TimeWindow{WindowLongTerm, WindowMediumTerm, WindowShortTerm}

// Relevance weights per source list. Shorter windows signal stronger current
// relevance and dominate the ranking; the exact multipliers are load-bearing
// for output parity and must not be tuned casually.
const (
	weightSaved      = 1
	weightLongTerm   = 2
	weightMediumTerm = 5
	weightShortTerm  = 10
)

func (w TimeWindow) weight() int {
	switch w {
	case WindowShortTerm:
		return weightShortTerm
	case WindowMediumTerm:
		return weightMediumTerm
	default:
		return weightLongTerm
	}
}

// Library accumulates normalized records from every source list. The
// first-seen record for a track ID wins; later appearances only add to its
// relevance score.
type Library struct {
	records map[string]*models.TrackRecord
	order   []string
}

func NewLibrary() *Library {
	return &Library{records: make(map[string]*models.TrackRecord)}
}

// AddSaved ingests one library-saved entry, carrying its added-at timestamp.
// Every appearance in the saved list contributes one relevance point, even
// for a track already recorded.
func (l *Library) AddSaved(item spotifyapi.SavedTrack) {
	l.add(&item.FullTrack, item.AddedAt, weightSaved)
}

// AddTop ingests one top-tracks entry for the given window. Top entries
// carry no added-at timestamp and so never join a phase bucket on their own.
func (l *Library) AddTop(track spotifyapi.FullTrack, window TimeWindow) {
	l.add(&track, "", window.weight())
}

func (l *Library) add(t *spotifyapi.FullTrack, addedAt string, weight int) {
	rec, ok := newRecord(t, addedAt)
	if !ok {
		return
	}
	if existing, seen := l.records[rec.ID]; seen {
		existing.Relevance += weight
		return
	}
	rec.Relevance = weight
	l.records[rec.ID] = &rec
	l.order = append(l.order, rec.ID)
}

// Len reports the number of distinct tracks recorded.
func (l *Library) Len() int {
	return len(l.records)
}

// Records returns the deduplicated collection in first-seen order.
func (l *Library) Records() []models.TrackRecord {
	out := make([]models.TrackRecord, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, *l.records[id])
	}
	return out
}
