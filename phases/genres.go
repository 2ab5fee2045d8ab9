package phases

import (
	"context"
	"fmt"
	"sort"

	"eraline/models"
)

// genreBatchSize is the catalog's cap on ids per batched artist lookup.
const genreBatchSize = 50

// GenreLookup resolves artist ids to genre tags. Implementations accept at
// most genreBatchSize ids per call and silently omit ids they cannot
// resolve.
type GenreLookup interface {
	ArtistGenres(ctx context.Context, ids []string) (map[string][]string, error)
}

// FetchGenres resolves genres for every distinct artist id, chunking
// requests to the lookup's batch cap. Artists missing from a response are
// simply absent from the returned map.
func FetchGenres(ctx context.Context, lookup GenreLookup, artistIDs []string) (map[string][]string, error) {
	genres := make(map[string][]string, len(artistIDs))
	for start := 0; start < len(artistIDs); start += genreBatchSize {
		end := start + genreBatchSize
		if end > len(artistIDs) {
			end = len(artistIDs)
		}
		batch, err := lookup.ArtistGenres(ctx, artistIDs[start:end])
		if err != nil {
			return nil, fmt.Errorf("resolving artist genres: %w", err)
		}
		for id, tags := range batch {
			genres[id] = tags
		}
	}
	return genres, nil
}

// distinctArtistIDs collects artist ids from bucketed tracks, preserving
// first-appearance order and skipping tracks without an artist id.
func distinctArtistIDs(tracks []models.TrackRecord) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, t := range tracks {
		if t.ArtistID == "" || seen[t.ArtistID] {
			continue
		}
		seen[t.ArtistID] = true
		ids = append(ids, t.ArtistID)
	}
	return ids
}

// GenreTally counts genre-tag frequency while remembering the order tags
// were first seen, so tied counts rank deterministically.
type GenreTally struct {
	counts map[string]int
	order  []string
}

func NewGenreTally() *GenreTally {
	return &GenreTally{counts: make(map[string]int)}
}

// Add increments one genre tag.
func (g *GenreTally) Add(genre string) {
	if _, seen := g.counts[genre]; !seen {
		g.order = append(g.order, genre)
	}
	g.counts[genre]++
}

// Count reports the current tally for a tag.
func (g *GenreTally) Count(genre string) int {
	return g.counts[genre]
}

// Top returns the n highest-frequency tags, descending. Ties keep
// first-seen order.
func (g *GenreTally) Top(n int) []string {
	ranked := make([]string, len(g.order))
	copy(ranked, g.order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return g.counts[ranked[i]] > g.counts[ranked[j]]
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// tallyPhaseGenres counts genres across a phase's tracks. A track
// contributes one count to every genre tag of its artist.
func tallyPhaseGenres(tracks []models.TrackRecord, genres map[string][]string) *GenreTally {
	tally := NewGenreTally()
	for _, t := range tracks {
		for _, genre := range genres[t.ArtistID] {
			tally.Add(genre)
		}
	}
	return tally
}
