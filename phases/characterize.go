package phases

import (
	"math"
	"sort"

	"eraline/models"
)

// topN caps the genre, artist and sample-track lists per phase.
const topN = 5

// Bucket groups records into season-year phases by their library-save
// timestamp. Records without a parseable timestamp are left out; they still
// carry relevance for ranking but belong to no phase.
func Bucket(records []models.TrackRecord) map[string][]models.TrackRecord {
	buckets := make(map[string][]models.TrackRecord)
	for _, rec := range records {
		key, ok := SeasonKeyFor(rec.AddedAt)
		if !ok {
			continue
		}
		buckets[key] = append(buckets[key], rec)
	}
	return buckets
}

// CoverPicker assigns each phase a representative album cover, never
// repeating an album across the phases of one analysis run. Phases must be
// processed in their final chronological processing order for assignment to
// be reproducible.
type CoverPicker struct {
	used map[string]bool
}

func NewCoverPicker() *CoverPicker {
	return &CoverPicker{used: make(map[string]bool)}
}

type albumCandidate struct {
	id        string
	cover     string
	count     int
	relevance int
}

// Pick ranks the phase's albums by (track count, summed relevance)
// descending and returns the cover of the best album not yet used by an
// earlier phase. When every candidate is exhausted it falls back to the
// placeholder without consuming anything.
func (p *CoverPicker) Pick(tracks []models.TrackRecord) string {
	byAlbum := make(map[string]*albumCandidate)
	var order []*albumCandidate
	for _, t := range tracks {
		if t.AlbumID == "" {
			continue
		}
		cand, seen := byAlbum[t.AlbumID]
		if !seen {
			cand = &albumCandidate{id: t.AlbumID, cover: t.CoverURL}
			byAlbum[t.AlbumID] = cand
			order = append(order, cand)
		}
		cand.count++
		cand.relevance += t.Relevance
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].relevance > order[j].relevance
	})

	for _, cand := range order {
		if p.used[cand.id] {
			continue
		}
		p.used[cand.id] = true
		return cand.cover
	}
	return models.PlaceholderCover
}

// Characterize derives one phase's statistics from its track set and the
// resolved artist-genre map.
func Characterize(period string, tracks []models.TrackRecord, genres map[string][]string, picker *CoverPicker) models.PhaseStats {
	stats := models.PhaseStats{
		Period:     period,
		TrackCount: len(tracks),
		CoverURL:   models.PlaceholderCover,
	}
	if len(tracks) == 0 {
		return stats
	}

	byRelevance := make([]models.TrackRecord, len(tracks))
	copy(byRelevance, tracks)
	sort.SliceStable(byRelevance, func(i, j int) bool {
		return byRelevance[i].Relevance > byRelevance[j].Relevance
	})

	stats.TopGenres = tallyPhaseGenres(tracks, genres).Top(topN)

	seenArtists := make(map[string]bool)
	for _, t := range byRelevance {
		if len(stats.TopArtists) == topN {
			break
		}
		if seenArtists[t.ArtistName] {
			continue
		}
		seenArtists[t.ArtistName] = true
		stats.TopArtists = append(stats.TopArtists, t.ArtistName)
	}

	for _, t := range byRelevance {
		if len(stats.SampleTracks) == topN {
			break
		}
		stats.SampleTracks = append(stats.SampleTracks, t.Name)
	}

	popSum := 0
	yearSum, yearCount := 0, 0
	for _, t := range tracks {
		popSum += t.Popularity
		if t.ReleaseYear > 0 {
			yearSum += t.ReleaseYear
			yearCount++
		}
	}
	stats.AvgPopularity = int(math.Round(float64(popSum) / float64(len(tracks))))
	if yearCount > 0 {
		stats.AvgReleaseYear = int(math.Round(float64(yearSum) / float64(yearCount)))
	}

	stats.CoverURL = picker.Pick(tracks)
	return stats
}
