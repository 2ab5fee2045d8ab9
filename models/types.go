package models

import "strconv"

// PlaceholderCover is served whenever a track or phase has no usable album art.
const PlaceholderCover = "https://placehold.co/128x128/121212/FFFFFF?text=?"

// TrackRecord is the normalized, deduplicated view of a track across every
// source list (library saves plus the three top-tracks windows). Exactly one
// record exists per track ID; Relevance accumulates across sources.
type TrackRecord struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ArtistID   string `json:"artist_id"`
	ArtistName string `json:"artist_name"`
	AlbumID    string `json:"album_id"`
	Popularity int    `json:"popularity"`
	// ReleaseYear is 0 when the album release date was missing or unparseable.
	ReleaseYear int `json:"release_year"`
	// AddedAt is the raw library-save timestamp. Empty for tracks that only
	// appeared in top-tracks windows; those are scored but never bucketed.
	AddedAt   string `json:"added_at,omitempty"`
	CoverURL  string `json:"cover_url"`
	Relevance int    `json:"relevance_score"`
}

// PhaseStats is the characterized projection of one season-year bucket.
type PhaseStats struct {
	Period        string   `json:"phase_period"`
	TrackCount    int      `json:"track_count"`
	TopGenres     []string `json:"top_genres"`
	TopArtists    []string `json:"top_artists"`
	AvgPopularity int      `json:"average_popularity"`
	// AvgReleaseYear is 0 when no track in the phase has a known year.
	// External boundaries render that sentinel as "N/A" (ReleaseYearLabel);
	// the numeric field round-trips through the session cache unchanged.
	AvgReleaseYear int      `json:"avg_release_year"`
	CoverURL       string   `json:"cover_url"`
	SampleTracks   []string `json:"sample_tracks"`
}

// ReleaseYearLabel formats the average release year for external consumers,
// preserving the unknown sentinel instead of coercing it to a number.
func (p *PhaseStats) ReleaseYearLabel() string {
	if p.AvgReleaseYear == 0 {
		return "N/A"
	}
	return strconv.Itoa(p.AvgReleaseYear)
}

// PhaseOutput is a PhaseStats plus the naming collaborator's result.
// Name and Summary are always non-empty; fallback values are used when the
// collaborator is unavailable.
type PhaseOutput struct {
	PhaseStats
	AvgReleaseYearLabel string `json:"average_release_year"`
	Name                string `json:"phase_name"`
	Summary             string `json:"phase_summary"`
}

// Characteristics is the fixed input schema of the naming collaborator.
type Characteristics struct {
	Period         string
	TopGenres      []string
	TopArtists     []string
	AvgPopularity  int
	AvgReleaseYear int // 0 = unknown
}

// EraLabel describes the phase's vintage for the naming prompt. An unknown
// average year is never "modern".
func (c *Characteristics) EraLabel() string {
	if c.AvgReleaseYear > 2010 {
		return "Modern mainstream"
	}
	return "Nostalgic throwback"
}

// PopularityLabel describes how mainstream the phase's tracks are.
func (c *Characteristics) PopularityLabel() string {
	if c.AvgPopularity > 60 {
		return "Mainstream hits"
	}
	return "Underground discoveries"
}

// ReleaseYearLabel mirrors PhaseStats.ReleaseYearLabel for prompt building.
func (c *Characteristics) ReleaseYearLabel() string {
	if c.AvgReleaseYear == 0 {
		return "N/A"
	}
	return strconv.Itoa(c.AvgReleaseYear)
}
