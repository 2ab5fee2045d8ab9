package phases

import (
	"strconv"
	"strings"

	spotifyapi "github.com/zmb3/spotify/v2"

	"eraline/models"
)

// newRecord builds a TrackRecord from a raw catalog track payload, resolving
// every missing field to a safe default. Returns false when the payload has
// no track ID; such entries are dropped.
func newRecord(t *spotifyapi.FullTrack, addedAt string) (models.TrackRecord, bool) {
	if t == nil || t.ID == "" {
		return models.TrackRecord{}, false
	}

	rec := models.TrackRecord{
		ID:          string(t.ID),
		Name:        t.Name,
		ArtistName:  "N/A",
		AlbumID:     string(t.Album.ID),
		Popularity:  int(t.Popularity),
		ReleaseYear: releaseYear(t.Album.ReleaseDate),
		AddedAt:     addedAt,
		CoverURL:    models.PlaceholderCover,
	}
	if rec.Name == "" {
		rec.Name = "N/A"
	}
	if len(t.Artists) > 0 {
		rec.ArtistID = string(t.Artists[0].ID)
		rec.ArtistName = t.Artists[0].Name
	}
	// Images arrive widest first; the first one is the display cover.
	if len(t.Album.Images) > 0 && t.Album.Images[0].URL != "" {
		rec.CoverURL = t.Album.Images[0].URL
	}
	return rec, true
}

// releaseYear parses the integer prefix of an album release date
// ("2019-03-08", "2019-03", "2019"). Unparseable or missing dates map to 0,
// the unknown sentinel excluded from year averaging.
func releaseYear(date string) int {
	if date == "" {
		return 0
	}
	prefix, _, _ := strings.Cut(date, "-")
	year, err := strconv.Atoi(prefix)
	if err != nil || year < 0 {
		return 0
	}
	return year
}
