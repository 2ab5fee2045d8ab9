package phases

// The phases engine turns the user's raw listening history into an ordered,
// characterized timeline. All intermediate state lives in the Analyzer call
// stack; nothing is stashed in globals between stages.

import (
	"context"
	"errors"
	"fmt"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	spotifyapi "github.com/zmb3/spotify/v2"

	"eraline/models"
)

// ErrSourceUnavailable marks a catalog failure. The whole analysis aborts on
// this class; callers should surface a re-authenticate / retry condition.
var ErrSourceUnavailable = errors.New("catalog source unavailable")

// Catalog is the upstream music-catalog collaborator: the paginated library
// feed, the fixed top-tracks windows and the batched artist-genre lookup.
type Catalog interface {
	GenreLookup
	SavedTracks(ctx context.Context) ([]spotifyapi.SavedTrack, error)
	TopTracks(ctx context.Context, window TimeWindow) ([]spotifyapi.FullTrack, error)
}

// Namer produces a display name and summary for one characterized phase.
// Implementations never fail; they degrade to deterministic fallbacks.
type Namer interface {
	Name(ctx context.Context, chars models.Characteristics) (name string, summary string)
}

// Analyzer runs the full pipeline for one analysis request.
type Analyzer struct {
	catalog Catalog
	namer   Namer
}

func NewAnalyzer(catalog Catalog, namer Namer) *Analyzer {
	return &Analyzer{catalog: catalog, namer: namer}
}

// Stats fetches, scores, buckets and characterizes the user's history,
// returning phases newest-first. Cover deduplication is applied in
// oldest-first processing order before the list is reversed for display, so
// assignment is reproducible regardless of presentation direction.
func (a *Analyzer) Stats(ctx context.Context) ([]models.PhaseStats, error) {
	span := sentry.StartSpan(ctx, "phases.stats")
	span.Description = "Characterize listening phases"
	defer span.Finish()

	lib, err := a.collect(ctx)
	if err != nil {
		span.Status = sentry.SpanStatusInternalError
		return nil, err
	}

	records := lib.Records()
	buckets := Bucket(records)
	log.Debugf("Bucketed %d of %d tracks into %d phases", bucketedCount(buckets), len(records), len(buckets))

	periods := make([]string, 0, len(buckets))
	for period := range buckets {
		periods = append(periods, period)
	}
	SortPeriods(periods, true)

	var bucketed []models.TrackRecord
	for _, period := range periods {
		bucketed = append(bucketed, buckets[period]...)
	}
	genres, err := FetchGenres(ctx, a.catalog, distinctArtistIDs(bucketed))
	if err != nil {
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	picker := NewCoverPicker()
	stats := make([]models.PhaseStats, 0, len(periods))
	for _, period := range periods {
		stats = append(stats, Characterize(period, buckets[period], genres, picker))
	}
	reverseStats(stats)

	span.Status = sentry.SpanStatusOK
	span.SetData("phase_count", len(stats))
	return stats, nil
}

// Run is Stats plus sequential naming of every phase.
func (a *Analyzer) Run(ctx context.Context) ([]models.PhaseOutput, error) {
	stats, err := a.Stats(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.PhaseOutput, 0, len(stats))
	for _, s := range stats {
		name, summary := a.namer.Name(ctx, models.Characteristics{
			Period:         s.Period,
			TopGenres:      s.TopGenres,
			TopArtists:     s.TopArtists,
			AvgPopularity:  s.AvgPopularity,
			AvgReleaseYear: s.AvgReleaseYear,
		})
		out = append(out, models.PhaseOutput{
			PhaseStats:          s,
			AvgReleaseYearLabel: s.ReleaseYearLabel(),
			Name:                name,
			Summary:             summary,
		})
	}
	return out, nil
}

// collect pulls every source list and folds it into one scored library.
// Any catalog failure here is fatal to the run.
func (a *Analyzer) collect(ctx context.Context) (*Library, error) {
	saved, err := a.catalog.SavedTracks(ctx)
	if err != nil {
		sentry.CaptureException(err)
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	lib := NewLibrary()
	for _, item := range saved {
		lib.AddSaved(item)
	}

	for _, window := range Windows {
		tops, err := a.catalog.TopTracks(ctx, window)
		if err != nil {
			sentry.CaptureException(err)
			return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
		}
		for _, track := range tops {
			lib.AddTop(track, window)
		}
	}

	log.Debugf("Collected %d distinct tracks from %d saved entries", lib.Len(), len(saved))
	return lib, nil
}

func bucketedCount(buckets map[string][]models.TrackRecord) int {
	n := 0
	for _, tracks := range buckets {
		n += len(tracks)
	}
	return n
}
