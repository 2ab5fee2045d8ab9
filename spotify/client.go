package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/avast/retry-go"
	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	spotifyclient "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"

	"eraline/config"
	"eraline/phases"
)

// NewAuthenticator builds the OAuth authenticator for the
// authorization-code flow with the library and top-tracks read scopes.
func NewAuthenticator() *spotifyauth.Authenticator {
	cfg := config.Config.Spotify
	return spotifyauth.New(
		spotifyauth.WithRedirectURL(cfg.RedirectURI),
		spotifyauth.WithScopes(
			spotifyauth.ScopeUserTopRead,
			spotifyauth.ScopeUserLibraryRead,
		),
		spotifyauth.WithClientID(cfg.ClientID),
		spotifyauth.WithClientSecret(cfg.ClientSecret),
	)
}

// Client wraps an authenticated Spotify API client and implements
// phases.Catalog.
type Client struct {
	api       *spotifyclient.Client
	pageLimit int
	topLimit  int
}

// NewClient builds a Client for one user's token.
func NewClient(ctx context.Context, auth *spotifyauth.Authenticator, token *oauth2.Token) *Client {
	return &Client{
		api:       spotifyclient.New(auth.Client(ctx, token)),
		pageLimit: config.Config.Spotify.PageLimit,
		topLimit:  config.Config.Spotify.TopLimit,
	}
}

// CurrentUser fetches the authenticated user's profile.
func (c *Client) CurrentUser(ctx context.Context) (*spotifyclient.PrivateUser, error) {
	user, err := c.api.CurrentUser(ctx)
	if err != nil {
		log.Errorf("Failed to fetch Spotify profile: %v", err)
		sentry.CaptureException(err)
		return nil, err
	}
	return user, nil
}

// SavedTracks walks the paginated library feed until the catalog signals no
// more pages. Individual page fetches retry on server errors before the
// whole fetch is declared failed.
func (c *Client) SavedTracks(ctx context.Context) ([]spotifyclient.SavedTrack, error) {
	span := sentry.StartSpan(ctx, "spotify.saved_tracks")
	span.Description = "Fetch saved tracks from Spotify API"
	defer span.Finish()

	var page *spotifyclient.SavedTrackPage
	err := retryServerErrors(func() error {
		var err error
		page, err = c.api.CurrentUsersTracks(ctx, spotifyclient.Limit(c.pageLimit))
		return err
	})
	if err != nil {
		log.Errorf("Failed to fetch saved tracks: %v", err)
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return nil, fmt.Errorf("fetching saved tracks: %w", err)
	}

	tracks := append([]spotifyclient.SavedTrack(nil), page.Tracks...)
	for {
		err := retryServerErrors(func() error {
			return c.api.NextPage(ctx, page)
		})
		if errors.Is(err, spotifyclient.ErrNoMorePages) {
			break
		}
		if err != nil {
			log.Errorf("Failed to fetch saved tracks page: %v", err)
			sentry.CaptureException(err)
			span.Status = sentry.SpanStatusInternalError
			return nil, fmt.Errorf("fetching saved tracks page: %w", err)
		}
		tracks = append(tracks, page.Tracks...)
	}

	log.Debugf("Fetched %d saved tracks", len(tracks))
	span.Status = sentry.SpanStatusOK
	span.SetData("track_count", len(tracks))
	return tracks, nil
}

// TopTracks fetches one fixed-size top-tracks window.
func (c *Client) TopTracks(ctx context.Context, window phases.TimeWindow) ([]spotifyclient.FullTrack, error) {
	span := sentry.StartSpan(ctx, "spotify.top_tracks")
	span.Description = "Fetch top tracks from Spotify API"
	span.SetTag("window", string(window))
	defer span.Finish()

	var page *spotifyclient.FullTrackPage
	err := retryServerErrors(func() error {
		var err error
		page, err = c.api.CurrentUsersTopTracks(ctx,
			spotifyclient.Timerange(timerange(window)),
			spotifyclient.Limit(c.topLimit),
		)
		return err
	})
	if err != nil {
		log.Errorf("Failed to fetch %s top tracks: %v", window, err)
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return nil, fmt.Errorf("fetching %s top tracks: %w", window, err)
	}

	log.Debugf("Fetched %d top tracks for window %s", len(page.Tracks), window)
	span.Status = sentry.SpanStatusOK
	return page.Tracks, nil
}

// ArtistGenres resolves up to 50 artist ids to their genre tags in one
// batched call. Unresolvable ids are omitted from the result, not errors.
func (c *Client) ArtistGenres(ctx context.Context, ids []string) (map[string][]string, error) {
	span := sentry.StartSpan(ctx, "spotify.artist_genres")
	span.Description = "Batch-fetch artist genres from Spotify API"
	defer span.Finish()

	apiIDs := make([]spotifyclient.ID, len(ids))
	for i, id := range ids {
		apiIDs[i] = spotifyclient.ID(id)
	}

	var artists []*spotifyclient.FullArtist
	err := retryServerErrors(func() error {
		var err error
		artists, err = c.api.GetArtists(ctx, apiIDs...)
		return err
	})
	if err != nil {
		log.Errorf("Failed to fetch genres for %d artists: %v", len(ids), err)
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return nil, fmt.Errorf("fetching artist genres: %w", err)
	}

	genres := make(map[string][]string, len(artists))
	for _, artist := range artists {
		if artist == nil {
			continue
		}
		genres[string(artist.ID)] = artist.Genres
	}
	span.Status = sentry.SpanStatusOK
	return genres, nil
}

// retryServerErrors retries transient 5xx catalog failures a few times.
// Client errors (expired token, bad request) fail immediately.
func retryServerErrors(fn func() error) error {
	return retry.Do(
		fn,
		retry.Attempts(3),
		retry.RetryIf(func(err error) bool {
			var apiErr spotifyclient.Error
			if errors.As(err, &apiErr) {
				return apiErr.Status >= http.StatusInternalServerError
			}
			return false
		}),
	)
}

func timerange(window phases.TimeWindow) spotifyclient.Range {
	switch window {
	case phases.WindowShortTerm:
		return spotifyclient.ShortTermRange
	case phases.WindowMediumTerm:
		return spotifyclient.MediumTermRange
	default:
		return spotifyclient.LongTermRange
	}
}
