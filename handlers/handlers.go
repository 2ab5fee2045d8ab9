package handlers

// handlers wire the OAuth handshake, the timeline pages and the analysis
// API onto gin. All per-user state lives in the session store; handlers
// hold no mutable state of their own.

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"html"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	spotifyauth "github.com/zmb3/spotify/v2/auth"

	"eraline/database"
	"eraline/models"
	"eraline/pages"
	"eraline/phases"
	"eraline/spotify"
)

const (
	sessionCookie = "eraline_session"
	stateCookie   = "spotify_auth_state"
	cookieMaxAge  = 24 * 60 * 60
)

type Manager struct {
	auth  *spotifyauth.Authenticator
	db    *database.Database
	namer phases.Namer
}

func NewManager(auth *spotifyauth.Authenticator, db *database.Database, namer phases.Namer) *Manager {
	return &Manager{auth: auth, db: db, namer: namer}
}

// Index shows the login card, or sends authenticated users straight to
// their timeline.
func (m *Manager) Index(c *gin.Context) {
	if session := m.session(c); session != nil {
		c.Redirect(http.StatusFound, "/timeline")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(pages.Login))
}

// Login starts the authorization-code flow with a fresh state nonce.
func (m *Manager) Login(c *gin.Context) {
	state, err := newNonce()
	if err != nil {
		log.Errorf("Failed to generate auth state: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start login"})
		return
	}
	c.SetCookie(stateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusFound, m.auth.AuthURL(state, spotifyauth.ShowDialog))
}

// Callback completes the token exchange, fetches the user profile and
// creates the server-side session.
func (m *Manager) Callback(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		log.Warnf("Spotify authorization denied: %s", errParam)
		c.JSON(http.StatusBadRequest, gin.H{"error": errParam})
		return
	}

	state, err := c.Cookie(stateCookie)
	if err != nil || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing auth state"})
		return
	}

	token, err := m.auth.Token(c.Request.Context(), state, c.Request)
	if err != nil {
		log.Errorf("Token exchange failed: %v", err)
		c.JSON(http.StatusForbidden, gin.H{"error": "token exchange failed"})
		return
	}

	client := spotify.NewClient(c.Request.Context(), m.auth, token)
	user, err := client.CurrentUser(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch profile"})
		return
	}

	displayName := user.DisplayName
	if displayName == "" {
		displayName = "music lover"
	}
	sessionID, err := m.db.CreateSession(user.ID, displayName, token)
	if err != nil {
		log.Errorf("Failed to create session for %s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.SetCookie(stateCookie, "", -1, "/", "", false, true)
	c.SetCookie(sessionCookie, sessionID, cookieMaxAge, "/", "", false, true)
	log.Infof("User %s logged in", user.ID)
	c.Redirect(http.StatusFound, "/timeline")
}

// Logout drops the session and its cached phases.
func (m *Manager) Logout(c *gin.Context) {
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		if err := m.db.DeleteSession(id); err != nil {
			log.Warnf("Failed to delete session: %v", err)
		}
	}
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// Timeline renders the timeline shell; the phase cards load through the
// analysis API.
func (m *Manager) Timeline(c *gin.Context) {
	session := m.session(c)
	if session == nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	displayName := session.DisplayName
	if displayName == "" {
		displayName = "friend"
	}
	body := fmt.Sprintf(pages.Timeline, html.EscapeString(displayName))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(body))
}

// Phases is the fast analysis endpoint: fetch, score, bucket and
// characterize without any generation. The characterized list is cached on
// the session for the naming endpoint.
func (m *Manager) Phases(c *gin.Context) {
	session := m.session(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	token, err := session.Token()
	if err != nil {
		log.Errorf("Corrupt session token for %s: %v", session.UserID, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	client := spotify.NewClient(c.Request.Context(), m.auth, token)
	analyzer := phases.NewAnalyzer(client, m.namer)
	stats, err := analyzer.Stats(c.Request.Context())
	if err != nil {
		if errors.Is(err, phases.ErrSourceUnavailable) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Spotify is unreachable or your session expired, please log in and retry"})
			return
		}
		log.Errorf("Phase analysis failed for %s: %v", session.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return
	}

	if err := m.db.SavePhases(session.ID, stats); err != nil {
		// Naming will 404 for this run, but the listing is still good.
		log.Warnf("Failed to cache phases for %s: %v", session.UserID, err)
	}
	c.JSON(http.StatusOK, stats)
}

type nameRequest struct {
	Period string `json:"period" binding:"required"`
}

// NamePhase names one previously characterized phase. Generator failures
// never surface; the deterministic fallback is always a valid answer.
func (m *Manager) NamePhase(c *gin.Context) {
	session := m.session(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "period is required"})
		return
	}

	stats, err := m.db.GetPhase(session.ID, req.Period)
	if err != nil {
		log.Errorf("Failed to read cached phase %q: %v", req.Period, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load phase"})
		return
	}
	if stats == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown phase, reload the timeline"})
		return
	}

	name, summary := m.namer.Name(c.Request.Context(), models.Characteristics{
		Period:         stats.Period,
		TopGenres:      stats.TopGenres,
		TopArtists:     stats.TopArtists,
		AvgPopularity:  stats.AvgPopularity,
		AvgReleaseYear: stats.AvgReleaseYear,
	})
	c.JSON(http.StatusOK, models.PhaseOutput{
		PhaseStats:          *stats,
		AvgReleaseYearLabel: stats.ReleaseYearLabel(),
		Name:                name,
		Summary:             summary,
	})
}

// session resolves the request's session cookie to a live session, or nil.
func (m *Manager) session(c *gin.Context) *database.SessionRecord {
	id, err := c.Cookie(sessionCookie)
	if err != nil || id == "" {
		return nil
	}
	session, err := m.db.GetSession(id)
	if err != nil {
		log.Errorf("Session lookup failed: %v", err)
		return nil
	}
	return session
}

func newNonce() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
