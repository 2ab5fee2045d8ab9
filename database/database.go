package database

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	_ "modernc.org/sqlite"

	"eraline/config"
	"eraline/models"
)

// Database is the server-side session store: one row per logged-in user
// plus the characterized phases cached between the fast listing endpoint
// and the per-phase naming endpoint. Reads and writes are atomic per key.
type Database struct {
	db  *sql.DB
	ttl time.Duration
}

type SessionRecord struct {
	ID          string
	UserID      string
	DisplayName string
	TokenJSON   string
	CreatedAt   time.Time
}

// Token unmarshals the stored OAuth token.
func (s *SessionRecord) Token() (*oauth2.Token, error) {
	var token oauth2.Token
	if err := json.Unmarshal([]byte(s.TokenJSON), &token); err != nil {
		return nil, fmt.Errorf("decoding session token: %w", err)
	}
	return &token, nil
}

// New opens (or creates) the session database. dbPath defaults to the
// DB_PATH env var or ./data/eraline.db.
func New() (*Database, error) {
	dbPath := config.Config.Session.DBPath
	if dbPath == "" {
		dbPath = "./data/eraline.db"
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	d := &Database{
		db:  db,
		ttl: time.Duration(config.Config.Session.TTLHours) * time.Hour,
	}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := d.purgeExpired(); err != nil {
		log.Warnf("Failed to purge expired sessions: %v", err)
	}

	log.Infof("Session database initialized at %s", dbPath)
	return d, nil
}

func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			display_name TEXT NOT NULL DEFAULT '',
			token_json TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS phase_cache (
			session_id TEXT NOT NULL,
			period TEXT NOT NULL,
			payload TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (session_id, period)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_phase_cache_session ON phase_cache(session_id)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	return nil
}

// CreateSession stores a fresh session for an authenticated user and
// returns its opaque id.
func (d *Database) CreateSession(userID, displayName string, token *oauth2.Token) (string, error) {
	tokenJSON, err := json.Marshal(token)
	if err != nil {
		return "", fmt.Errorf("encoding session token: %w", err)
	}

	id, err := newSessionID()
	if err != nil {
		return "", err
	}

	_, err = d.db.Exec(
		`INSERT INTO sessions (id, user_id, display_name, token_json, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, userID, displayName, string(tokenJSON), time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("creating session: %w", err)
	}
	return id, nil
}

// GetSession looks up a live session. Expired sessions are deleted on read;
// absent or expired sessions return (nil, nil).
func (d *Database) GetSession(id string) (*SessionRecord, error) {
	if id == "" {
		return nil, nil
	}

	row := d.db.QueryRow(
		`SELECT id, user_id, display_name, token_json, created_at FROM sessions WHERE id = ?`, id,
	)
	var rec SessionRecord
	err := row.Scan(&rec.ID, &rec.UserID, &rec.DisplayName, &rec.TokenJSON, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}

	if time.Since(rec.CreatedAt) > d.ttl {
		if err := d.DeleteSession(id); err != nil {
			log.Warnf("Failed to delete expired session %s: %v", id, err)
		}
		return nil, nil
	}
	return &rec, nil
}

// DeleteSession removes a session and its cached phases.
func (d *Database) DeleteSession(id string) error {
	if _, err := d.db.Exec(`DELETE FROM phase_cache WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("deleting phase cache: %w", err)
	}
	if _, err := d.db.Exec(`DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// SavePhases replaces the cached characterized phases for a session.
func (d *Database) SavePhases(sessionID string, stats []models.PhaseStats) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("starting phase cache write: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM phase_cache WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("clearing phase cache: %w", err)
	}
	for _, s := range stats {
		payload, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("encoding phase %q: %w", s.Period, err)
		}
		_, err = tx.Exec(
			`INSERT INTO phase_cache (session_id, period, payload, created_at) VALUES (?, ?, ?, ?)`,
			sessionID, s.Period, string(payload), time.Now().UTC(),
		)
		if err != nil {
			return fmt.Errorf("caching phase %q: %w", s.Period, err)
		}
	}
	return tx.Commit()
}

// GetPhase reads one cached phase back. Absent phases return (nil, nil).
func (d *Database) GetPhase(sessionID, period string) (*models.PhaseStats, error) {
	row := d.db.QueryRow(
		`SELECT payload FROM phase_cache WHERE session_id = ? AND period = ?`, sessionID, period,
	)
	var payload string
	err := row.Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cached phase: %w", err)
	}

	var stats models.PhaseStats
	if err := json.Unmarshal([]byte(payload), &stats); err != nil {
		return nil, fmt.Errorf("decoding cached phase %q: %w", period, err)
	}
	return &stats, nil
}

func (d *Database) purgeExpired() error {
	cutoff := time.Now().UTC().Add(-d.ttl)
	if _, err := d.db.Exec(
		`DELETE FROM phase_cache WHERE session_id IN (SELECT id FROM sessions WHERE created_at < ?)`, cutoff,
	); err != nil {
		return err
	}
	_, err := d.db.Exec(`DELETE FROM sessions WHERE created_at < ?`, cutoff)
	return err
}

func newSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating session id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
