package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mintid/mintid/internal/config"
	"github.com/mintid/mintid/internal/logger"
	"github.com/mintid/mintid/models"
)

// ErrNoCachedSession is returned by LoadSession when the cache is empty.
var ErrNoCachedSession = errors.New("no cached session")

const createSessionCacheTable = `CREATE TABLE IF NOT EXISTS session_cache (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    user_id TEXT NOT NULL,
    token TEXT NOT NULL,
    is_platform_operator INTEGER NOT NULL DEFAULT 0,
    established_at TIMESTAMP NOT NULL,
    profile_json TEXT
);`

// sqliteSessionCache persists the client's session snapshot in a local
// SQLite file, the client-side counterpart of the browser's local storage.
// Only one row ever exists; the primary-key check enforces it.
type sqliteSessionCache struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewSessionCache opens (and initialises if needed) the local session cache.
// An empty DSN falls back to in-memory, which does not survive restarts.
func NewSessionCache(ctx context.Context, cfg config.ClientCache, log *logger.Logger) (SessionCache, error) {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = ":memory:"
	}

	if dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("error creating cache directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Err(err).Str("func", "NewSessionCache").Msg("error opening session cache")
		return nil, fmt.Errorf("error opening session cache: %w", err)
	}

	if _, err = conn.ExecContext(ctx, createSessionCacheTable); err != nil {
		log.Err(err).Str("func", "NewSessionCache").Msg("error initialising session cache schema")
		return nil, fmt.Errorf("error initialising session cache schema: %w", err)
	}

	return &sqliteSessionCache{db: conn, logger: log}, nil
}

// SaveSession stores or replaces the single cached snapshot.
func (c *sqliteSessionCache) SaveSession(ctx context.Context, session models.Session, profile *models.UserProfile) error {
	var profileJSON sql.NullString
	if profile != nil {
		data, err := json.Marshal(profile)
		if err != nil {
			return fmt.Errorf("error encoding cached profile: %w", err)
		}
		profileJSON = sql.NullString{String: string(data), Valid: true}
	}

	_, err := c.db.ExecContext(ctx,
		`INSERT INTO session_cache (id, user_id, token, is_platform_operator, established_at, profile_json)
         VALUES (1, ?, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET
             user_id = excluded.user_id,
             token = excluded.token,
             is_platform_operator = excluded.is_platform_operator,
             established_at = excluded.established_at,
             profile_json = excluded.profile_json;`,
		session.UserID, session.Token, session.IsPlatformOperator, session.EstablishedAt, profileJSON)
	if err != nil {
		return fmt.Errorf("error saving session snapshot: %w", err)
	}

	return nil
}

// LoadSession returns the cached snapshot, or ErrNoCachedSession when none
// has been saved.
func (c *sqliteSessionCache) LoadSession(ctx context.Context) (models.Session, *models.UserProfile, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT user_id, token, is_platform_operator, established_at, profile_json FROM session_cache WHERE id = 1;`)

	var session models.Session
	var establishedAt time.Time
	var profileJSON sql.NullString

	err := row.Scan(&session.UserID, &session.Token, &session.IsPlatformOperator, &establishedAt, &profileJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, nil, ErrNoCachedSession
		}
		return models.Session{}, nil, fmt.Errorf("error loading session snapshot: %w", err)
	}
	session.EstablishedAt = establishedAt

	var profile *models.UserProfile
	if profileJSON.Valid && profileJSON.String != "" {
		profile = &models.UserProfile{}
		if err = json.Unmarshal([]byte(profileJSON.String), profile); err != nil {
			return models.Session{}, nil, fmt.Errorf("error decoding cached profile: %w", err)
		}
	}

	return session, profile, nil
}

// ClearSession removes the cached snapshot. Clearing an already empty cache
// is not an error.
func (c *sqliteSessionCache) ClearSession(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM session_cache WHERE id = 1;`); err != nil {
		return fmt.Errorf("error clearing session snapshot: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (c *sqliteSessionCache) Close() error {
	return c.db.Close()
}
