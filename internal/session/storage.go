package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// TokenStorage persists the single session token across daemon restarts.
//
// Absence of a token is reported with ErrNoStoredToken, distinct from
// ErrStorageUnavailable; both resolve to "logged out" at the store level but
// are logged differently.
type TokenStorage interface {
	// Load returns the persisted token.
	Load(ctx context.Context) (string, error)

	// Save replaces the persisted token.
	Save(ctx context.Context, token string) error

	// Clear removes the persisted token. Clearing an empty storage is not
	// an error.
	Clear(ctx context.Context) error
}

// SQLiteTokenStorage implements TokenStorage on the local state database.
// The session_tokens table is constrained to a single row; Save is an upsert.
type SQLiteTokenStorage struct {
	db *sql.DB
}

// NewSQLiteTokenStorage creates a SQLite-backed token storage.
func NewSQLiteTokenStorage(db *sql.DB) *SQLiteTokenStorage {
	return &SQLiteTokenStorage{db: db}
}

// Load returns the persisted token.
func (s *SQLiteTokenStorage) Load(ctx context.Context) (string, error) {
	var token string
	err := s.db.QueryRowContext(ctx,
		"SELECT token FROM session_tokens WHERE id = 1").Scan(&token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNoStoredToken
		}
		return "", fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return token, nil
}

// Save replaces the persisted token.
func (s *SQLiteTokenStorage) Save(ctx context.Context, token string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session_tokens (id, token, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at`,
		token, now,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return nil
}

// Clear removes the persisted token.
func (s *SQLiteTokenStorage) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM session_tokens WHERE id = 1")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return nil
}
