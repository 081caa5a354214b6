package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// PGStore keeps sessions in a dedicated table so they survive restarts.
// The table is created on construction; expiry is checked at read time.
type PGStore struct {
	db *sql.DB
}

// NewPGStore prepares the sessions table on the given pool. The pool is
// owned by the caller; Close here does not close it.
func NewPGStore(db *sql.DB) (*PGStore, error) {
	const op = "session.NewPGStore"

	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL,
		username TEXT NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL
	)`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &PGStore{db: db}, nil
}

func (s *PGStore) Create(ctx context.Context, id string, identity Identity, expiresAt time.Time) error {
	const op = "session.PGStore.Create"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, username, expires_at) VALUES ($1, $2, $3, $4)`,
		id, identity.UserID, identity.Username, expiresAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *PGStore) Get(ctx context.Context, id string) (Identity, error) {
	const op = "session.PGStore.Get"
	select {
	case <-ctx.Done():
		return Identity{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var identity Identity
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, username FROM sessions WHERE id = $1 AND expires_at > NOW()`,
		id).Scan(&identity.UserID, &identity.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return Identity{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return Identity{}, fmt.Errorf("%s: %w", op, err)
	}
	return identity, nil
}

func (s *PGStore) Delete(ctx context.Context, id string) error {
	const op = "session.PGStore.Delete"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close is a no-op; the pool belongs to the storage layer.
func (s *PGStore) Close() error { return nil }
