// Package postgres implements the storage contract on PostgreSQL through
// database/sql and the pgx driver. Uniqueness is enforced by constraints;
// violations surface as storage.ErrConflict, absent rows as
// storage.ErrNotFound.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	// Registers the pgx driver with database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/awladnasem/alefbata/internal/storage"
)

// Storage wraps the PostgreSQL connection pool.
type Storage struct {
	DB *sql.DB
}

// New opens a connection to PostgreSQL and verifies it with a ping.
func New(storageConnectionString string) (*Storage, error) {
	const op = "postgres.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{DB: db}, nil
}

// Close releases the connection pool.
func (s *Storage) Close() error {
	return s.DB.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

// wrapErr translates driver errors into the storage sentinels, keeping the
// op prefix for everything else.
func wrapErr(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%s: %w", op, storage.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}
