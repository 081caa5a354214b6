// Package session implements server-side login sessions. A session lives in
// a Store keyed by a random id; the browser holds only the signed id in a
// cookie. Two stores exist: in-process for development and postgres for
// production.
package session

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned for unknown or expired session ids.
var ErrNotFound = errors.New("session not found")

// Identity is who a session belongs to. It is what handlers read from the
// request context after the middleware resolves the cookie.
type Identity struct {
	UserID   int
	Username string
}

// Store holds active sessions. Get on an expired session returns
// ErrNotFound; implementations may reap expired rows lazily.
type Store interface {
	Create(ctx context.Context, id string, identity Identity, expiresAt time.Time) error
	Get(ctx context.Context, id string) (Identity, error)
	Delete(ctx context.Context, id string) error
	Close() error
}
