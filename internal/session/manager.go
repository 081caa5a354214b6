package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Manager ties the codec and the store together: it issues sessions on
// login, resolves them from requests and revokes them on logout.
type Manager struct {
	codec *Codec
	store Store
}

// NewManager builds a manager over the given codec and store.
func NewManager(codec *Codec, store Store) *Manager {
	return &Manager{codec: codec, store: store}
}

// Issue creates a session for identity and sets its cookie on the response.
func (m *Manager) Issue(ctx context.Context, w http.ResponseWriter, identity Identity) error {
	const op = "session.Manager.Issue"

	id := uuid.NewString()
	if err := m.store.Create(ctx, id, identity, time.Now().Add(m.codec.TTL())); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	m.codec.Set(w, id)
	return nil
}

// Resolve authenticates the request cookie and loads the session identity.
func (m *Manager) Resolve(r *http.Request) (Identity, error) {
	const op = "session.Manager.Resolve"

	id, err := m.codec.Decode(r)
	if err != nil {
		return Identity{}, fmt.Errorf("%s: %w", op, err)
	}
	identity, err := m.store.Get(r.Context(), id)
	if err != nil {
		return Identity{}, fmt.Errorf("%s: %w", op, err)
	}
	return identity, nil
}

// Revoke deletes the request's session, if any, and clears the cookie.
func (m *Manager) Revoke(w http.ResponseWriter, r *http.Request) error {
	const op = "session.Manager.Revoke"

	if id, err := m.codec.Decode(r); err == nil {
		if err := m.store.Delete(r.Context(), id); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	m.codec.Clear(w)
	return nil
}

// Close releases the underlying store.
func (m *Manager) Close() error {
	return m.store.Close()
}
