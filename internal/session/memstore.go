package session

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type memSession struct {
	identity  Identity
	expiresAt time.Time
}

// MemStore keeps sessions in a map. A background ticker sweeps expired
// entries; Get also checks expiry so a stale entry never resolves.
type MemStore struct {
	mu       sync.Mutex
	sessions map[string]memSession
	done     chan struct{}
	closed   sync.Once
}

// NewMemStore starts a store sweeping expired sessions every sweepInterval.
func NewMemStore(sweepInterval time.Duration) *MemStore {
	s := &MemStore{
		sessions: make(map[string]memSession),
		done:     make(chan struct{}),
	}
	go s.sweep(sweepInterval)
	return s
}

func (s *MemStore) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for id, sess := range s.sessions {
				if sess.expiresAt.Before(now) {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		case <-s.done:
			return
		}
	}
}

func (s *MemStore) Create(ctx context.Context, id string, identity Identity, expiresAt time.Time) error {
	const op = "session.MemStore.Create"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = memSession{identity: identity, expiresAt: expiresAt}
	return nil
}

func (s *MemStore) Get(ctx context.Context, id string) (Identity, error) {
	const op = "session.MemStore.Get"
	select {
	case <-ctx.Done():
		return Identity{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok || sess.expiresAt.Before(time.Now()) {
		delete(s.sessions, id)
		return Identity{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return sess.identity, nil
}

func (s *MemStore) Delete(ctx context.Context, id string) error {
	const op = "session.MemStore.Delete"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Close stops the sweeper.
func (s *MemStore) Close() error {
	s.closed.Do(func() { close(s.done) })
	return nil
}
