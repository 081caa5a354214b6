// Package catalog serves the read side of the content catalog: games,
// subscription plans and Arabic letters. List reads go through Redis when
// a cache is attached; item reads hit storage directly.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/awladnasem/alefbata/internal/lib/sl"
	"github.com/awladnasem/alefbata/internal/models"
)

const cacheTTL = time.Hour

// CatalogRepository is the slice of storage the catalog reads from.
type CatalogRepository interface {
	ListGames(ctx context.Context) ([]*models.Game, error)
	ListFeaturedGames(ctx context.Context) ([]*models.Game, error)
	GetGame(ctx context.Context, id int) (*models.Game, error)
	ListPlans(ctx context.Context) ([]*models.Plan, error)
	GetPlan(ctx context.Context, id int) (*models.Plan, error)
	ListLetters(ctx context.Context) ([]*models.Letter, error)
	GetLetter(ctx context.Context, id int) (*models.Letter, error)
	GetLetterByChar(ctx context.Context, letter string) (*models.Letter, error)
}

// Cache is the JSON cache used for list reads.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Service answers catalog reads. cache may be nil; everything then goes
// straight to storage.
type Service struct {
	repo  CatalogRepository
	cache Cache
	log   *slog.Logger
}

// New creates the catalog service.
func New(repo CatalogRepository, cache Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

// cachedList answers a list read from cache when possible, falling back to
// load and repopulating on a miss. Cache failures degrade to storage.
func cachedList[T any](ctx context.Context, s *Service, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	if s.cache != nil {
		var cached []T
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.log.Warn("cache read failed", slog.String("key", key), sl.Err(err))
		} else if found {
			return cached, nil
		}
	}

	result, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result, cacheTTL); err != nil {
			s.log.Warn("cache write failed", slog.String("key", key), sl.Err(err))
		}
	}
	return result, nil
}

// ListGames returns the full game catalog.
func (s *Service) ListGames(ctx context.Context) ([]*models.Game, error) {
	const op = "catalog.ListGames"
	games, err := cachedList(ctx, s, "catalog:games", s.repo.ListGames)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return games, nil
}

// ListFeaturedGames returns the games shown on the landing page.
func (s *Service) ListFeaturedGames(ctx context.Context) ([]*models.Game, error) {
	const op = "catalog.ListFeaturedGames"
	games, err := cachedList(ctx, s, "catalog:games:featured", s.repo.ListFeaturedGames)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return games, nil
}

// GetGame returns one game by id.
func (s *Service) GetGame(ctx context.Context, id int) (*models.Game, error) {
	return s.repo.GetGame(ctx, id)
}

// ListPlans returns the subscription plans.
func (s *Service) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	const op = "catalog.ListPlans"
	plans, err := cachedList(ctx, s, "catalog:plans", s.repo.ListPlans)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return plans, nil
}

// GetPlan returns one plan by id.
func (s *Service) GetPlan(ctx context.Context, id int) (*models.Plan, error) {
	return s.repo.GetPlan(ctx, id)
}

// ListLetters returns the Arabic alphabet with example words.
func (s *Service) ListLetters(ctx context.Context) ([]*models.Letter, error) {
	const op = "catalog.ListLetters"
	letters, err := cachedList(ctx, s, "catalog:letters", s.repo.ListLetters)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return letters, nil
}

// GetLetter returns one letter by id.
func (s *Service) GetLetter(ctx context.Context, id int) (*models.Letter, error) {
	return s.repo.GetLetter(ctx, id)
}

// GetLetterByChar returns one letter by its character.
func (s *Service) GetLetterByChar(ctx context.Context, letter string) (*models.Letter, error) {
	return s.repo.GetLetterByChar(ctx, letter)
}
