// Package progress records and reports per-user game progress.
package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/awladnasem/alefbata/internal/models"
	"github.com/awladnasem/alefbata/internal/storage"
)

// ErrUnknownGame is returned when progress is reported for a game that is
// not in the catalog.
var ErrUnknownGame = errors.New("unknown game")

// Repository is the slice of storage the progress flows need.
type Repository interface {
	GetGame(ctx context.Context, id int) (*models.Game, error)
	ListUserProgress(ctx context.Context, userID int) ([]*models.UserProgress, error)
	UpsertUserProgress(ctx context.Context, entry models.ProgressEntry) (*models.UserProgress, error)
}

// Service reads and writes progress.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New creates the progress service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// List returns all of the user's progress rows.
func (s *Service) List(ctx context.Context, userID int) ([]*models.UserProgress, error) {
	return s.repo.ListUserProgress(ctx, userID)
}

// Save upserts the user's progress for one game, replacing any earlier
// row for the same game.
func (s *Service) Save(ctx context.Context, entry models.ProgressEntry) (*models.UserProgress, error) {
	const op = "progress.Save"

	if _, err := s.repo.GetGame(ctx, entry.GameID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUnknownGame)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result, err := s.repo.UpsertUserProgress(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("progress saved",
		slog.Int("user_id", entry.UserID),
		slog.Int("game_id", entry.GameID),
		slog.Int("score", entry.Score))
	return result, nil
}
