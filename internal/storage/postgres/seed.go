package postgres

import (
	"context"
	"fmt"

	"github.com/awladnasem/alefbata/internal/storage"
)

// Seed populates the reference catalog: plans, games and letters. It runs
// once; when games already exist it is a no-op, so restarts are safe.
func (s *Storage) Seed(ctx context.Context) error {
	const op = "postgres.Seed"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&count); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count > 0 {
		return nil
	}

	for _, plan := range storage.SeedPlans() {
		if _, err := s.CreatePlan(ctx, plan); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	for _, game := range storage.SeedGames() {
		if _, err := s.CreateGame(ctx, game); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	for _, letter := range storage.SeedLetters() {
		if _, err := s.CreateLetter(ctx, letter); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}
