package postgres

import (
	"context"
	"fmt"

	"github.com/awladnasem/alefbata/internal/models"
)

const progressColumns = `id, user_id, game_id, score, completed_levels, last_played`

func scanProgress(row rowScanner) (*models.UserProgress, error) {
	p := &models.UserProgress{}
	if err := row.Scan(&p.ID, &p.UserID, &p.GameID, &p.Score,
		&p.CompletedLevels, &p.LastPlayed); err != nil {
		return nil, err
	}
	return p, nil
}

// ListUserProgress returns all progress rows for a user.
func (s *Storage) ListUserProgress(ctx context.Context, userID int) ([]*models.UserProgress, error) {
	const op = "postgres.ListUserProgress"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + progressColumns + ` FROM user_progress WHERE user_id = $1 ORDER BY game_id`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.UserProgress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpsertUserProgress inserts or replaces the single progress row for
// (user, game), stamping last_played with the database clock.
func (s *Storage) UpsertUserProgress(ctx context.Context, entry models.ProgressEntry) (*models.UserProgress, error) {
	const op = "postgres.UpsertUserProgress"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO user_progress (user_id, game_id, score, completed_levels, last_played)
			  VALUES ($1, $2, $3, $4, NOW())
			  ON CONFLICT (user_id, game_id) DO UPDATE
			  SET score = EXCLUDED.score,
			      completed_levels = EXCLUDED.completed_levels,
			      last_played = NOW()
			  RETURNING ` + progressColumns
	p, err := scanProgress(s.DB.QueryRowContext(ctx, query,
		entry.UserID, entry.GameID, entry.Score, entry.CompletedLevels))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return p, nil
}
