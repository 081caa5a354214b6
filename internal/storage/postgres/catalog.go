package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/awladnasem/alefbata/internal/models"
)

const gameColumns = `id, title, description, image_url, age_range, game_type, route, featured`

func scanGame(row rowScanner) (*models.Game, error) {
	g := &models.Game{}
	if err := row.Scan(&g.ID, &g.Title, &g.Description, &g.ImageURL,
		&g.AgeRange, &g.GameType, &g.Route, &g.Featured); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Storage) listGames(ctx context.Context, op, query string) ([]*models.Game, error) {
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var games []*models.Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		games = append(games, g)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return games, nil
}

// ListGames returns the whole game catalog ordered by id.
func (s *Storage) ListGames(ctx context.Context) ([]*models.Game, error) {
	const op = "postgres.ListGames"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	return s.listGames(ctx, op, `SELECT `+gameColumns+` FROM games ORDER BY id`)
}

// ListFeaturedGames returns the games flagged for the landing page.
func (s *Storage) ListFeaturedGames(ctx context.Context) ([]*models.Game, error) {
	const op = "postgres.ListFeaturedGames"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	return s.listGames(ctx, op, `SELECT `+gameColumns+` FROM games WHERE featured = true ORDER BY id`)
}

// GetGame returns a single game by id.
func (s *Storage) GetGame(ctx context.Context, id int) (*models.Game, error) {
	const op = "postgres.GetGame"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`
	g, err := scanGame(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return g, nil
}

// CreateGame inserts a game into the catalog.
func (s *Storage) CreateGame(ctx context.Context, game models.NewGame) (*models.Game, error) {
	const op = "postgres.CreateGame"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO games (title, description, image_url, age_range, game_type, route, featured)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + gameColumns
	g, err := scanGame(s.DB.QueryRowContext(ctx, query,
		game.Title, game.Description, game.ImageURL, game.AgeRange,
		game.GameType, game.Route, game.Featured))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return g, nil
}

const planColumns = `id, name, duration, price, features, popular`

// Features are stored as a JSONB array.
func scanPlan(row rowScanner) (*models.Plan, error) {
	p := &models.Plan{}
	var features []byte
	if err := row.Scan(&p.ID, &p.Name, &p.Duration, &p.Price, &features, &p.Popular); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(features, &p.Features); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPlans returns all subscription plans ordered by duration.
func (s *Storage) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	const op = "postgres.ListPlans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + planColumns + ` FROM subscription_plans ORDER BY duration`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var plans []*models.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		plans = append(plans, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return plans, nil
}

// GetPlan returns a single plan by id.
func (s *Storage) GetPlan(ctx context.Context, id int) (*models.Plan, error) {
	const op = "postgres.GetPlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + planColumns + ` FROM subscription_plans WHERE id = $1`
	p, err := scanPlan(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return p, nil
}

// CreatePlan inserts a subscription plan.
func (s *Storage) CreatePlan(ctx context.Context, plan models.NewPlan) (*models.Plan, error) {
	const op = "postgres.CreatePlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	features, err := json.Marshal(plan.Features)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO subscription_plans (name, duration, price, features, popular)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING ` + planColumns
	p, err := scanPlan(s.DB.QueryRowContext(ctx, query,
		plan.Name, plan.Duration, plan.Price, features, plan.Popular))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return p, nil
}

const letterColumns = `id, letter, name, sound_url, isolated, initial, medial, final`

func scanLetter(row rowScanner) (*models.Letter, error) {
	l := &models.Letter{}
	var soundURL sql.NullString
	if err := row.Scan(&l.ID, &l.Letter, &l.Name, &soundURL,
		&l.Isolated, &l.Initial, &l.Medial, &l.Final); err != nil {
		return nil, err
	}
	if soundURL.Valid {
		l.SoundURL = &soundURL.String
	}
	return l, nil
}

func (s *Storage) letterExamples(ctx context.Context, letterID int) ([]models.LetterExample, error) {
	query := `SELECT word, translation FROM letter_examples WHERE letter_id = $1 ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, letterID)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var examples []models.LetterExample
	for rows.Next() {
		var e models.LetterExample
		if err = rows.Scan(&e.Word, &e.Translation); err != nil {
			return nil, err
		}
		examples = append(examples, e)
	}
	return examples, rows.Err()
}

// ListLetters returns all letters with their examples joined in.
func (s *Storage) ListLetters(ctx context.Context) ([]*models.Letter, error) {
	const op = "postgres.ListLetters"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + letterColumns + ` FROM letters ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var letters []*models.Letter
	for rows.Next() {
		l, err := scanLetter(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		letters = append(letters, l)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, l := range letters {
		if l.Examples, err = s.letterExamples(ctx, l.ID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return letters, nil
}

func (s *Storage) getLetter(ctx context.Context, op, query string, arg any) (*models.Letter, error) {
	l, err := scanLetter(s.DB.QueryRowContext(ctx, query, arg))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	if l.Examples, err = s.letterExamples(ctx, l.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return l, nil
}

// GetLetter returns a single letter by id, examples included.
func (s *Storage) GetLetter(ctx context.Context, id int) (*models.Letter, error) {
	const op = "postgres.GetLetter"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	return s.getLetter(ctx, op, `SELECT `+letterColumns+` FROM letters WHERE id = $1`, id)
}

// GetLetterByChar returns a single letter by its character, examples included.
func (s *Storage) GetLetterByChar(ctx context.Context, letter string) (*models.Letter, error) {
	const op = "postgres.GetLetterByChar"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	return s.getLetter(ctx, op, `SELECT `+letterColumns+` FROM letters WHERE letter = $1`, letter)
}

// CreateLetter inserts a letter and its examples in one transaction.
func (s *Storage) CreateLetter(ctx context.Context, letter models.NewLetter) (*models.Letter, error) {
	const op = "postgres.CreateLetter"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `INSERT INTO letters (letter, name, sound_url, isolated, initial, medial, final)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + letterColumns
	l, err := scanLetter(tx.QueryRowContext(ctx, query,
		letter.Letter, letter.Name, letter.SoundURL,
		letter.Isolated, letter.Initial, letter.Medial, letter.Final))
	if err != nil {
		return nil, wrapErr(op, err)
	}

	for _, e := range letter.Examples {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO letter_examples (letter_id, word, translation) VALUES ($1, $2, $3)`,
			l.ID, e.Word, e.Translation)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	l.Examples = letter.Examples
	return l, nil
}
