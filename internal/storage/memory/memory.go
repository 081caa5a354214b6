// Package memory implements the storage contract with in-process maps. It
// backs local development and tests; behavior matches the postgres
// implementation, including conflict and not-found semantics.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/awladnasem/alefbata/internal/models"
	"github.com/awladnasem/alefbata/internal/storage"
)

// Storage keeps everything in maps keyed by id. All access goes through a
// single mutex; values are copied on the way in and out so callers can't
// mutate stored state.
type Storage struct {
	mu sync.Mutex

	users    map[int]*models.User
	games    map[int]*models.Game
	plans    map[int]*models.Plan
	letters  map[int]*models.Letter
	progress map[int]*models.UserProgress

	userID     int
	gameID     int
	planID     int
	letterID   int
	progressID int
}

// New returns an empty in-memory store.
func New() *Storage {
	return &Storage{
		users:    make(map[int]*models.User),
		games:    make(map[int]*models.Game),
		plans:    make(map[int]*models.Plan),
		letters:  make(map[int]*models.Letter),
		progress: make(map[int]*models.UserProgress),
	}
}

// Close is a no-op; it exists so both implementations share a lifecycle.
func (s *Storage) Close() error { return nil }

func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}

func copyLetter(l *models.Letter) *models.Letter {
	c := *l
	c.Examples = append([]models.LetterExample(nil), l.Examples...)
	return &c
}

// GetUser returns a user by id.
func (s *Storage) GetUser(ctx context.Context, id int) (*models.User, error) {
	const op = "memory.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return copyUser(u), nil
}

// GetUserByUsername returns a user by username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "memory.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
}

// GetUserByEmail returns a user by email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "memory.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
}

// CreateUser inserts a new account; duplicate username or email returns
// storage.ErrConflict.
func (s *Storage) CreateUser(ctx context.Context, user models.NewUser) (*models.User, error) {
	const op = "memory.CreateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrConflict)
		}
	}
	s.userID++
	u := &models.User{
		ID:           s.userID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Email:        user.Email,
		FullName:     user.FullName,
		CreatedAt:    time.Now(),
	}
	s.users[u.ID] = u
	return copyUser(u), nil
}

func (s *Storage) updateUser(op string, id int, fn func(*models.User)) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	fn(u)
	return copyUser(u), nil
}

// UpdateUserSubscription marks the user subscribed with the given tier and
// end date.
func (s *Storage) UpdateUserSubscription(ctx context.Context, userID int, tier string, endDate time.Time) (*models.User, error) {
	const op = "memory.UpdateUserSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	return s.updateUser(op, userID, func(u *models.User) {
		u.IsSubscribed = true
		u.SubscriptionTier = &tier
		u.SubscriptionEndDate = &endDate
	})
}

// SetVerificationToken stores an email verification token on the user.
func (s *Storage) SetVerificationToken(ctx context.Context, userID int, token string) (*models.User, error) {
	const op = "memory.SetVerificationToken"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	return s.updateUser(op, userID, func(u *models.User) {
		u.VerificationToken = &token
	})
}

// GetUserByVerificationToken returns the user holding a verification token.
func (s *Storage) GetUserByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	const op = "memory.GetUserByVerificationToken"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.VerificationToken != nil && *u.VerificationToken == token {
			return copyUser(u), nil
		}
	}
	return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
}

// VerifyUser marks the user verified and clears the token. Idempotent.
func (s *Storage) VerifyUser(ctx context.Context, userID int) (*models.User, error) {
	const op = "memory.VerifyUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	return s.updateUser(op, userID, func(u *models.User) {
		u.IsVerified = true
		u.VerificationToken = nil
	})
}

// SetResetPasswordToken stores a reset token and its expiry on the user.
func (s *Storage) SetResetPasswordToken(ctx context.Context, userID int, token string, expires time.Time) (*models.User, error) {
	const op = "memory.SetResetPasswordToken"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	return s.updateUser(op, userID, func(u *models.User) {
		u.ResetPasswordToken = &token
		u.ResetPasswordExpires = &expires
	})
}

// GetUserByResetPasswordToken returns the user holding a reset token.
// Expiry is checked at read time; an expired token matches nothing.
func (s *Storage) GetUserByResetPasswordToken(ctx context.Context, token string) (*models.User, error) {
	const op = "memory.GetUserByResetPasswordToken"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ResetPasswordToken != nil && *u.ResetPasswordToken == token &&
			u.ResetPasswordExpires != nil && u.ResetPasswordExpires.After(time.Now()) {
			return copyUser(u), nil
		}
	}
	return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
}

// ResetPassword stores the new hash and clears the reset token and expiry.
func (s *Storage) ResetPassword(ctx context.Context, userID int, passwordHash string) (*models.User, error) {
	const op = "memory.ResetPassword"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	return s.updateUser(op, userID, func(u *models.User) {
		u.PasswordHash = passwordHash
		u.ResetPasswordToken = nil
		u.ResetPasswordExpires = nil
	})
}

// ListGames returns the whole game catalog ordered by id.
func (s *Storage) ListGames(ctx context.Context) ([]*models.Game, error) {
	const op = "memory.ListGames"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var games []*models.Game
	for id := 1; id <= s.gameID; id++ {
		if g, ok := s.games[id]; ok {
			c := *g
			games = append(games, &c)
		}
	}
	return games, nil
}

// ListFeaturedGames returns the games flagged for the landing page.
func (s *Storage) ListFeaturedGames(ctx context.Context) ([]*models.Game, error) {
	const op = "memory.ListFeaturedGames"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var games []*models.Game
	for id := 1; id <= s.gameID; id++ {
		if g, ok := s.games[id]; ok && g.Featured {
			c := *g
			games = append(games, &c)
		}
	}
	return games, nil
}

// GetGame returns a single game by id.
func (s *Storage) GetGame(ctx context.Context, id int) (*models.Game, error) {
	const op = "memory.GetGame"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	c := *g
	return &c, nil
}

// CreateGame inserts a game into the catalog.
func (s *Storage) CreateGame(ctx context.Context, game models.NewGame) (*models.Game, error) {
	const op = "memory.CreateGame"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.gameID++
	g := &models.Game{
		ID:          s.gameID,
		Title:       game.Title,
		Description: game.Description,
		ImageURL:    game.ImageURL,
		AgeRange:    game.AgeRange,
		GameType:    game.GameType,
		Route:       game.Route,
		Featured:    game.Featured,
	}
	s.games[g.ID] = g
	c := *g
	return &c, nil
}

// ListPlans returns all subscription plans ordered by duration.
func (s *Storage) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	const op = "memory.ListPlans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var plans []*models.Plan
	for id := 1; id <= s.planID; id++ {
		if p, ok := s.plans[id]; ok {
			c := *p
			c.Features = append([]string(nil), p.Features...)
			plans = append(plans, &c)
		}
	}
	for i := 1; i < len(plans); i++ {
		for j := i; j > 0 && plans[j-1].Duration > plans[j].Duration; j-- {
			plans[j-1], plans[j] = plans[j], plans[j-1]
		}
	}
	return plans, nil
}

// GetPlan returns a single plan by id.
func (s *Storage) GetPlan(ctx context.Context, id int) (*models.Plan, error) {
	const op = "memory.GetPlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.plans[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	c := *p
	c.Features = append([]string(nil), p.Features...)
	return &c, nil
}

// CreatePlan inserts a subscription plan.
func (s *Storage) CreatePlan(ctx context.Context, plan models.NewPlan) (*models.Plan, error) {
	const op = "memory.CreatePlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.planID++
	p := &models.Plan{
		ID:       s.planID,
		Name:     plan.Name,
		Duration: plan.Duration,
		Price:    plan.Price,
		Features: append([]string(nil), plan.Features...),
		Popular:  plan.Popular,
	}
	s.plans[p.ID] = p
	c := *p
	return &c, nil
}

// ListLetters returns all letters with their examples.
func (s *Storage) ListLetters(ctx context.Context) ([]*models.Letter, error) {
	const op = "memory.ListLetters"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var letters []*models.Letter
	for id := 1; id <= s.letterID; id++ {
		if l, ok := s.letters[id]; ok {
			letters = append(letters, copyLetter(l))
		}
	}
	return letters, nil
}

// GetLetter returns a single letter by id.
func (s *Storage) GetLetter(ctx context.Context, id int) (*models.Letter, error) {
	const op = "memory.GetLetter"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.letters[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	return copyLetter(l), nil
}

// GetLetterByChar returns a single letter by its character.
func (s *Storage) GetLetterByChar(ctx context.Context, letter string) (*models.Letter, error) {
	const op = "memory.GetLetterByChar"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.letters {
		if l.Letter == letter {
			return copyLetter(l), nil
		}
	}
	return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
}

// CreateLetter inserts a letter with its examples; duplicate characters
// return storage.ErrConflict.
func (s *Storage) CreateLetter(ctx context.Context, letter models.NewLetter) (*models.Letter, error) {
	const op = "memory.CreateLetter"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.letters {
		if l.Letter == letter.Letter {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrConflict)
		}
	}
	s.letterID++
	l := &models.Letter{
		ID:       s.letterID,
		Letter:   letter.Letter,
		Name:     letter.Name,
		SoundURL: letter.SoundURL,
		Isolated: letter.Isolated,
		Initial:  letter.Initial,
		Medial:   letter.Medial,
		Final:    letter.Final,
		Examples: append([]models.LetterExample(nil), letter.Examples...),
	}
	s.letters[l.ID] = l
	return copyLetter(l), nil
}

// ListUserProgress returns all progress rows for a user.
func (s *Storage) ListUserProgress(ctx context.Context, userID int) ([]*models.UserProgress, error) {
	const op = "memory.ListUserProgress"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var result []*models.UserProgress
	for id := 1; id <= s.progressID; id++ {
		if p, ok := s.progress[id]; ok && p.UserID == userID {
			c := *p
			result = append(result, &c)
		}
	}
	return result, nil
}

// UpsertUserProgress inserts or replaces the single progress row for
// (user, game).
func (s *Storage) UpsertUserProgress(ctx context.Context, entry models.ProgressEntry) (*models.UserProgress, error) {
	const op = "memory.UpsertUserProgress"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.progress {
		if p.UserID == entry.UserID && p.GameID == entry.GameID {
			p.Score = entry.Score
			p.CompletedLevels = entry.CompletedLevels
			p.LastPlayed = time.Now()
			c := *p
			return &c, nil
		}
	}
	s.progressID++
	p := &models.UserProgress{
		ID:              s.progressID,
		UserID:          entry.UserID,
		GameID:          entry.GameID,
		Score:           entry.Score,
		CompletedLevels: entry.CompletedLevels,
		LastPlayed:      time.Now(),
	}
	s.progress[p.ID] = p
	c := *p
	return &c, nil
}

// ListSubscriptionsExpiringTomorrow returns users whose paid subscription
// ends tomorrow.
func (s *Storage) ListSubscriptionsExpiringTomorrow(ctx context.Context) ([]*models.ExpiringSubscription, error) {
	const op = "memory.ListSubscriptionsExpiringTomorrow"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	tomorrow := time.Now().AddDate(0, 0, 1)
	var result []*models.ExpiringSubscription
	for _, u := range s.users {
		if !u.IsSubscribed || u.SubscriptionEndDate == nil || u.SubscriptionTier == nil {
			continue
		}
		y1, m1, d1 := u.SubscriptionEndDate.Date()
		y2, m2, d2 := tomorrow.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			result = append(result, &models.ExpiringSubscription{
				Email:    u.Email,
				Username: u.Username,
				FullName: u.FullName,
				Tier:     *u.SubscriptionTier,
				EndDate:  *u.SubscriptionEndDate,
			})
		}
	}
	return result, nil
}

// Seed populates the reference catalog once; a no-op when games exist.
func (s *Storage) Seed(ctx context.Context) error {
	const op = "memory.Seed"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	s.mu.Lock()
	seeded := s.gameID > 0
	s.mu.Unlock()
	if seeded {
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
