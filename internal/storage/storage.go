// Package storage defines the data-access contract for the application.
// Two implementations exist: postgres for production and memory for
// development and tests. Both behave identically.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/awladnasem/alefbata/internal/models"
)

// ErrNotFound is returned when a lookup matches no row. An expired reset
// token behaves as not found.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert violates a uniqueness constraint
// (username, email).
var ErrConflict = errors.New("already exists")

// Storage is the sole data-access boundary.
type Storage interface {
	// Users.
	GetUser(ctx context.Context, id int) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user models.NewUser) (*models.User, error)
	UpdateUserSubscription(ctx context.Context, userID int, tier string, endDate time.Time) (*models.User, error)

	// Email verification and password reset.
	SetVerificationToken(ctx context.Context, userID int, token string) (*models.User, error)
	GetUserByVerificationToken(ctx context.Context, token string) (*models.User, error)
	VerifyUser(ctx context.Context, userID int) (*models.User, error)
	SetResetPasswordToken(ctx context.Context, userID int, token string, expires time.Time) (*models.User, error)
	GetUserByResetPasswordToken(ctx context.Context, token string) (*models.User, error)
	ResetPassword(ctx context.Context, userID int, passwordHash string) (*models.User, error)

	// Game catalog.
	ListGames(ctx context.Context) ([]*models.Game, error)
	ListFeaturedGames(ctx context.Context) ([]*models.Game, error)
	GetGame(ctx context.Context, id int) (*models.Game, error)
	CreateGame(ctx context.Context, game models.NewGame) (*models.Game, error)

	// Subscription plans.
	ListPlans(ctx context.Context) ([]*models.Plan, error)
	GetPlan(ctx context.Context, id int) (*models.Plan, error)
	CreatePlan(ctx context.Context, plan models.NewPlan) (*models.Plan, error)

	// Arabic letters.
	ListLetters(ctx context.Context) ([]*models.Letter, error)
	GetLetter(ctx context.Context, id int) (*models.Letter, error)
	GetLetterByChar(ctx context.Context, letter string) (*models.Letter, error)
	CreateLetter(ctx context.Context, letter models.NewLetter) (*models.Letter, error)

	// Per-user progress.
	ListUserProgress(ctx context.Context, userID int) ([]*models.UserProgress, error)
	UpsertUserProgress(ctx context.Context, entry models.ProgressEntry) (*models.UserProgress, error)

	// Reminder feed.
	ListSubscriptionsExpiringTomorrow(ctx context.Context) ([]*models.ExpiringSubscription, error)

	// Seed populates the reference catalog once; a no-op when games exist.
	Seed(ctx context.Context) error
}
