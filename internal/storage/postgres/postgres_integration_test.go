package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/awladnasem/alefbata/internal/migrations"
	"github.com/awladnasem/alefbata/internal/models"
	"github.com/awladnasem/alefbata/internal/storage"
)

func setupStorage(t *testing.T) *Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, container.Terminate(ctx))
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := New(connStr)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})

	require.NoError(t, migrations.Run(s.DB, "../../../migrations"))
	return s
}

func TestPostgresIntegration(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	t.Run("seed is idempotent", func(t *testing.T) {
		require.NoError(t, s.Seed(ctx))
		require.NoError(t, s.Seed(ctx))

		games, err := s.ListGames(ctx)
		require.NoError(t, err)
		assert.Len(t, games, 6)

		plans, err := s.ListPlans(ctx)
		require.NoError(t, err)
		require.Len(t, plans, 3)
		assert.Equal(t, 1, plans[0].Duration)
		assert.Equal(t, []string{
			"وصول كامل لجميع الألعاب",
			"تتبع تقدم التعلم",
			"دعم فني أساسي",
		}, plans[0].Features)

		letters, err := s.ListLetters(ctx)
		require.NoError(t, err)
		require.Len(t, letters, 8)
		assert.Len(t, letters[0].Examples, 3)
	})

	t.Run("unique constraints map to conflict", func(t *testing.T) {
		_, err := s.CreateUser(ctx, models.NewUser{
			Username: "sara", PasswordHash: "h", Email: "sara@example.com", FullName: "Sara",
		})
		require.NoError(t, err)

		_, err = s.CreateUser(ctx, models.NewUser{
			Username: "sara", PasswordHash: "h", Email: "other@example.com", FullName: "Other",
		})
		assert.ErrorIs(t, err, storage.ErrConflict)

		_, err = s.CreateUser(ctx, models.NewUser{
			Username: "other", PasswordHash: "h", Email: "sara@example.com", FullName: "Other",
		})
		assert.ErrorIs(t, err, storage.ErrConflict)

		_, err = s.CreateLetter(ctx, models.NewLetter{
			Letter: "ا", Name: "ألف", Isolated: "ا", Initial: "ا", Medial: "ـا", Final: "ـا",
		})
		assert.ErrorIs(t, err, storage.ErrConflict)
	})

	t.Run("token flows", func(t *testing.T) {
		user, err := s.CreateUser(ctx, models.NewUser{
			Username: "omar", PasswordHash: "h", Email: "omar@example.com", FullName: "Omar",
		})
		require.NoError(t, err)

		_, err = s.SetVerificationToken(ctx, user.ID, "vtoken")
		require.NoError(t, err)

		found, err := s.GetUserByVerificationToken(ctx, "vtoken")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)

		verified, err := s.VerifyUser(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, verified.IsVerified)
		assert.Nil(t, verified.VerificationToken)

		_, err = s.GetUserByVerificationToken(ctx, "vtoken")
		assert.ErrorIs(t, err, storage.ErrNotFound)

		// Expired reset tokens never match.
		_, err = s.SetResetPasswordToken(ctx, user.ID, "rtoken", time.Now().Add(-time.Minute))
		require.NoError(t, err)
		_, err = s.GetUserByResetPasswordToken(ctx, "rtoken")
		assert.ErrorIs(t, err, storage.ErrNotFound)

		_, err = s.SetResetPasswordToken(ctx, user.ID, "rtoken2", time.Now().Add(time.Hour))
		require.NoError(t, err)
		withToken, err := s.GetUserByResetPasswordToken(ctx, "rtoken2")
		require.NoError(t, err)

		after, err := s.ResetPassword(ctx, withToken.ID, "newhash")
		require.NoError(t, err)
		assert.Equal(t, "newhash", after.PasswordHash)
		assert.Nil(t, after.ResetPasswordToken)
		assert.Nil(t, after.ResetPasswordExpires)
	})

	t.Run("progress upsert keeps one row", func(t *testing.T) {
		user, err := s.CreateUser(ctx, models.NewUser{
			Username: "lina", PasswordHash: "h", Email: "lina@example.com", FullName: "Lina",
		})
		require.NoError(t, err)

		first, err := s.UpsertUserProgress(ctx, models.ProgressEntry{
			UserID: user.ID, GameID: 1, Score: 10, CompletedLevels: "1",
		})
		require.NoError(t, err)

		second, err := s.UpsertUserProgress(ctx, models.ProgressEntry{
			UserID: user.ID, GameID: 1, Score: 25, CompletedLevels: "1,2",
		})
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 25, second.Score)

		rows, err := s.ListUserProgress(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("subscription and expiry scan", func(t *testing.T) {
		user, err := s.CreateUser(ctx, models.NewUser{
			Username: "nour", PasswordHash: "h", Email: "nour@example.com", FullName: "Nour",
		})
		require.NoError(t, err)

		tomorrow := time.Now().AddDate(0, 0, 1)
		updated, err := s.UpdateUserSubscription(ctx, user.ID, "اشتراك شهري", tomorrow)
		require.NoError(t, err)
		assert.True(t, updated.IsSubscribed)

		expiring, err := s.ListSubscriptionsExpiringTomorrow(ctx)
		require.NoError(t, err)

		var found bool
		for _, e := range expiring {
			if e.Email == "nour@example.com" {
				found = true
				assert.Equal(t, "اشتراك شهري", e.Tier)
			}
		}
		assert.True(t, found)
	})
}
