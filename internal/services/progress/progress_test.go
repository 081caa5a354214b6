package progress

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awladnasem/alefbata/internal/models"
	"github.com/awladnasem/alefbata/internal/storage/memory"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setup(t *testing.T) (*Service, int) {
	t.Helper()
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.Seed(ctx))

	user, err := store.CreateUser(ctx, models.NewUser{
		Username: "sara", PasswordHash: "h", Email: "sara@example.com", FullName: "Sara",
	})
	require.NoError(t, err)
	return New(store, discardLogger()), user.ID
}

func TestSave_UnknownGame(t *testing.T) {
	svc, userID := setup(t)

	_, err := svc.Save(context.Background(), models.ProgressEntry{
		UserID: userID, GameID: 999, Score: 10,
	})
	assert.ErrorIs(t, err, ErrUnknownGame)
}

func TestSaveAndList(t *testing.T) {
	svc, userID := setup(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, models.ProgressEntry{
		UserID: userID, GameID: 1, Score: 10, CompletedLevels: "1",
	})
	require.NoError(t, err)

	updated, err := svc.Save(ctx, models.ProgressEntry{
		UserID: userID, GameID: 1, Score: 40, CompletedLevels: "1,2,3",
	})
	require.NoError(t, err)
	assert.Equal(t, 40, updated.Score)

	_, err = svc.Save(ctx, models.ProgressEntry{
		UserID: userID, GameID: 2, Score: 5, CompletedLevels: "1",
	})
	require.NoError(t, err)

	list, err := svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
