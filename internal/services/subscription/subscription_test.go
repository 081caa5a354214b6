package subscription

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awladnasem/alefbata/internal/models"
	"github.com/awladnasem/alefbata/internal/storage"
	"github.com/awladnasem/alefbata/internal/storage/memory"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSubscribe(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.Seed(ctx))

	user, err := store.CreateUser(ctx, models.NewUser{
		Username: "sara", PasswordHash: "h", Email: "sara@example.com", FullName: "Sara",
	})
	require.NoError(t, err)

	plans, err := store.ListPlans(ctx)
	require.NoError(t, err)
	sixMonths := plans[1]
	require.Equal(t, 6, sixMonths.Duration)

	svc := New(store, discardLogger())
	got, err := svc.Subscribe(ctx, user.ID, sixMonths.ID)
	require.NoError(t, err)

	assert.True(t, got.IsSubscribed)
	require.NotNil(t, got.SubscriptionTier)
	assert.Equal(t, sixMonths.Name, *got.SubscriptionTier)
	require.NotNil(t, got.SubscriptionEndDate)
	assert.WithinDuration(t, time.Now().AddDate(0, 6, 0), *got.SubscriptionEndDate, time.Minute)
}

func TestSubscribe_Replaces(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	require.NoError(t, store.Seed(ctx))

	user, err := store.CreateUser(ctx, models.NewUser{
		Username: "sara", PasswordHash: "h", Email: "sara@example.com", FullName: "Sara",
	})
	require.NoError(t, err)

	plans, err := store.ListPlans(ctx)
	require.NoError(t, err)

	svc := New(store, discardLogger())
	_, err = svc.Subscribe(ctx, user.ID, plans[0].ID)
	require.NoError(t, err)

	got, err := svc.Subscribe(ctx, user.ID, plans[2].ID)
	require.NoError(t, err)
	require.NotNil(t, got.SubscriptionTier)
	assert.Equal(t, plans[2].Name, *got.SubscriptionTier)
	assert.WithinDuration(t, time.Now().AddDate(0, 12, 0), *got.SubscriptionEndDate, time.Minute)
}

func TestSubscribe_UnknownPlan(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	user, err := store.CreateUser(ctx, models.NewUser{
		Username: "sara", PasswordHash: "h", Email: "sara@example.com", FullName: "Sara",
	})
	require.NoError(t, err)

	svc := New(store, discardLogger())
	_, err = svc.Subscribe(ctx, user.ID, 999)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
