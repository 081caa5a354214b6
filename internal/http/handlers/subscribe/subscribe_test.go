package subscribe_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awladnasem/alefbata/internal/http/handlers/subscribe"
	"github.com/awladnasem/alefbata/internal/http/mware"
	"github.com/awladnasem/alefbata/internal/http/response"
	"github.com/awladnasem/alefbata/internal/models"
	"github.com/awladnasem/alefbata/internal/session"
	"github.com/awladnasem/alefbata/internal/storage"
	"github.com/awladnasem/alefbata/internal/testutil"
)

type mockSubscriber struct {
	SubscribeFunc func(ctx context.Context, userID, planID int) (*models.User, error)
}

func (m *mockSubscriber) Subscribe(ctx context.Context, userID, planID int) (*models.User, error) {
	return m.SubscribeFunc(ctx, userID, planID)
}

func authedRequest(body []byte) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/subscribe", bytes.NewReader(body))
	return req.WithContext(mware.WithIdentity(req.Context(), session.Identity{UserID: 7, Username: "sara"}))
}

func TestSubscribeHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		body, _ := json.Marshal(subscribe.SubscribeRequest{PlanID: 2})
		tier := "اشتراك 6 أشهر"

		subscriber := &mockSubscriber{
			SubscribeFunc: func(_ context.Context, userID, planID int) (*models.User, error) {
				require.Equal(t, 7, userID)
				require.Equal(t, 2, planID)
				return &models.User{ID: 7, Username: "sara", IsSubscribed: true, SubscriptionTier: &tier}, nil
			},
		}

		w := httptest.NewRecorder()
		subscribe.New(testutil.DiscardLogger(), subscriber).ServeHTTP(w, authedRequest(body))

		require.Equal(t, http.StatusOK, w.Code)
		var resp response.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp.Data.(map[string]any)
		assert.Equal(t, true, data["is_subscribed"])
		assert.Equal(t, tier, data["subscription_tier"])
	})

	t.Run("anonymous", func(t *testing.T) {
		body, _ := json.Marshal(subscribe.SubscribeRequest{PlanID: 2})
		subscriber := &mockSubscriber{
			SubscribeFunc: func(context.Context, int, int) (*models.User, error) {
				t.Fatal("Subscribe should not be called")
				return nil, nil
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/api/subscribe", bytes.NewReader(body))
		w := httptest.NewRecorder()
		subscribe.New(testutil.DiscardLogger(), subscriber).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown plan", func(t *testing.T) {
		body, _ := json.Marshal(subscribe.SubscribeRequest{PlanID: 99})
		subscriber := &mockSubscriber{
			SubscribeFunc: func(context.Context, int, int) (*models.User, error) {
				return nil, fmt.Errorf("subscription.Subscribe: %w", storage.ErrNotFound)
			},
		}

		w := httptest.NewRecorder()
		subscribe.New(testutil.DiscardLogger(), subscriber).ServeHTTP(w, authedRequest(body))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing plan id", func(t *testing.T) {
		subscriber := &mockSubscriber{
			SubscribeFunc: func(context.Context, int, int) (*models.User, error) {
				t.Fatal("Subscribe should not be called")
				return nil, nil
			},
		}

		w := httptest.NewRecorder()
		subscribe.New(testutil.DiscardLogger(), subscriber).ServeHTTP(w, authedRequest([]byte(`{}`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
