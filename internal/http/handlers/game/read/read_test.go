package read_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awladnasem/alefbata/internal/http/handlers/game/read"
	"github.com/awladnasem/alefbata/internal/http/response"
	"github.com/awladnasem/alefbata/internal/models"
	"github.com/awladnasem/alefbata/internal/storage"
	"github.com/awladnasem/alefbata/internal/testutil"
)

type mockGameGetter struct {
	GetFunc func(ctx context.Context, id int) (*models.Game, error)
}

func (m *mockGameGetter) GetGame(ctx context.Context, id int) (*models.Game, error) {
	return m.GetFunc(ctx, id)
}

func serve(t *testing.T, getter *mockGameGetter, path string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/api/games/{id}", read.New(testutil.DiscardLogger(), getter))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestReadGameHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		getter := &mockGameGetter{
			GetFunc: func(_ context.Context, id int) (*models.Game, error) {
				require.Equal(t, 4, id)
				return &models.Game{ID: 4, Title: "تعلم الأرقام", GameType: "numbers"}, nil
			},
		}

		w := serve(t, getter, "/api/games/4")

		require.Equal(t, http.StatusOK, w.Code)
		var resp response.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, response.StatusOK, resp.Status)
		assert.Equal(t, "numbers", resp.Data.(map[string]any)["game_type"])
	})

	t.Run("not found", func(t *testing.T) {
		getter := &mockGameGetter{
			GetFunc: func(context.Context, int) (*models.Game, error) {
				return nil, fmt.Errorf("postgres.GetGame: %w", storage.ErrNotFound)
			},
		}

		w := serve(t, getter, "/api/games/999")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		getter := &mockGameGetter{
			GetFunc: func(context.Context, int) (*models.Game, error) {
				t.Fatal("GetGame should not be called")
				return nil, nil
			},
		}

		w := serve(t, getter, "/api/games/abc")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
