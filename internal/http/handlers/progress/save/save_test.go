package save_test

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

	"github.com/awladnasem/alefbata/internal/http/handlers/progress/save"
	"github.com/awladnasem/alefbata/internal/http/mware"
	"github.com/awladnasem/alefbata/internal/http/response"
	"github.com/awladnasem/alefbata/internal/models"
	progressservice "github.com/awladnasem/alefbata/internal/services/progress"
	"github.com/awladnasem/alefbata/internal/session"
	"github.com/awladnasem/alefbata/internal/testutil"
)

type mockSaver struct {
	SaveFunc func(ctx context.Context, entry models.ProgressEntry) (*models.UserProgress, error)
}

func (m *mockSaver) Save(ctx context.Context, entry models.ProgressEntry) (*models.UserProgress, error) {
	return m.SaveFunc(ctx, entry)
}

func authedRequest(body []byte) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/user-progress", bytes.NewReader(body))
	return req.WithContext(mware.WithIdentity(req.Context(), session.Identity{UserID: 7, Username: "sara"}))
}

func TestSaveProgressHandler(t *testing.T) {
	t.Run("success uses the session user", func(t *testing.T) {
		body, _ := json.Marshal(save.SaveRequest{GameID: 1, Score: 30, CompletedLevels: "1,2"})

		saver := &mockSaver{
			SaveFunc: func(_ context.Context, entry models.ProgressEntry) (*models.UserProgress, error) {
				require.Equal(t, 7, entry.UserID)
				require.Equal(t, 1, entry.GameID)
				require.Equal(t, 30, entry.Score)
				return &models.UserProgress{ID: 1, UserID: 7, GameID: 1, Score: 30, CompletedLevels: "1,2"}, nil
			},
		}

		w := httptest.NewRecorder()
		save.New(testutil.DiscardLogger(), saver).ServeHTTP(w, authedRequest(body))

		require.Equal(t, http.StatusOK, w.Code)
		var resp response.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, response.StatusOK, resp.Status)
	})

	t.Run("anonymous", func(t *testing.T) {
		body, _ := json.Marshal(save.SaveRequest{GameID: 1, Score: 30})
		saver := &mockSaver{
			SaveFunc: func(context.Context, models.ProgressEntry) (*models.UserProgress, error) {
				t.Fatal("Save should not be called")
				return nil, nil
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/api/user-progress", bytes.NewReader(body))
		w := httptest.NewRecorder()
		save.New(testutil.DiscardLogger(), saver).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown game", func(t *testing.T) {
		body, _ := json.Marshal(save.SaveRequest{GameID: 99, Score: 1})
		saver := &mockSaver{
			SaveFunc: func(context.Context, models.ProgressEntry) (*models.UserProgress, error) {
				return nil, fmt.Errorf("progress.Save: %w", progressservice.ErrUnknownGame)
			},
		}

		w := httptest.NewRecorder()
		save.New(testutil.DiscardLogger(), saver).ServeHTTP(w, authedRequest(body))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing game id", func(t *testing.T) {
		saver := &mockSaver{
			SaveFunc: func(context.Context, models.ProgressEntry) (*models.UserProgress, error) {
				t.Fatal("Save should not be called")
				return nil, nil
			},
		}

		w := httptest.NewRecorder()
		save.New(testutil.DiscardLogger(), saver).ServeHTTP(w, authedRequest([]byte(`{"score":5}`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
