package login_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awladnasem/alefbata/internal/http/handlers/auth/login"
	"github.com/awladnasem/alefbata/internal/http/response"
	"github.com/awladnasem/alefbata/internal/models"
	authservice "github.com/awladnasem/alefbata/internal/services/auth"
	"github.com/awladnasem/alefbata/internal/session"
	"github.com/awladnasem/alefbata/internal/testutil"
)

type mockAuthenticator struct {
	LoginFunc func(ctx context.Context, username, password string) (*models.User, error)
}

func (m *mockAuthenticator) Login(ctx context.Context, username, password string) (*models.User, error) {
	return m.LoginFunc(ctx, username, password)
}

func newSessions(t *testing.T) *session.Manager {
	t.Helper()
	store := session.NewMemStore(time.Hour)
	t.Cleanup(func() { _ = store.Close() })
	return session.NewManager(session.NewCodec("test-secret", time.Hour, false), store)
}

func TestLoginHandler(t *testing.T) {
	t.Run("success sets session cookie", func(t *testing.T) {
		body, _ := json.Marshal(login.LoginRequest{
			Username: "sara",
			Password: "secret123",
		})

		authenticator := &mockAuthenticator{
			LoginFunc: func(_ context.Context, username, password string) (*models.User, error) {
				require.Equal(t, "sara", username)
				require.Equal(t, "secret123", password)
				return &models.User{ID: 7, Username: "sara", Email: "sara@example.com"}, nil
			},
		}
		sessions := newSessions(t)

		req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
		w := httptest.NewRecorder()

		login.New(testutil.DiscardLogger(), authenticator, sessions).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp response.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, response.StatusOK, resp.Status)

		data := resp.Data.(map[string]any)
		assert.Equal(t, "sara", data["username"])
		_, hasHash := data["password_hash"]
		assert.False(t, hasHash)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, session.CookieName, cookies[0].Name)

		// The cookie resolves back to the user.
		follow := httptest.NewRequest(http.MethodGet, "/", nil)
		follow.AddCookie(cookies[0])
		identity, err := sessions.Resolve(follow)
		require.NoError(t, err)
		assert.Equal(t, 7, identity.UserID)
	})

	t.Run("bad credentials", func(t *testing.T) {
		body, _ := json.Marshal(login.LoginRequest{Username: "sara", Password: "wrong1"})

		authenticator := &mockAuthenticator{
			LoginFunc: func(context.Context, string, string) (*models.User, error) {
				return nil, fmt.Errorf("auth.Login: %w", authservice.ErrInvalidCredentials)
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
		w := httptest.NewRecorder()

		login.New(testutil.DiscardLogger(), authenticator, newSessions(t)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("invalid JSON", func(t *testing.T) {
		authenticator := &mockAuthenticator{
			LoginFunc: func(context.Context, string, string) (*models.User, error) {
				t.Fatal("Login should not be called")
				return nil, nil
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader([]byte("{not json")))
		w := httptest.NewRecorder()

		login.New(testutil.DiscardLogger(), authenticator, newSessions(t)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		body, _ := json.Marshal(login.LoginRequest{Username: "sara"})

		authenticator := &mockAuthenticator{
			LoginFunc: func(context.Context, string, string) (*models.User, error) {
				t.Fatal("Login should not be called")
				return nil, nil
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
		w := httptest.NewRecorder()

		login.New(testutil.DiscardLogger(), authenticator, newSessions(t)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
