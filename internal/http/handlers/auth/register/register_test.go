package register_test

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

	"github.com/awladnasem/alefbata/internal/http/handlers/auth/register"
	"github.com/awladnasem/alefbata/internal/http/response"
	"github.com/awladnasem/alefbata/internal/models"
	"github.com/awladnasem/alefbata/internal/session"
	"github.com/awladnasem/alefbata/internal/storage"
	"github.com/awladnasem/alefbata/internal/testutil"
)

type mockRegistration struct {
	RegisterFunc func(ctx context.Context, username, password, email, fullName string) (*models.User, error)
}

func (m *mockRegistration) Register(ctx context.Context, username, password, email, fullName string) (*models.User, error) {
	return m.RegisterFunc(ctx, username, password, email, fullName)
}

func newSessions(t *testing.T) *session.Manager {
	t.Helper()
	store := session.NewMemStore(time.Hour)
	t.Cleanup(func() { _ = store.Close() })
	return session.NewManager(session.NewCodec("test-secret", time.Hour, false), store)
}

func validBody() []byte {
	body, _ := json.Marshal(register.RegisterRequest{
		Username: "sara",
		Password: "secret123",
		Email:    "sara@example.com",
		FullName: "Sara Ahmed",
	})
	return body
}

func TestRegisterHandler(t *testing.T) {
	t.Run("success logs the new user in", func(t *testing.T) {
		registration := &mockRegistration{
			RegisterFunc: func(_ context.Context, username, password, email, fullName string) (*models.User, error) {
				require.Equal(t, "sara", username)
				require.Equal(t, "secret123", password)
				require.Equal(t, "sara@example.com", email)
				require.Equal(t, "Sara Ahmed", fullName)
				return &models.User{ID: 1, Username: username, Email: email, FullName: fullName}, nil
			},
		}
		sessions := newSessions(t)

		req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewReader(validBody()))
		w := httptest.NewRecorder()

		register.New(testutil.DiscardLogger(), registration, sessions).ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var resp response.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, response.StatusOK, resp.Status)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, session.CookieName, cookies[0].Name)
	})

	t.Run("duplicate username", func(t *testing.T) {
		registration := &mockRegistration{
			RegisterFunc: func(context.Context, string, string, string, string) (*models.User, error) {
				return nil, fmt.Errorf("auth.Register: %w", storage.ErrConflict)
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewReader(validBody()))
		w := httptest.NewRecorder()

		register.New(testutil.DiscardLogger(), registration, newSessions(t)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("invalid email", func(t *testing.T) {
		body, _ := json.Marshal(register.RegisterRequest{
			Username: "sara",
			Password: "secret123",
			Email:    "not-an-email",
			FullName: "Sara Ahmed",
		})
		registration := &mockRegistration{
			RegisterFunc: func(context.Context, string, string, string, string) (*models.User, error) {
				t.Fatal("Register should not be called")
				return nil, nil
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewReader(body))
		w := httptest.NewRecorder()

		register.New(testutil.DiscardLogger(), registration, newSessions(t)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
