package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awladnasem/alefbata/internal/app/server"
	"github.com/awladnasem/alefbata/internal/http/handlers/auth/register"
	"github.com/awladnasem/alefbata/internal/http/response"
	authservice "github.com/awladnasem/alefbata/internal/services/auth"
	catalogservice "github.com/awladnasem/alefbata/internal/services/catalog"
	progressservice "github.com/awladnasem/alefbata/internal/services/progress"
	subscriptionservice "github.com/awladnasem/alefbata/internal/services/subscription"
	"github.com/awladnasem/alefbata/internal/session"
	"github.com/awladnasem/alefbata/internal/storage/memory"
	"github.com/awladnasem/alefbata/internal/testutil"
)

type noopMailer struct{}

func (noopMailer) SendVerificationEmail(string, string, string) error  { return nil }
func (noopMailer) SendPasswordResetEmail(string, string, string) error { return nil }

// newRouter assembles the full route table over in-memory storage, the way
// the server does it at startup.
func newRouter(t *testing.T) chi.Router {
	t.Helper()

	log := testutil.DiscardLogger()
	store := memory.New()

	memStore := session.NewMemStore(time.Hour)
	t.Cleanup(func() { _ = memStore.Close() })
	sessions := session.NewManager(session.NewCodec("test-secret", time.Hour, false), memStore)

	router := chi.NewRouter()
	server.RegisterRoutes(router, log, sessions, store,
		authservice.New(store, noopMailer{}, log),
		catalogservice.New(store, nil, log),
		subscriptionservice.New(store, log),
		progressservice.New(store, log),
	)
	return router
}

func TestAccountLifecycle(t *testing.T) {
	router := newRouter(t)

	body, err := json.Marshal(register.RegisterRequest{
		Username: "huda",
		Password: "pass123",
		Email:    "huda@example.com",
		FullName: "Huda Ahmed",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/register", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "password")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	sessionCookie := cookies[0]

	// The fresh session answers GET /api/user.
	req = httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.AddCookie(sessionCookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]any)
	assert.Equal(t, "huda", data["username"])

	req = httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.AddCookie(sessionCookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	// The revoked session no longer authenticates.
	req = httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.AddCookie(sessionCookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
