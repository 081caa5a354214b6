package verifyemail_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awladnasem/alefbata/internal/http/handlers/auth/verifyemail"
	"github.com/awladnasem/alefbata/internal/models"
	authservice "github.com/awladnasem/alefbata/internal/services/auth"
	"github.com/awladnasem/alefbata/internal/testutil"
)

type mockVerifier struct {
	VerifyFunc func(ctx context.Context, token string) (*models.User, error)
}

func (m *mockVerifier) VerifyEmail(ctx context.Context, token string) (*models.User, error) {
	return m.VerifyFunc(ctx, token)
}

func TestVerifyEmailHandler(t *testing.T) {
	t.Run("success redirects to the success page", func(t *testing.T) {
		verifier := &mockVerifier{
			VerifyFunc: func(_ context.Context, token string) (*models.User, error) {
				require.Equal(t, "goodtoken", token)
				return &models.User{ID: 1, IsVerified: true}, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/api/verify-email?token=goodtoken", nil)
		w := httptest.NewRecorder()

		verifyemail.New(testutil.DiscardLogger(), verifier).ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/verification-success", w.Header().Get("Location"))
	})

	t.Run("missing token", func(t *testing.T) {
		verifier := &mockVerifier{
			VerifyFunc: func(context.Context, string) (*models.User, error) {
				t.Fatal("VerifyEmail should not be called")
				return nil, nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/api/verify-email", nil)
		w := httptest.NewRecorder()

		verifyemail.New(testutil.DiscardLogger(), verifier).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown token", func(t *testing.T) {
		verifier := &mockVerifier{
			VerifyFunc: func(context.Context, string) (*models.User, error) {
				return nil, fmt.Errorf("auth.VerifyEmail: %w", authservice.ErrInvalidToken)
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/api/verify-email?token=bad", nil)
		w := httptest.NewRecorder()

		verifyemail.New(testutil.DiscardLogger(), verifier).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
