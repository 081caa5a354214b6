// Package mware holds the HTTP middleware: session resolution, the login
// guard and rate limiting.
package mware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/awladnasem/alefbata/internal/http/response"
	"github.com/awladnasem/alefbata/internal/session"
)

type contextKey struct{}

var identityKey contextKey

// IdentityFromContext returns the logged-in identity placed by
// SessionMiddleware, if any.
func IdentityFromContext(ctx context.Context) (session.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(session.Identity)
	return identity, ok
}

// WithIdentity returns ctx carrying identity. Exposed for handler tests.
func WithIdentity(ctx context.Context, identity session.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// SessionMiddleware resolves the session cookie and, when it checks out,
// puts the identity on the request context. Anonymous requests pass
// through untouched; RequireAuth decides who needs a login.
func SessionMiddleware(sessions *session.Manager, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := sessions.Resolve(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// RequireAuth rejects requests that carry no resolved identity.
func RequireAuth(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "mware.RequireAuth"

			if _, ok := IdentityFromContext(r.Context()); !ok {
				log.Info("unauthenticated request rejected",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("path", r.URL.Path))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
