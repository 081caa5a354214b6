package server

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/awladnasem/alefbata/internal/http/handlers/auth/currentuser"
	"github.com/awladnasem/alefbata/internal/http/handlers/auth/forgotpassword"
	"github.com/awladnasem/alefbata/internal/http/handlers/auth/login"
	"github.com/awladnasem/alefbata/internal/http/handlers/auth/logout"
	"github.com/awladnasem/alefbata/internal/http/handlers/auth/register"
	"github.com/awladnasem/alefbata/internal/http/handlers/auth/requestverification"
	"github.com/awladnasem/alefbata/internal/http/handlers/auth/resetpassword"
	"github.com/awladnasem/alefbata/internal/http/handlers/auth/verifyemail"
	gamelist "github.com/awladnasem/alefbata/internal/http/handlers/game/list"
	gameread "github.com/awladnasem/alefbata/internal/http/handlers/game/read"
	letterlist "github.com/awladnasem/alefbata/internal/http/handlers/letter/list"
	letterread "github.com/awladnasem/alefbata/internal/http/handlers/letter/read"
	planlist "github.com/awladnasem/alefbata/internal/http/handlers/plan/list"
	progresslist "github.com/awladnasem/alefbata/internal/http/handlers/progress/list"
	progresssave "github.com/awladnasem/alefbata/internal/http/handlers/progress/save"
	"github.com/awladnasem/alefbata/internal/http/handlers/subscribe"
	"github.com/awladnasem/alefbata/internal/http/mware"
	authservice "github.com/awladnasem/alefbata/internal/services/auth"
	catalogservice "github.com/awladnasem/alefbata/internal/services/catalog"
	progressservice "github.com/awladnasem/alefbata/internal/services/progress"
	subscriptionservice "github.com/awladnasem/alefbata/internal/services/subscription"
	"github.com/awladnasem/alefbata/internal/session"
)

// RegisterRoutes mounts every route of the API.
func RegisterRoutes(r chi.Router, logger *slog.Logger, sessions *session.Manager,
	users currentuser.UserGetter,
	authService *authservice.Service,
	catalogService *catalogservice.Service,
	subscriptionService *subscriptionservice.Service,
	progressService *progressservice.Service,
) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		mware.SessionMiddleware(sessions, logger),
	)

	r.Route("/api", func(r chi.Router) {
		// Open endpoints.
		r.Post("/register", register.New(logger, authService, sessions).ServeHTTP)
		r.Post("/login", login.New(logger, authService, sessions).ServeHTTP)
		r.Post("/logout", logout.New(logger, sessions).ServeHTTP)
		r.Get("/verify-email", verifyemail.New(logger, authService).ServeHTTP)
		r.Post("/forgot-password", forgotpassword.New(logger, authService).ServeHTTP)
		r.Post("/reset-password", resetpassword.New(logger, authService).ServeHTTP)

		r.Get("/games", gamelist.New(logger, catalogService).ServeHTTP)
		r.Get("/games/featured", gamelist.NewFeatured(logger, catalogService).ServeHTTP)
		r.Get("/games/{id}", gameread.New(logger, catalogService).ServeHTTP)
		r.Get("/subscription-plans", planlist.New(logger, catalogService).ServeHTTP)
		r.Get("/arabic-letters", letterlist.New(logger, catalogService).ServeHTTP)
		r.Get("/arabic-letters/{key}", letterread.New(logger, catalogService).ServeHTTP)

		// Endpoints that need a login.
		r.Group(func(r chi.Router) {
			r.Use(mware.RequireAuth(logger))
			r.Use(mware.RateLimitMiddleware(rate.Limit(50), 100, logger))
			r.Get("/user", currentuser.New(logger, users).ServeHTTP)
			r.Post("/request-verification", requestverification.New(logger, authService).ServeHTTP)
			r.Post("/subscribe", subscribe.New(logger, subscriptionService).ServeHTTP)
			r.Get("/user-progress", progresslist.New(logger, progressService).ServeHTTP)
			r.Post("/user-progress", progresssave.New(logger, progressService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
