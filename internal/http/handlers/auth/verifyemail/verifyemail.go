package verifyemail

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/awladnasem/alefbata/internal/http/response"
	"github.com/awladnasem/alefbata/internal/lib/sl"
	"github.com/awladnasem/alefbata/internal/models"
	authservice "github.com/awladnasem/alefbata/internal/services/auth"
)

type EmailVerifier interface {
	VerifyEmail(ctx context.Context, token string) (*models.User, error)
}

// New handles the link from the verification email. The browser lands
// here, so success redirects to the site instead of answering JSON.
// @Summary Redeem an email verification token
// @Tags auth
// @Produce json
// @Param   token query string true "Verification token"
// @Success 302 "Redirect to the verification success page"
// @Failure 400 {object} response.ErrorResponse "Missing token"
// @Failure 404 {object} response.ErrorResponse "Unknown or used token"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /verify-email [get]
func New(log *slog.Logger, verifier EmailVerifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.verifyemail.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		token := r.URL.Query().Get("token")
		if token == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("token is required"))
			return
		}

		user, err := verifier.VerifyEmail(r.Context(), token)
		if err != nil {
			if errors.Is(err, authservice.ErrInvalidToken) {
				log.Info("invalid verification token")
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}
			log.Error("failed to verify email", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to verify email"))
			return
		}

		log.Info("email verified", slog.Int("user_id", user.ID))
		http.Redirect(w, r, "/verification-success", http.StatusFound)
	}
}
