package requestverification

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/awladnasem/alefbata/internal/http/mware"
	"github.com/awladnasem/alefbata/internal/http/response"
	"github.com/awladnasem/alefbata/internal/lib/sl"
	authservice "github.com/awladnasem/alefbata/internal/services/auth"
)

type VerificationRequester interface {
	RequestVerification(ctx context.Context, userID int) error
}

// New
// @Summary Send a fresh verification email to the logged-in account
// @Tags auth
// @Produce json
// @Success 200 {object} response.Response "Email sent"
// @Failure 400 {object} response.ErrorResponse "Email already verified"
// @Failure 401 {object} response.ErrorResponse "Not logged in"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /request-verification [post]
func New(log *slog.Logger, requester VerificationRequester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.requestverification.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		identity, ok := mware.IdentityFromContext(r.Context())
		if !ok {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authentication required"))
			return
		}

		if err := requester.RequestVerification(r.Context(), identity.UserID); err != nil {
			if errors.Is(err, authservice.ErrAlreadyVerified) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("email already verified"))
				return
			}
			log.Error("failed to send verification email", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to send verification email"))
			return
		}

		log.Info("verification email sent", slog.Int("user_id", identity.UserID))
		render.JSON(w, r, response.OK())
	}
}
