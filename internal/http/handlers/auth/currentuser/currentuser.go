package currentuser

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
	"github.com/awladnasem/alefbata/internal/models"
	"github.com/awladnasem/alefbata/internal/storage"
)

type UserGetter interface {
	GetUser(ctx context.Context, id int) (*models.User, error)
}

// New
// @Summary Return the logged-in account
// @Tags auth
// @Produce json
// @Success 200 {object} response.Response "Current user"
// @Failure 401 {object} response.ErrorResponse "Not logged in"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /user [get]
func New(log *slog.Logger, users UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.currentuser.New"

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

		user, err := users.GetUser(r.Context(), identity.UserID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				// Session outlived the account.
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}
			log.Error("failed to load user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to load user"))
			return
		}

		render.JSON(w, r, response.StatusOKWithData(user))
	}
}
