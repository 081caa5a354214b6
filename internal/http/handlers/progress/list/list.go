package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/awladnasem/alefbata/internal/http/mware"
	"github.com/awladnasem/alefbata/internal/http/response"
	"github.com/awladnasem/alefbata/internal/lib/sl"
	"github.com/awladnasem/alefbata/internal/models"
)

type ProgressLister interface {
	List(ctx context.Context, userID int) ([]*models.UserProgress, error)
}

// New
// @Summary List the logged-in user's game progress
// @Tags progress
// @Produce json
// @Success 200 {object} response.Response "Progress rows"
// @Failure 401 {object} response.ErrorResponse "Not logged in"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /user-progress [get]
func New(log *slog.Logger, progress ProgressLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.progress.list.New"

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

		result, err := progress.List(r.Context(), identity.UserID)
		if err != nil {
			log.Error("failed to list progress", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list progress"))
			return
		}

		render.JSON(w, r, response.StatusOKWithData(result))
	}
}
