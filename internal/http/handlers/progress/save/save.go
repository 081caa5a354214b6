package save

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/awladnasem/alefbata/internal/http/mware"
	"github.com/awladnasem/alefbata/internal/http/response"
	"github.com/awladnasem/alefbata/internal/lib/sl"
	"github.com/awladnasem/alefbata/internal/models"
	progressservice "github.com/awladnasem/alefbata/internal/services/progress"
)

type SaveRequest struct {
	GameID          int    `json:"game_id" validate:"required,min=1"`
	Score           int    `json:"score" validate:"min=0"`
	CompletedLevels string `json:"completed_levels"`
}

type ProgressSaver interface {
	Save(ctx context.Context, entry models.ProgressEntry) (*models.UserProgress, error)
}

// New
// @Summary Record the logged-in user's progress for one game
// @Tags progress
// @Accept  json
// @Produce json
// @Param   saveRequest body SaveRequest true "Progress data"
// @Success 200 {object} response.Response "Stored progress row"
// @Failure 400 {object} response.ErrorResponse "Validation error"
// @Failure 401 {object} response.ErrorResponse "Not logged in"
// @Failure 404 {object} response.ErrorResponse "Unknown game"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /user-progress [post]
func New(log *slog.Logger, saver ProgressSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.progress.save.New"
		var saveRequest SaveRequest

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

		if err := render.DecodeJSON(r.Body, &saveRequest); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err := validator.New().Struct(saveRequest); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		result, err := saver.Save(r.Context(), models.ProgressEntry{
			UserID:          identity.UserID,
			GameID:          saveRequest.GameID,
			Score:           saveRequest.Score,
			CompletedLevels: saveRequest.CompletedLevels,
		})
		if err != nil {
			if errors.Is(err, progressservice.ErrUnknownGame) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("game not found"))
				return
			}
			log.Error("failed to save progress", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to save progress"))
			return
		}

		render.JSON(w, r, response.StatusOKWithData(result))
	}
}
