package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/awladnasem/alefbata/internal/http/response"
	"github.com/awladnasem/alefbata/internal/lib/sl"
	"github.com/awladnasem/alefbata/internal/models"
	"github.com/awladnasem/alefbata/internal/storage"
)

type LetterGetter interface {
	GetLetter(ctx context.Context, id int) (*models.Letter, error)
	GetLetterByChar(ctx context.Context, letter string) (*models.Letter, error)
}

// New reads one letter. The path parameter is either a numeric id or the
// letter itself, e.g. /arabic-letters/3 and /arabic-letters/ت both work.
// @Summary Read one letter by id or character
// @Tags letters
// @Produce json
// @Param   key path string true "Letter ID or the letter itself"
// @Success 200 {object} response.Response "Letter with examples"
// @Failure 404 {object} response.ErrorResponse "Unknown letter"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /arabic-letters/{key} [get]
func New(log *slog.Logger, letters LetterGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.letter.read.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		key := chi.URLParam(r, "key")

		var letter *models.Letter
		var err error
		if id, convErr := strconv.Atoi(key); convErr == nil {
			letter, err = letters.GetLetter(r.Context(), id)
		} else {
			letter, err = letters.GetLetterByChar(r.Context(), key)
		}
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("letter not found"))
				return
			}
			log.Error("failed to read letter", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to read letter"))
			return
		}

		render.JSON(w, r, response.StatusOKWithData(letter))
	}
}
