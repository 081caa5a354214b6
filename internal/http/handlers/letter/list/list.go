package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/awladnasem/alefbata/internal/http/response"
	"github.com/awladnasem/alefbata/internal/lib/sl"
	"github.com/awladnasem/alefbata/internal/models"
)

type LetterLister interface {
	ListLetters(ctx context.Context) ([]*models.Letter, error)
}

// New
// @Summary List the Arabic alphabet with example words
// @Tags letters
// @Produce json
// @Success 200 {object} response.Response "All letters"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /arabic-letters [get]
func New(log *slog.Logger, letters LetterLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.letter.list.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		result, err := letters.ListLetters(r.Context())
		if err != nil {
			log.Error("failed to list letters", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list letters"))
			return
		}

		render.JSON(w, r, response.StatusOKWithData(result))
	}
}
