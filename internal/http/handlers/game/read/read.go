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

type GameGetter interface {
	GetGame(ctx context.Context, id int) (*models.Game, error)
}

// New
// @Summary Read one game by id
// @Tags games
// @Produce json
// @Param   id path int true "Game ID"
// @Success 200 {object} response.Response "Game"
// @Failure 400 {object} response.ErrorResponse "Invalid id"
// @Failure 404 {object} response.ErrorResponse "Unknown game"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /games/{id} [get]
func New(log *slog.Logger, games GameGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.game.read.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid game id"))
			return
		}

		game, err := games.GetGame(r.Context(), id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("game not found"))
				return
			}
			log.Error("failed to read game", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to read game"))
			return
		}

		render.JSON(w, r, response.StatusOKWithData(game))
	}
}
