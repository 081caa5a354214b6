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

type GameLister interface {
	ListGames(ctx context.Context) ([]*models.Game, error)
	ListFeaturedGames(ctx context.Context) ([]*models.Game, error)
}

// New
// @Summary List the game catalog
// @Tags games
// @Produce json
// @Success 200 {object} response.Response "All games"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /games [get]
func New(log *slog.Logger, games GameLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.game.list.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		result, err := games.ListGames(r.Context())
		if err != nil {
			log.Error("failed to list games", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list games"))
			return
		}

		render.JSON(w, r, response.StatusOKWithData(result))
	}
}

// NewFeatured
// @Summary List the games featured on the landing page
// @Tags games
// @Produce json
// @Success 200 {object} response.Response "Featured games"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /games/featured [get]
func NewFeatured(log *slog.Logger, games GameLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.game.list.NewFeatured"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		result, err := games.ListFeaturedGames(r.Context())
		if err != nil {
			log.Error("failed to list featured games", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list featured games"))
			return
		}

		render.JSON(w, r, response.StatusOKWithData(result))
	}
}
