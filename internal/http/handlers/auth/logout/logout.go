package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/awladnasem/alefbata/internal/http/response"
	"github.com/awladnasem/alefbata/internal/lib/sl"
	"github.com/awladnasem/alefbata/internal/session"
)

// New
// @Summary End the current session
// @Tags auth
// @Produce json
// @Success 200 {object} response.Response "Session ended"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /logout [post]
func New(log *slog.Logger, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.logout.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if err := sessions.Revoke(w, r); err != nil {
			log.Error("failed to revoke session", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to log out"))
			return
		}

		log.Info("user logged out")
		render.JSON(w, r, response.OK())
	}
}
