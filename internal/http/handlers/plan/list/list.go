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

type PlanLister interface {
	ListPlans(ctx context.Context) ([]*models.Plan, error)
}

// New
// @Summary List the subscription plans
// @Tags plans
// @Produce json
// @Success 200 {object} response.Response "Plans, shortest duration first"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /subscription-plans [get]
func New(log *slog.Logger, plans PlanLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.plan.list.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		result, err := plans.ListPlans(r.Context())
		if err != nil {
			log.Error("failed to list plans", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list plans"))
			return
		}

		render.JSON(w, r, response.StatusOKWithData(result))
	}
}
