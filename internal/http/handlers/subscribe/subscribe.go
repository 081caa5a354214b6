package subscribe

import (
	"context"
	"encoding/json"
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
	"github.com/awladnasem/alefbata/internal/storage"
)

type SubscribeRequest struct {
	PlanID int `json:"plan_id" validate:"required,min=1"`
	// Payment details are accepted as-is; no provider round-trip happens here.
	PaymentDetails json.RawMessage `json:"payment_details"`
}

type Subscriber interface {
	Subscribe(ctx context.Context, userID, planID int) (*models.User, error)
}

// New
// @Summary Put the logged-in user on a subscription plan
// @Tags plans
// @Accept  json
// @Produce json
// @Param   subscribeRequest body SubscribeRequest true "Plan to activate"
// @Success 200 {object} response.Response "Updated account"
// @Failure 400 {object} response.ErrorResponse "Validation error"
// @Failure 401 {object} response.ErrorResponse "Not logged in"
// @Failure 404 {object} response.ErrorResponse "Unknown plan"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /subscribe [post]
func New(log *slog.Logger, subscriber Subscriber) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.subscribe.New"
		var subscribeRequest SubscribeRequest

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

		if err := render.DecodeJSON(r.Body, &subscribeRequest); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err := validator.New().Struct(subscribeRequest); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		user, err := subscriber.Subscribe(r.Context(), identity.UserID, subscribeRequest.PlanID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("plan not found"))
				return
			}
			log.Error("failed to activate subscription", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to activate subscription"))
			return
		}

		log.Info("subscription activated",
			slog.Int("user_id", identity.UserID),
			slog.Int("plan_id", subscribeRequest.PlanID))
		render.JSON(w, r, response.StatusOKWithData(user))
	}
}
