package forgotpassword

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/awladnasem/alefbata/internal/http/response"
	"github.com/awladnasem/alefbata/internal/lib/sl"
)

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetRequester interface {
	ForgotPassword(ctx context.Context, email string) error
}

// New starts the password reset flow. Known and unknown addresses get the
// same success reply, so the endpoint can't be used to probe for accounts.
// @Summary Request a password reset email
// @Tags auth
// @Accept  json
// @Produce json
// @Param   forgotPasswordRequest body ForgotPasswordRequest true "Account email"
// @Success 200 {object} response.Response "Reset email sent if the address exists"
// @Failure 400 {object} response.ErrorResponse "Validation error"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /forgot-password [post]
func New(log *slog.Logger, requester ResetRequester) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.forgotpassword.New"
		var forgotPasswordRequest ForgotPasswordRequest

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if err := render.DecodeJSON(r.Body, &forgotPasswordRequest); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err := validator.New().Struct(forgotPasswordRequest); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		if err := requester.ForgotPassword(r.Context(), forgotPasswordRequest.Email); err != nil {
			log.Error("failed to process reset request", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to process reset request"))
			return
		}

		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"message": "if the email exists, a reset link has been sent",
		}))
	}
}
