package resetpassword

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/awladnasem/alefbata/internal/http/response"
	"github.com/awladnasem/alefbata/internal/lib/sl"
	authservice "github.com/awladnasem/alefbata/internal/services/auth"
)

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type PasswordResetter interface {
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// New
// @Summary Redeem a reset token and set a new password
// @Tags auth
// @Accept  json
// @Produce json
// @Param   resetPasswordRequest body ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} response.Response "Password replaced"
// @Failure 400 {object} response.ErrorResponse "Validation error"
// @Failure 404 {object} response.ErrorResponse "Invalid or expired token"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /reset-password [post]
func New(log *slog.Logger, resetter PasswordResetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.resetpassword.New"
		var resetPasswordRequest ResetPasswordRequest

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if err := render.DecodeJSON(r.Body, &resetPasswordRequest); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err := validator.New().Struct(resetPasswordRequest); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		err := resetter.ResetPassword(r.Context(), resetPasswordRequest.Token, resetPasswordRequest.Password)
		if err != nil {
			if errors.Is(err, authservice.ErrInvalidToken) {
				log.Info("invalid reset token")
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}
			log.Error("failed to reset password", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to reset password"))
			return
		}

		log.Info("password reset completed")
		render.JSON(w, r, response.StatusOKWithData(map[string]any{
			"message": "password has been reset",
		}))
	}
}
