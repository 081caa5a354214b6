package login

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
	"github.com/awladnasem/alefbata/internal/models"
	authservice "github.com/awladnasem/alefbata/internal/services/auth"
	"github.com/awladnasem/alefbata/internal/session"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type Authenticator interface {
	Login(ctx context.Context, username, password string) (*models.User, error)
}

// New
// @Summary Log in with username and password
// @Tags auth
// @Accept  json
// @Produce json
// @Param   loginRequest body LoginRequest true "Credentials"
// @Success 200 {object} response.Response "Session started"
// @Failure 400 {object} response.ErrorResponse "Validation error"
// @Failure 401 {object} response.ErrorResponse "Incorrect username or password"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /login [post]
func New(log *slog.Logger, authenticator Authenticator, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.login.New"
		var loginRequest LoginRequest

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if err := render.DecodeJSON(r.Body, &loginRequest); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err := validator.New().Struct(loginRequest); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		user, err := authenticator.Login(r.Context(), loginRequest.Username, loginRequest.Password)
		if err != nil {
			if errors.Is(err, authservice.ErrInvalidCredentials) {
				log.Info("incorrect user or password", slog.String("username", loginRequest.Username))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("incorrect username or password"))
				return
			}
			log.Error("login failed", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("login failed"))
			return
		}

		if err := sessions.Issue(r.Context(), w, session.Identity{
			UserID:   user.ID,
			Username: user.Username,
		}); err != nil {
			log.Error("failed to start session", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to start session"))
			return
		}

		log.Info("user logged in", slog.String("username", user.Username))
		render.JSON(w, r, response.StatusOKWithData(user))
	}
}
