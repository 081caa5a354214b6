package register

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
	"github.com/awladnasem/alefbata/internal/session"
	"github.com/awladnasem/alefbata/internal/storage"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
}

type Registration interface {
	Register(ctx context.Context, username, password, email, fullName string) (*models.User, error)
}

// New
// @Summary Register a new account
// @Tags auth
// @Accept  json
// @Produce json
// @Param   registerRequest body RegisterRequest true "Registration data"
// @Success 201 {object} response.Response "Account created, session started"
// @Failure 400 {object} response.ErrorResponse "Validation error or duplicate username/email"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /register [post]
func New(log *slog.Logger, registration Registration, sessions *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.register.New"
		var registerRequest RegisterRequest

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if err := render.DecodeJSON(r.Body, &registerRequest); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err := validator.New().Struct(registerRequest); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		user, err := registration.Register(r.Context(),
			registerRequest.Username, registerRequest.Password,
			registerRequest.Email, registerRequest.FullName)
		if err != nil {
			if errors.Is(err, storage.ErrConflict) {
				log.Info("registration conflict", slog.String("username", registerRequest.Username))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error("username or email already exists"))
				return
			}
			log.Error("failed to register new user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to register new user"))
			return
		}

		// A new account is logged in straight away.
		if err := sessions.Issue(r.Context(), w, session.Identity{
			UserID:   user.ID,
			Username: user.Username,
		}); err != nil {
			log.Error("failed to start session", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to start session"))
			return
		}

		log.Info("created new user", slog.String("username", user.Username))
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.StatusOKWithData(user))
	}
}
