// Package auth implements registration, login and the two token flows:
// email verification and password reset.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/awladnasem/alefbata/internal/lib/password"
	"github.com/awladnasem/alefbata/internal/lib/sl"
	"github.com/awladnasem/alefbata/internal/lib/token"
	"github.com/awladnasem/alefbata/internal/models"
	"github.com/awladnasem/alefbata/internal/storage"
)

// ErrInvalidCredentials is returned for a bad username or password. The
// two cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken is returned for an unknown or expired token.
var ErrInvalidToken = errors.New("invalid or expired token")

// ErrAlreadyVerified is returned when a verified user requests another
// verification email.
var ErrAlreadyVerified = errors.New("email already verified")

const resetTokenHours = 1

// UserRepository is the slice of storage the auth flows need.
type UserRepository interface {
	GetUser(ctx context.Context, id int) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user models.NewUser) (*models.User, error)
	SetVerificationToken(ctx context.Context, userID int, token string) (*models.User, error)
	GetUserByVerificationToken(ctx context.Context, token string) (*models.User, error)
	VerifyUser(ctx context.Context, userID int) (*models.User, error)
	SetResetPasswordToken(ctx context.Context, userID int, token string, expires time.Time) (*models.User, error)
	GetUserByResetPasswordToken(ctx context.Context, token string) (*models.User, error)
	ResetPassword(ctx context.Context, userID int, passwordHash string) (*models.User, error)
}

// Mailer sends the token emails.
type Mailer interface {
	SendVerificationEmail(to, fullName, token string) error
	SendPasswordResetEmail(to, fullName, token string) error
}

// Service wires the auth flows over storage and mail.
type Service struct {
	repo   UserRepository
	mailer Mailer
	log    *slog.Logger
}

// New creates the auth service.
func New(repo UserRepository, mailer Mailer, log *slog.Logger) *Service {
	return &Service{repo: repo, mailer: mailer, log: log}
}

// Register creates an account and fires off the verification email. A mail
// failure is logged but does not fail the registration; the user can
// request another email later.
func (s *Service) Register(ctx context.Context, username, plainPassword, email, fullName string) (*models.User, error) {
	const op = "auth.Register"

	hash, err := password.GetHash(plainPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.repo.CreateUser(ctx, models.NewUser{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		FullName:     fullName,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user registered", slog.Int("user_id", user.ID), slog.String("username", user.Username))

	verificationToken, err := token.Generate()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if user, err = s.repo.SetVerificationToken(ctx, user.ID, verificationToken); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.mailer.SendVerificationEmail(user.Email, user.FullName, verificationToken); err != nil {
		s.log.Error("failed to send verification email", slog.Int("user_id", user.ID), sl.Err(err))
	}

	return user, nil
}

// Login checks the credentials and returns the account. Unknown username
// and wrong password produce the same error.
func (s *Service) Login(ctx context.Context, username, plainPassword string) (*models.User, error) {
	const op = "auth.Login"

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, plainPassword); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	return user, nil
}

// RequestVerification issues a fresh verification token for an unverified
// account and mails it.
func (s *Service) RequestVerification(ctx context.Context, userID int) error {
	const op = "auth.RequestVerification"

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if user.IsVerified {
		return fmt.Errorf("%s: %w", op, ErrAlreadyVerified)
	}

	verificationToken, err := token.Generate()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err = s.repo.SetVerificationToken(ctx, userID, verificationToken); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.mailer.SendVerificationEmail(user.Email, user.FullName, verificationToken); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// VerifyEmail redeems a verification token and marks the account verified.
func (s *Service) VerifyEmail(ctx context.Context, verificationToken string) (*models.User, error) {
	const op = "auth.VerifyEmail"

	user, err := s.repo.GetUserByVerificationToken(ctx, verificationToken)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	verified, err := s.repo.VerifyUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("email verified", slog.Int("user_id", verified.ID))
	return verified, nil
}

// ForgotPassword issues a reset token for the account behind email and
// mails the link. An unknown email is not an error: the caller responds
// identically either way so addresses can't be probed. A mail failure is
// an error, matching how the site has always behaved.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	const op = "auth.ForgotPassword"

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.log.Info("password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	resetToken, err := token.Generate()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	expires := token.ExpiryTime(resetTokenHours)
	if _, err = s.repo.SetResetPasswordToken(ctx, user.ID, resetToken, expires); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.mailer.SendPasswordResetEmail(user.Email, user.FullName, resetToken); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("password reset email sent", slog.Int("user_id", user.ID))
	return nil
}

// ResetPassword redeems a reset token and replaces the password. Expired
// tokens are rejected the same as unknown ones.
func (s *Service) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	const op = "auth.ResetPassword"

	user, err := s.repo.GetUserByResetPasswordToken(ctx, resetToken)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrInvalidToken)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	hash, err := password.GetHash(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err = s.repo.ResetPassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("password reset", slog.Int("user_id", user.ID))
	return nil
}
