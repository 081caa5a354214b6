package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/awladnasem/alefbata/internal/models"
)

const userColumns = `id, username, password_hash, email, full_name, is_subscribed,
		subscription_tier, subscription_end_date, is_verified, verification_token,
		reset_password_token, reset_password_expires, created_at`

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	var tier, verificationToken, resetToken sql.NullString
	var endDate, resetExpires sql.NullTime
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.FullName,
		&u.IsSubscribed, &tier, &endDate, &u.IsVerified, &verificationToken,
		&resetToken, &resetExpires, &u.CreatedAt); err != nil {
		return nil, err
	}
	if tier.Valid {
		u.SubscriptionTier = &tier.String
	}
	if endDate.Valid {
		u.SubscriptionEndDate = &endDate.Time
	}
	if verificationToken.Valid {
		u.VerificationToken = &verificationToken.String
	}
	if resetToken.Valid {
		u.ResetPasswordToken = &resetToken.String
	}
	if resetExpires.Valid {
		u.ResetPasswordExpires = &resetExpires.Time
	}
	return u, nil
}

// GetUser returns a user by id.
func (s *Storage) GetUser(ctx context.Context, id int) (*models.User, error) {
	const op = "postgres.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return u, nil
}

// GetUserByUsername returns a user by username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "postgres.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, username))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return u, nil
}

// GetUserByEmail returns a user by email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "postgres.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return u, nil
}

// CreateUser inserts a new account. Defaults for subscription and
// verification state come from the schema; duplicates of username or email
// surface as storage.ErrConflict.
func (s *Storage) CreateUser(ctx context.Context, user models.NewUser) (*models.User, error) {
	const op = "postgres.CreateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (username, password_hash, email, full_name)
			  VALUES ($1, $2, $3, $4)
			  RETURNING ` + userColumns
	u, err := scanUser(s.DB.QueryRowContext(ctx, query,
		user.Username, user.PasswordHash, user.Email, user.FullName))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return u, nil
}

// UpdateUserSubscription marks the user subscribed with the given tier and
// end date.
func (s *Storage) UpdateUserSubscription(ctx context.Context, userID int, tier string, endDate time.Time) (*models.User, error) {
	const op = "postgres.UpdateUserSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET is_subscribed = true, subscription_tier = $1, subscription_end_date = $2
			  WHERE id = $3
			  RETURNING ` + userColumns
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, tier, endDate, userID))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return u, nil
}

// SetVerificationToken stores an email verification token on the user.
func (s *Storage) SetVerificationToken(ctx context.Context, userID int, token string) (*models.User, error) {
	const op = "postgres.SetVerificationToken"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET verification_token = $1 WHERE id = $2
			  RETURNING ` + userColumns
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, token, userID))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return u, nil
}

// GetUserByVerificationToken returns the user holding a verification token.
func (s *Storage) GetUserByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	const op = "postgres.GetUserByVerificationToken"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE verification_token = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, token))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return u, nil
}

// VerifyUser marks the user verified and clears the token. Idempotent.
func (s *Storage) VerifyUser(ctx context.Context, userID int) (*models.User, error) {
	const op = "postgres.VerifyUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET is_verified = true, verification_token = NULL
			  WHERE id = $1
			  RETURNING ` + userColumns
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, userID))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return u, nil
}

// SetResetPasswordToken stores a reset token and its expiry on the user.
func (s *Storage) SetResetPasswordToken(ctx context.Context, userID int, token string, expires time.Time) (*models.User, error) {
	const op = "postgres.SetResetPasswordToken"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET reset_password_token = $1, reset_password_expires = $2
			  WHERE id = $3
			  RETURNING ` + userColumns
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, token, expires, userID))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return u, nil
}

// GetUserByResetPasswordToken returns the user holding a reset token.
// An expired token matches nothing; expiry is checked at read time.
func (s *Storage) GetUserByResetPasswordToken(ctx context.Context, token string) (*models.User, error) {
	const op = "postgres.GetUserByResetPasswordToken"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users
			  WHERE reset_password_token = $1 AND reset_password_expires > NOW()`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, token))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return u, nil
}

// ResetPassword stores the new hash and clears the reset token and expiry
// in the same statement.
func (s *Storage) ResetPassword(ctx context.Context, userID int, passwordHash string) (*models.User, error) {
	const op = "postgres.ResetPassword"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET password_hash = $1, reset_password_token = NULL, reset_password_expires = NULL
			  WHERE id = $2
			  RETURNING ` + userColumns
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, passwordHash, userID))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return u, nil
}

// ListSubscriptionsExpiringTomorrow returns users whose paid subscription
// ends tomorrow, for the reminder pipeline.
func (s *Storage) ListSubscriptionsExpiringTomorrow(ctx context.Context) ([]*models.ExpiringSubscription, error) {
	const op = "postgres.ListSubscriptionsExpiringTomorrow"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT email, username, full_name, subscription_tier, subscription_end_date
			  FROM users
			  WHERE is_subscribed = true
			    AND subscription_end_date::DATE = CURRENT_DATE + INTERVAL '1 day'`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ExpiringSubscription
	for rows.Next() {
		var e models.ExpiringSubscription
		if err = rows.Scan(&e.Email, &e.Username, &e.FullName, &e.Tier, &e.EndDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
