// Package models contains the domain entities persisted by the storage
// layer: users, the game catalog, subscription plans, Arabic letters and
// per-user progress.
package models

import "time"

// User is a registered account. PasswordHash is the bcrypt hash of the
// password; the plaintext never reaches storage.
type User struct {
	ID                   int        `json:"id"`
	Username             string     `json:"username"`
	PasswordHash         string     `json:"-"`
	Email                string     `json:"email"`
	FullName             string     `json:"full_name"`
	IsSubscribed         bool       `json:"is_subscribed"`
	SubscriptionTier     *string    `json:"subscription_tier"`
	SubscriptionEndDate  *time.Time `json:"subscription_end_date"`
	IsVerified           bool       `json:"is_verified"`
	VerificationToken    *string    `json:"-"`
	ResetPasswordToken   *string    `json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`
	CreatedAt            time.Time  `json:"created_at"`
}

// NewUser carries the fields a caller supplies at registration.
// The password arrives already hashed.
type NewUser struct {
	Username     string
	PasswordHash string
	Email        string
	FullName     string
}
