package models

import "time"

// ExpiringSubscription is the reminder queue payload for a subscription
// that ends tomorrow.
type ExpiringSubscription struct {
	Email    string    `json:"email"`
	Username string    `json:"username"`
	FullName string    `json:"full_name"`
	Tier     string    `json:"tier"`
	EndDate  time.Time `json:"end_date"`
}
