// Package subscription activates paid plans on user accounts.
package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/awladnasem/alefbata/internal/models"
)

// Repository is the slice of storage needed to activate a plan.
type Repository interface {
	GetPlan(ctx context.Context, id int) (*models.Plan, error)
	UpdateUserSubscription(ctx context.Context, userID int, tier string, endDate time.Time) (*models.User, error)
}

// Service activates subscriptions.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New creates the subscription service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Subscribe puts the user on the given plan. The subscription runs from
// now for the plan's duration in months; subscribing again replaces the
// current tier and end date.
func (s *Service) Subscribe(ctx context.Context, userID, planID int) (*models.User, error) {
	const op = "subscription.Subscribe"

	plan, err := s.repo.GetPlan(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	endDate := time.Now().AddDate(0, plan.Duration, 0)
	user, err := s.repo.UpdateUserSubscription(ctx, userID, plan.Name, endDate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("subscription activated",
		slog.Int("user_id", userID),
		slog.Int("plan_id", planID),
		slog.Time("end_date", endDate))
	return user, nil
}
