// Package reminder scans for subscriptions ending tomorrow and queues a
// reminder email for each. The mail worker consumes the queue.
package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/awladnasem/alefbata/internal/lib/rabbitmq"
	"github.com/awladnasem/alefbata/internal/lib/sl"
	"github.com/awladnasem/alefbata/internal/models"
)

// Repository is the slice of storage the scan needs.
type Repository interface {
	ListSubscriptionsExpiringTomorrow(ctx context.Context) ([]*models.ExpiringSubscription, error)
}

// Service runs the periodic scan-and-publish loop.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New creates the reminder service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Run scans immediately and then every 12 hours until ctx is done.
func (s *Service) Run(ctx context.Context, channel *amqp.Channel) {
	s.scan(ctx, channel)

	ticker := time.NewTicker(12 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.scan(ctx, channel)
		case <-ctx.Done():
			return
		}
	}
}

func (s *Service) scan(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("scanning for subscriptions expiring tomorrow")
	expiring, err := s.repo.ListSubscriptionsExpiringTomorrow(ctx)
	if err != nil {
		s.log.Error("failed to list expiring subscriptions", sl.Err(err))
		return
	}
	if len(expiring) == 0 {
		s.log.Info("no expiring subscriptions found")
		return
	}
	s.log.Info("found expiring subscriptions", slog.Int("count", len(expiring)))
	for _, sub := range expiring {
		if err = rabbitmq.PublishMessage(channel, rabbitmq.Exchange, "expiring", sub); err != nil {
			s.log.Error("failed to publish reminder", sl.Err(err))
		}
	}
}
