// Package mailworker assembles the queue consumer binary that turns
// reminder messages into emails.
package mailworker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/awladnasem/alefbata/internal/config"
	"github.com/awladnasem/alefbata/internal/lib/rabbitmq"
	"github.com/awladnasem/alefbata/internal/lib/smtp"
	"github.com/awladnasem/alefbata/internal/services/mailer"
)

// App is the assembled mail worker.
type App struct {
	mailer *mailer.Service
	conn   *amqp.Connection
	ch     *amqp.Channel
	logger *slog.Logger
}

// New connects the worker's resources.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.MaxRetries, cfg.RabbitMQ.RetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.ReminderQueues())
	if err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			logger.Error("failed to close connection", slog.Any("err", closeErr))
		}
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	transport := smtp.NewTransport(cfg.SMTP, logger)

	return &App{
		mailer: mailer.New(transport, cfg.BaseURL, logger),
		conn:   conn,
		ch:     ch,
		logger: logger,
	}, nil
}

// Run consumes the reminder queue until ctx is done.
func (a *App) Run(ctx context.Context) error {
	for _, q := range rabbitmq.ReminderQueues() {
		if err := rabbitmq.ConsumeMessages(ctx, a.ch, q.QueueName, a.mailer.SendExpiryReminder); err != nil {
			return fmt.Errorf("failed to consume %s: %w", q.QueueName, err)
		}
		a.logger.Info("consuming queue", slog.String("queue", q.QueueName))
	}

	<-ctx.Done()

	a.logger.Info("shutting down mail worker")
	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}
	return nil
}
