// Package reminder assembles the scan-and-publish binary: it connects to
// RabbitMQ and storage and runs the periodic expiry scan.
package reminder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/awladnasem/alefbata/internal/config"
	"github.com/awladnasem/alefbata/internal/lib/rabbitmq"
	reminderservice "github.com/awladnasem/alefbata/internal/services/reminder"
	"github.com/awladnasem/alefbata/internal/storage/postgres"
)

// App is the assembled reminder scanner.
type App struct {
	service *reminderservice.Service
	conn    *amqp.Connection
	ch      *amqp.Channel
	db      *postgres.Storage
	logger  *slog.Logger
}

// New connects the scanner's resources.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.MaxRetries, cfg.RabbitMQ.RetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.ReminderQueues())
	if err != nil {
		closeResources(nil, conn, logger)
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	db, err := postgres.New(cfg.StorageConnectionString)
	if err != nil {
		closeResources(ch, conn, logger)
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}

	return &App{
		service: reminderservice.New(db, logger),
		conn:    conn,
		ch:      ch,
		db:      db,
		logger:  logger,
	}, nil
}

func closeResources(ch *amqp.Channel, conn *amqp.Connection, logger *slog.Logger) {
	if ch != nil {
		if err := ch.Close(); err != nil {
			logger.Error("failed to close channel", slog.Any("err", err))
		}
	}
	if conn != nil {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close connection", slog.Any("err", err))
		}
	}
}

// Run scans until ctx is done.
func (a *App) Run(ctx context.Context) error {
	go a.service.Run(ctx, a.ch)

	<-ctx.Done()

	a.logger.Info("shutting down reminder scanner")
	closeResources(a.ch, a.conn, a.logger)
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close storage", slog.Any("err", err))
	}
	return nil
}
