package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/awladnasem/alefbata/internal/app/mailworker"
	"github.com/awladnasem/alefbata/internal/config"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("starting mail worker", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := mailworker.New(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize mail worker", slog.Any("err", err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("mail worker stopped with error", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("mail worker stopped gracefully")
}
