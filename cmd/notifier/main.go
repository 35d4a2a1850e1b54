package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MohamadRiza/happytime/internal/config"
	"github.com/MohamadRiza/happytime/internal/email"
	"github.com/MohamadRiza/happytime/internal/event"
	"github.com/MohamadRiza/happytime/internal/notification"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	emailService := email.NewService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)
	handler := notification.NewHandler(emailService, cfg.CareersInbox, logger)

	consumer := event.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, "notifier", logger)
	defer consumer.Close()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down")
		cancel()
	}()

	logger.Info("notifier started",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic", cfg.KafkaTopic))

	if err := consumer.Consume(ctx, handler.HandleEvent); err != nil && ctx.Err() == nil {
		logger.Fatal("consumer error", zap.Error(err))
	}
}
