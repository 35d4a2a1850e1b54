package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MohamadRiza/happytime/internal/api"
	"github.com/MohamadRiza/happytime/internal/api/middleware"
	"github.com/MohamadRiza/happytime/internal/auth"
	"github.com/MohamadRiza/happytime/internal/catalog"
	"github.com/MohamadRiza/happytime/internal/config"
	"github.com/MohamadRiza/happytime/internal/database"
	"github.com/MohamadRiza/happytime/internal/event"
	"github.com/MohamadRiza/happytime/internal/metrics"
	"github.com/MohamadRiza/happytime/internal/store"
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

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	logger.Info("connected to PostgreSQL")

	producer := event.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer producer.Close()

	productStore := store.NewPostgresProductStore(db)
	vacancyStore := store.NewPostgresVacancyStore(db)
	applicationStore := store.NewPostgresApplicationStore(db)
	customerStore := store.NewPostgresCustomerStore(db)
	adminStore := store.NewPostgresAdminStore(db)
	messageStore := store.NewPostgresMessageStore(db)

	cat := catalog.New(productStore, logger)
	if err := cat.Load(ctx); err != nil {
		// The catalog stays in its error state and product queries fail
		// until an admin mutation triggers a reload. Everything else works.
		logger.Error("initial catalog load failed", zap.Error(err))
	}

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.AccessTokenExpiry, cfg.AdminTokenExpiry)

	collector := metrics.NewCollector()
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		GeneralPerMinute: cfg.RateLimitGeneral,
		AuthPerMinute:    cfg.RateLimitAuth,
		CleanupInterval:  5 * time.Minute,
	})
	defer rateLimiter.Stop()

	router := api.NewRouter(api.RouterConfig{
		AdminAuth:    api.NewAdminAuthHandler(adminStore, jwtService, logger),
		Customers:    api.NewCustomerHandler(customerStore, jwtService, logger),
		Products:     api.NewProductHandler(productStore, cat, collector, logger),
		Vacancies:    api.NewVacancyHandler(vacancyStore, logger),
		Applications: api.NewApplicationHandler(applicationStore, vacancyStore, producer, collector, logger, cfg.UploadDir, cfg.MaxUploadSize),
		Messages:     api.NewMessageHandler(messageStore, producer, collector, logger),
		JWTService:   jwtService,
		RateLimiter:  rateLimiter,
		Metrics:      collector,
		Logger:       logger,
	})

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		logger.Info("server started", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
