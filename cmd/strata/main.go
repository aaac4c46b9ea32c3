package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/super0605/customer-service-platform-backend/internal/app"
	"github.com/super0605/customer-service-platform-backend/internal/auth"
	"github.com/super0605/customer-service-platform-backend/internal/complexes"
	"github.com/super0605/customer-service-platform-backend/internal/lots"
	"github.com/super0605/customer-service-platform-backend/internal/orgs"
	"github.com/super0605/customer-service-platform-backend/internal/platform/cache"
	"github.com/super0605/customer-service-platform-backend/internal/platform/db"
	"github.com/super0605/customer-service-platform-backend/internal/tickets"
	"github.com/super0605/customer-service-platform-backend/internal/users"
	"github.com/super0605/customer-service-platform-backend/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	// asynq connects lazily, so probe the broker before wiring handlers.
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	if err := redisClient.Close(); err != nil {
		logger.Warn("redis close", slog.Any("error", err))
	}

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	tokens, err := auth.NewTokenService([]byte(cfg.JWTSecret))
	if err != nil {
		logger.Error("init token service", slog.Any("error", err))
		os.Exit(1)
	}
	authService := auth.NewService(auth.NewRepository(pool), tokens)
	authHandler := auth.NewHandler(logger, authService)

	orgsHandler := orgs.NewHandler(logger, orgs.NewService(orgs.NewRepository(pool)))
	complexesHandler := complexes.NewHandler(logger, complexes.NewService(complexes.NewRepository(pool)))
	lotsHandler := lots.NewHandler(logger, lots.NewService(lots.NewRepository(pool)))

	ticketsRepo := tickets.NewRepository(pool)
	ticketsService := tickets.NewService(logger, ticketsRepo).WithNotifier(jobClient)
	ticketsHandler := tickets.NewHandler(logger, ticketsService, tickets.NewCommentService(ticketsRepo))

	usersService := users.NewService(logger, users.NewRepository(pool)).WithNotifier(jobClient)
	usersHandler := users.NewHandler(logger, usersService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobsHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		AuthService:      authService,
		AuthHandler:      authHandler,
		OrgsHandler:      orgsHandler,
		ComplexesHandler: complexesHandler,
		LotsHandler:      lotsHandler,
		TicketsHandler:   ticketsHandler,
		UsersHandler:     usersHandler,
		JobsHandler:      jobsHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
