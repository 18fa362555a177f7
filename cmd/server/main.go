package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/api"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/auth"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/database"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/logger"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/scheduler"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	appLog := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	logger.SetGlobalLogger(appLog)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		appLog.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	applied, err := database.Migrate(ctx, db)
	if err != nil {
		appLog.Fatal().Err(err).Msg("Failed to migrate database")
	}
	appLog.Info().
		Str("path", cfg.Database.Path).
		Int("migrations_applied", applied).
		Msg("Connected to database")

	// Create repositories
	userRepo := repository.NewUserRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	investmentRepo := repository.NewInvestmentRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	performanceRepo := repository.NewPerformanceRepository(db)

	// Create services
	services := api.Services{
		System:      service.NewSystemService(db),
		User:        service.NewUserService(db, userRepo, auth.NewHasher(auth.DefaultParams)),
		Portfolio:   service.NewPortfolioService(db, portfolioRepo, userRepo),
		Investment:  service.NewInvestmentService(db, investmentRepo, portfolioRepo),
		Transaction: service.NewTransactionService(db, transactionRepo, investmentRepo, portfolioRepo),
		Performance: service.NewPerformanceService(db, performanceRepo, portfolioRepo, cfg.Snapshot.Workers, appLog),
	}

	sched := scheduler.New(appLog)
	if cfg.Snapshot.Schedule != "" {
		if err := sched.AddJob(cfg.Snapshot.Schedule, scheduler.NewSnapshotJob(services.Performance, appLog)); err != nil {
			appLog.Fatal().Err(err).Str("schedule", cfg.Snapshot.Schedule).Msg("Invalid snapshot schedule")
		}
		sched.Start()
	}
	defer sched.Stop()

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.NewRouter(services, cfg, appLog),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLog.Info().
			Str("addr", cfg.Server.Addr).
			Str("version", version.Version).
			Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		appLog.Error().Err(err).Msg("Server failed")
	}

	appLog.Info().Msg("Shutting down server...")
	sched.Stop()

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLog.Error().Err(err).Msg("Server forced to shutdown")
		return
	}

	appLog.Info().Msg("Server exited")
}
