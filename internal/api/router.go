// Package api wires the HTTP routes of the portfolio tracker.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Portfolio-Tracker-Backend/internal/api/middleware"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/service"
)

// Services bundles the domain services the router dispatches to.
type Services struct {
	System      *service.SystemService
	User        *service.UserService
	Portfolio   *service.PortfolioService
	Investment  *service.InvestmentService
	Transaction *service.TransactionService
	Performance *service.PerformanceService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(log))
	r.Use(middleware.Recoverer)

	// CORS middleware
	r.Use(custommiddleware.NewCORS(cfg.CORS.AllowedOrigins))

	systemHandler := handlers.NewSystemHandler(svc.System)
	userHandler := handlers.NewUserHandler(svc.User, svc.Portfolio)
	portfolioHandler := handlers.NewPortfolioHandler(svc.Portfolio)
	investmentHandler := handlers.NewInvestmentHandler(svc.Investment)
	transactionHandler := handlers.NewTransactionHandler(svc.Transaction)
	performanceHandler := handlers.NewPerformanceHandler(svc.Performance)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/user", func(r chi.Router) {
			r.Get("/", userHandler.Users)
			r.Post("/", userHandler.CreateUser)
			r.Get("/username/{username}", userHandler.GetUserByUsername)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", userHandler.GetUser)
				r.Put("/", userHandler.UpdateUser)
				r.Delete("/", userHandler.DeleteUser)
				r.Get("/portfolios", userHandler.UserPortfolios)
			})
		})

		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/", portfolioHandler.Portfolios)
			r.Post("/", portfolioHandler.CreatePortfolio)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", portfolioHandler.GetPortfolio)
				r.Put("/", portfolioHandler.UpdatePortfolio)
				r.Delete("/", portfolioHandler.DeletePortfolio)
				r.Get("/investments", investmentHandler.InvestmentsPerPortfolio)
				r.Get("/transactions", transactionHandler.TransactionPerPortfolio)
				r.Get("/transactions/recent", transactionHandler.RecentTransactions)
				r.Get("/performance", performanceHandler.PerformancePerPortfolio)
				r.Get("/performance/date/{date}", performanceHandler.PerformanceOnDate)
			})
		})

		r.Route("/investment", func(r chi.Router) {
			r.Post("/", investmentHandler.CreateInvestment)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", investmentHandler.GetInvestment)
				r.Put("/", investmentHandler.UpdateInvestment)
				r.Delete("/", investmentHandler.DeleteInvestment)
				r.Get("/transactions", transactionHandler.TransactionPerInvestment)
			})
		})

		r.Route("/transaction", func(r chi.Router) {
			r.Post("/", transactionHandler.CreateTransaction)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Put("/", transactionHandler.UpdateTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/performance", func(r chi.Router) {
			r.Post("/", performanceHandler.CreatePerformance)
			r.Post("/snapshot", performanceHandler.RecordSnapshots)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", performanceHandler.GetPerformance)
				r.Put("/", performanceHandler.UpdatePerformance)
				r.Delete("/", performanceHandler.DeletePerformance)
			})
		})
	})

	return r
}
