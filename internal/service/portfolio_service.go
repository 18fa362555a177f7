package service

import (
	"context"
	"database/sql"

	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/database"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/validation"
)

// PortfolioService handles portfolio-related business logic operations.
//
// A portfolio's totalValue is whatever was last set on create or update.
// Recording transactions or investments does not change it.
type PortfolioService struct {
	db            *sql.DB
	portfolioRepo *repository.PortfolioRepository
	userRepo      *repository.UserRepository
}

// NewPortfolioService creates a new PortfolioService with the provided repository dependencies.
func NewPortfolioService(
	db *sql.DB,
	portfolioRepo *repository.PortfolioRepository,
	userRepo *repository.UserRepository,
) *PortfolioService {
	return &PortfolioService{
		db:            db,
		portfolioRepo: portfolioRepo,
		userRepo:      userRepo,
	}
}

// GetPortfolios retrieves portfolios matching filter.
func (s *PortfolioService) GetPortfolios(ctx context.Context, filter model.PortfolioFilter) ([]model.PortfolioView, error) {
	portfolios, err := s.portfolioRepo.GetPortfolios(ctx, filter)
	if err != nil {
		return nil, err
	}
	return model.PortfolioViews(portfolios), nil
}

// GetPortfoliosForUser retrieves the portfolios owned by a user, optionally only the active ones.
// Returns ErrUserNotFound if the user does not exist.
func (s *PortfolioService) GetPortfoliosForUser(ctx context.Context, userID string, activeOnly bool) ([]model.PortfolioView, error) {
	if _, err := s.userRepo.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.GetPortfolios(ctx, model.PortfolioFilter{UserID: userID, ActiveOnly: activeOnly})
}

// GetPortfolio retrieves a single portfolio by its ID.
func (s *PortfolioService) GetPortfolio(ctx context.Context, portfolioID string) (model.PortfolioView, error) {
	p, err := s.portfolioRepo.GetPortfolio(ctx, portfolioID)
	if err != nil {
		return model.PortfolioView{}, err
	}
	return p.View(), nil
}

// CreatePortfolio creates a portfolio for an existing user.
// totalValue defaults to zero and isActive to true.
func (s *PortfolioService) CreatePortfolio(ctx context.Context, req request.CreatePortfolioRequest) (*model.PortfolioView, error) {
	if err := validation.ValidateCreatePortfolio(req); err != nil {
		return nil, err
	}

	portfolio := model.NewPortfolio(req.UserID, req.Name, req.Description, req.TotalValue, req.IsActive)

	err := database.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := s.userRepo.WithTx(tx).GetUser(ctx, req.UserID); err != nil {
			return err
		}
		return s.portfolioRepo.WithTx(tx).InsertPortfolio(ctx, portfolio)
	})
	if err != nil {
		return nil, err
	}

	view := portfolio.View()
	return &view, nil
}

// UpdatePortfolio updates an existing portfolio with the provided fields.
// Only provided fields in the request are updated; omitted fields remain unchanged.
func (s *PortfolioService) UpdatePortfolio(ctx context.Context, portfolioID string, req request.UpdatePortfolioRequest) (*model.PortfolioView, error) {
	if err := validation.ValidateUpdatePortfolio(req); err != nil {
		return nil, err
	}

	var portfolio model.Portfolio
	err := database.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		portfolioRepo := s.portfolioRepo.WithTx(tx)

		var err error
		portfolio, err = portfolioRepo.GetPortfolio(ctx, portfolioID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			portfolio.Name = *req.Name
		}
		if req.Description != nil {
			portfolio.Description = *req.Description
		}
		if req.TotalValue != nil {
			portfolio.TotalValue = *req.TotalValue
		}
		if req.IsActive != nil {
			portfolio.IsActive = *req.IsActive
		}

		return portfolioRepo.UpdatePortfolio(ctx, &portfolio)
	})
	if err != nil {
		return nil, err
	}

	view := portfolio.View()
	return &view, nil
}

// DeletePortfolio removes a portfolio with its investments, transactions and
// performance snapshots. Deleting an unknown id succeeds.
func (s *PortfolioService) DeletePortfolio(ctx context.Context, portfolioID string) error {
	return database.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		return s.portfolioRepo.WithTx(tx).DeletePortfolio(ctx, portfolioID)
	})
}
