package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/database"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/validation"
)

// InvestmentService handles the holdings of a portfolio.
type InvestmentService struct {
	db             *sql.DB
	investmentRepo *repository.InvestmentRepository
	portfolioRepo  *repository.PortfolioRepository
}

// NewInvestmentService creates a new InvestmentService with the provided repository dependencies.
func NewInvestmentService(
	db *sql.DB,
	investmentRepo *repository.InvestmentRepository,
	portfolioRepo *repository.PortfolioRepository,
) *InvestmentService {
	return &InvestmentService{
		db:             db,
		investmentRepo: investmentRepo,
		portfolioRepo:  portfolioRepo,
	}
}

// GetInvestments retrieves the investments of a portfolio, optionally only the active ones.
// Returns ErrPortfolioNotFound if the portfolio does not exist.
func (s *InvestmentService) GetInvestments(ctx context.Context, portfolioID string, activeOnly bool) ([]model.InvestmentView, error) {
	if _, err := s.portfolioRepo.GetPortfolio(ctx, portfolioID); err != nil {
		return nil, err
	}

	investments, err := s.investmentRepo.GetInvestments(ctx, model.InvestmentFilter{
		PortfolioID: portfolioID,
		ActiveOnly:  activeOnly,
	})
	if err != nil {
		return nil, err
	}
	return model.InvestmentViews(investments), nil
}

// GetInvestment retrieves a single investment by its ID.
func (s *InvestmentService) GetInvestment(ctx context.Context, investmentID string) (model.InvestmentView, error) {
	inv, err := s.investmentRepo.GetInvestment(ctx, investmentID)
	if err != nil {
		return model.InvestmentView{}, err
	}
	return inv.View(), nil
}

// CreateInvestment adds an investment to an existing portfolio.
//
// amount and currentValue must be positive. purchaseDate defaults to the
// creation date and isActive to true.
func (s *InvestmentService) CreateInvestment(ctx context.Context, req request.CreateInvestmentRequest) (*model.InvestmentView, error) {
	if err := validation.ValidateCreateInvestment(req); err != nil {
		return nil, err
	}

	var purchaseDate *time.Time
	if req.PurchaseDate != nil {
		d, err := request.ParseDate(*req.PurchaseDate)
		if err != nil {
			return nil, validation.NewError("purchaseDate", err.Error())
		}
		purchaseDate = &d
	}

	inv := model.NewInvestment(
		req.PortfolioID,
		req.Name,
		req.Description,
		req.Type,
		normalizeRiskLevel(req.RiskLevel),
		req.Amount,
		req.CurrentValue,
		purchaseDate,
		req.IsActive,
	)

	err := database.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := s.portfolioRepo.WithTx(tx).GetPortfolio(ctx, req.PortfolioID); err != nil {
			return err
		}
		return s.investmentRepo.WithTx(tx).InsertInvestment(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	view := inv.View()
	return &view, nil
}

// UpdateInvestment updates an existing investment with the provided fields.
// Only provided fields in the request are updated; omitted fields remain unchanged.
func (s *InvestmentService) UpdateInvestment(ctx context.Context, investmentID string, req request.UpdateInvestmentRequest) (*model.InvestmentView, error) {
	if err := validation.ValidateUpdateInvestment(req); err != nil {
		return nil, err
	}

	var inv model.Investment
	err := database.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		investmentRepo := s.investmentRepo.WithTx(tx)

		var err error
		inv, err = investmentRepo.GetInvestment(ctx, investmentID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			inv.Name = *req.Name
		}
		if req.Description != nil {
			inv.Description = *req.Description
		}
		if req.Type != nil {
			inv.Type = *req.Type
		}
		if req.RiskLevel != nil {
			inv.RiskLevel = normalizeRiskLevel(*req.RiskLevel)
		}
		if req.Amount != nil {
			inv.Amount = *req.Amount
		}
		if req.CurrentValue != nil {
			inv.CurrentValue = *req.CurrentValue
		}
		if req.PurchaseDate != nil {
			d, err := request.ParseDate(*req.PurchaseDate)
			if err != nil {
				return validation.NewError("purchaseDate", err.Error())
			}
			inv.PurchaseDate = d
		}
		if req.IsActive != nil {
			inv.IsActive = *req.IsActive
		}

		return investmentRepo.UpdateInvestment(ctx, &inv)
	})
	if err != nil {
		return nil, err
	}

	view := inv.View()
	return &view, nil
}

// DeleteInvestment removes an investment and its transactions.
// Deleting an unknown id succeeds.
func (s *InvestmentService) DeleteInvestment(ctx context.Context, investmentID string) error {
	return database.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		return s.investmentRepo.WithTx(tx).DeleteInvestment(ctx, investmentID)
	})
}
