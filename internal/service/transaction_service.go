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

// RecentTransactionsLimit is the number of transactions returned by GetRecentTransactions.
const RecentTransactionsLimit = 10

// TransactionService handles transaction-related business logic operations.
// Transactions are a ledger only: they never change portfolio or investment values.
type TransactionService struct {
	db              *sql.DB
	transactionRepo *repository.TransactionRepository
	investmentRepo  *repository.InvestmentRepository
	portfolioRepo   *repository.PortfolioRepository
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
func NewTransactionService(
	db *sql.DB,
	transactionRepo *repository.TransactionRepository,
	investmentRepo *repository.InvestmentRepository,
	portfolioRepo *repository.PortfolioRepository,
) *TransactionService {
	return &TransactionService{
		db:              db,
		transactionRepo: transactionRepo,
		investmentRepo:  investmentRepo,
		portfolioRepo:   portfolioRepo,
	}
}

// GetTransactionsByPortfolio retrieves all transactions of a portfolio, newest first.
func (s *TransactionService) GetTransactionsByPortfolio(ctx context.Context, portfolioID string) ([]model.TransactionView, error) {
	if _, err := s.portfolioRepo.GetPortfolio(ctx, portfolioID); err != nil {
		return nil, err
	}
	return s.list(ctx, model.TransactionFilter{PortfolioID: portfolioID})
}

// GetTransactionsByInvestment retrieves all transactions recorded against an investment, newest first.
func (s *TransactionService) GetTransactionsByInvestment(ctx context.Context, investmentID string) ([]model.TransactionView, error) {
	if _, err := s.investmentRepo.GetInvestment(ctx, investmentID); err != nil {
		return nil, err
	}
	return s.list(ctx, model.TransactionFilter{InvestmentID: investmentID})
}

// GetTransactionsByPortfolioAndInvestment retrieves the transactions of a
// portfolio that were recorded against one of its investments, newest first.
func (s *TransactionService) GetTransactionsByPortfolioAndInvestment(ctx context.Context, portfolioID, investmentID string) ([]model.TransactionView, error) {
	if _, err := s.portfolioRepo.GetPortfolio(ctx, portfolioID); err != nil {
		return nil, err
	}
	return s.list(ctx, model.TransactionFilter{PortfolioID: portfolioID, InvestmentID: investmentID})
}

func (s *TransactionService) list(ctx context.Context, filter model.TransactionFilter) ([]model.TransactionView, error) {
	transactions, err := s.transactionRepo.GetTransactions(ctx, filter)
	if err != nil {
		return nil, err
	}
	return model.TransactionViews(transactions), nil
}

// GetRecentTransactions retrieves the RecentTransactionsLimit newest transactions of a portfolio.
func (s *TransactionService) GetRecentTransactions(ctx context.Context, portfolioID string) ([]model.TransactionView, error) {
	if _, err := s.portfolioRepo.GetPortfolio(ctx, portfolioID); err != nil {
		return nil, err
	}
	transactions, err := s.transactionRepo.GetRecentTransactions(ctx, portfolioID, RecentTransactionsLimit)
	if err != nil {
		return nil, err
	}
	return model.TransactionViews(transactions), nil
}

// GetTransaction retrieves a single transaction by its ID.
func (s *TransactionService) GetTransaction(ctx context.Context, transactionID string) (model.TransactionView, error) {
	t, err := s.transactionRepo.GetTransaction(ctx, transactionID)
	if err != nil {
		return model.TransactionView{}, err
	}
	return t.View(), nil
}

// CreateTransaction records a transaction against an existing portfolio.
//
// When investmentId is set, the investment must exist and belong to the same
// portfolio. The date defaults to the creation time.
func (s *TransactionService) CreateTransaction(ctx context.Context, req request.CreateTransactionRequest) (*model.TransactionView, error) {
	if err := validation.ValidateCreateTransaction(req); err != nil {
		return nil, err
	}

	var date *time.Time
	if req.Date != nil {
		d, err := request.ParseDateTime(*req.Date)
		if err != nil {
			return nil, validation.NewError("date", err.Error())
		}
		date = &d
	}

	investmentID := optionalID(req.InvestmentID)

	transaction := model.NewTransaction(
		req.PortfolioID,
		investmentID,
		validation.NormalizeTransactionType(req.TransactionType),
		req.Amount,
		req.Notes,
		date,
	)

	err := database.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := s.portfolioRepo.WithTx(tx).GetPortfolio(ctx, req.PortfolioID); err != nil {
			return err
		}
		if err := s.checkInvestment(ctx, tx, req.PortfolioID, investmentID); err != nil {
			return err
		}
		return s.transactionRepo.WithTx(tx).InsertTransaction(ctx, transaction)
	})
	if err != nil {
		return nil, err
	}

	view := transaction.View()
	return &view, nil
}

// UpdateTransaction updates an existing transaction with the provided fields.
// An empty investmentId detaches the transaction from its investment.
func (s *TransactionService) UpdateTransaction(ctx context.Context, transactionID string, req request.UpdateTransactionRequest) (*model.TransactionView, error) {
	if err := validation.ValidateUpdateTransaction(req); err != nil {
		return nil, err
	}

	var transaction model.Transaction
	err := database.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		transactionRepo := s.transactionRepo.WithTx(tx)

		var err error
		transaction, err = transactionRepo.GetTransaction(ctx, transactionID)
		if err != nil {
			return err
		}

		if req.InvestmentID != nil {
			investmentID := optionalID(req.InvestmentID)
			if err := s.checkInvestment(ctx, tx, transaction.PortfolioID, investmentID); err != nil {
				return err
			}
			transaction.InvestmentID = investmentID
		}
		if req.TransactionType != nil {
			transaction.TransactionType = validation.NormalizeTransactionType(*req.TransactionType)
		}
		if req.Amount != nil {
			transaction.Amount = *req.Amount
		}
		if req.Notes != nil {
			transaction.Notes = *req.Notes
		}
		if req.Date != nil {
			d, err := request.ParseDateTime(*req.Date)
			if err != nil {
				return validation.NewError("date", err.Error())
			}
			transaction.Date = d.Truncate(time.Microsecond)
		}

		return transactionRepo.UpdateTransaction(ctx, &transaction)
	})
	if err != nil {
		return nil, err
	}

	view := transaction.View()
	return &view, nil
}

// DeleteTransaction removes a transaction. Deleting an unknown id succeeds.
func (s *TransactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	return database.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		return s.transactionRepo.WithTx(tx).DeleteTransaction(ctx, transactionID)
	})
}

// checkInvestment verifies that investmentID, when set, belongs to portfolioID.
func (s *TransactionService) checkInvestment(ctx context.Context, tx *sql.Tx, portfolioID string, investmentID *string) error {
	if investmentID == nil {
		return nil
	}
	inv, err := s.investmentRepo.WithTx(tx).GetInvestment(ctx, *investmentID)
	if err != nil {
		return err
	}
	if inv.PortfolioID != portfolioID {
		return validation.NewError("investmentId", "investment does not belong to portfolio")
	}
	return nil
}
