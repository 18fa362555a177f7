package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/model"
)

// InvestmentRepository provides data access methods for the investment table.
type InvestmentRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewInvestmentRepository creates a new InvestmentRepository with the provided database connection.
func NewInvestmentRepository(db *sql.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

// WithTx returns a new InvestmentRepository scoped to the provided transaction.
func (r *InvestmentRepository) WithTx(tx *sql.Tx) *InvestmentRepository {
	return &InvestmentRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *InvestmentRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const investmentColumns = `id, portfolio_id, name, description, type, risk_level, amount, current_value, purchase_date, is_active, created_at`

// GetInvestments retrieves the investments of one portfolio, optionally only
// the active ones, ordered by purchase date.
func (r *InvestmentRepository) GetInvestments(ctx context.Context, filter model.InvestmentFilter) ([]model.Investment, error) {
	query := `
		SELECT ` + investmentColumns + `
		FROM investment
		WHERE portfolio_id = ?
	`
	args := []any{filter.PortfolioID}

	if filter.ActiveOnly {
		query += " AND is_active = ?"
		args = append(args, 1)
	}

	query += " ORDER BY purchase_date ASC, created_at ASC"

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query investment table: %w", err)
	}
	defer rows.Close()

	investments := []model.Investment{}

	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investment table results: %w", err)
		}
		investments = append(investments, inv)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investment table: %w", err)
	}

	return investments, nil
}

// GetInvestment retrieves an investment by id. Returns ErrInvestmentNotFound if it does not exist.
func (r *InvestmentRepository) GetInvestment(ctx context.Context, investmentID string) (model.Investment, error) {
	query := `
		SELECT ` + investmentColumns + `
		FROM investment
		WHERE id = ?
	`

	inv, err := scanInvestment(r.getQuerier().QueryRowContext(ctx, query, investmentID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Investment{}, apperrors.ErrInvestmentNotFound
	}
	if err != nil {
		return model.Investment{}, fmt.Errorf("failed to query investment: %w", err)
	}

	return inv, nil
}

func (r *InvestmentRepository) InsertInvestment(ctx context.Context, inv *model.Investment) error {
	query := `
		INSERT INTO investment (id, portfolio_id, name, description, type, risk_level, amount, current_value, purchase_date, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		inv.ID,
		inv.PortfolioID,
		inv.Name,
		nullString(inv.Description),
		nullString(inv.Type),
		nullString(inv.RiskLevel),
		inv.Amount,
		inv.CurrentValue,
		formatDate(inv.PurchaseDate),
		inv.IsActive,
		formatTimestamp(inv.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert investment: %w", err)
	}

	return nil
}

func (r *InvestmentRepository) UpdateInvestment(ctx context.Context, inv *model.Investment) error {
	query := `
		UPDATE investment
		SET name = ?, description = ?, type = ?, risk_level = ?, amount = ?,
			current_value = ?, purchase_date = ?, is_active = ?
		WHERE id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		inv.Name,
		nullString(inv.Description),
		nullString(inv.Type),
		nullString(inv.RiskLevel),
		inv.Amount,
		inv.CurrentValue,
		formatDate(inv.PurchaseDate),
		inv.IsActive,
		inv.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update investment: %w", err)
	}

	return ensureAffected(result, apperrors.ErrInvestmentNotFound)
}

// DeleteInvestment removes an investment and the transactions recorded against it.
// Deleting an absent id is not an error.
func (r *InvestmentRepository) DeleteInvestment(ctx context.Context, investmentID string) error {
	if _, err := r.getQuerier().ExecContext(ctx, `DELETE FROM investment WHERE id = ?`, investmentID); err != nil {
		return fmt.Errorf("failed to delete investment: %w", err)
	}
	return nil
}

func scanInvestment(row rowScanner) (model.Investment, error) {
	var inv model.Investment
	var description, investmentType, riskLevel sql.NullString
	var purchaseDateStr, createdAtStr string

	err := row.Scan(
		&inv.ID,
		&inv.PortfolioID,
		&inv.Name,
		&description,
		&investmentType,
		&riskLevel,
		&inv.Amount,
		&inv.CurrentValue,
		&purchaseDateStr,
		&inv.IsActive,
		&createdAtStr,
	)
	if err != nil {
		return model.Investment{}, err
	}

	inv.Description = description.String
	inv.Type = investmentType.String
	inv.RiskLevel = riskLevel.String

	inv.PurchaseDate, err = ParseTime(purchaseDateStr)
	if err != nil {
		return model.Investment{}, err
	}
	inv.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Investment{}, err
	}

	return inv, nil
}
