package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/model"
)

// PortfolioRepository provides data access methods for the portfolio table.
type PortfolioRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewPortfolioRepository creates a new PortfolioRepository with the provided database connection.
func NewPortfolioRepository(db *sql.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// WithTx returns a new PortfolioRepository scoped to the provided transaction.
func (r *PortfolioRepository) WithTx(tx *sql.Tx) *PortfolioRepository {
	return &PortfolioRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *PortfolioRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const portfolioColumns = `id, user_id, name, description, total_value, is_active, created_at`

// GetPortfolios retrieves portfolios from the database based on filter criteria.
// The filter restricts the result to one user and/or to active portfolios.
// Returns an empty slice if no portfolios match the filter criteria.
func (r *PortfolioRepository) GetPortfolios(ctx context.Context, filter model.PortfolioFilter) ([]model.Portfolio, error) {
	query := `
		SELECT ` + portfolioColumns + `
		FROM portfolio
		WHERE 1=1
	`
	var args []any

	if filter.UserID != "" {
		query += " AND user_id = ?"
		args = append(args, filter.UserID)
	}

	if filter.ActiveOnly {
		query += " AND is_active = ?"
		args = append(args, 1)
	}

	query += " ORDER BY created_at ASC, name ASC"

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolios table: %w", err)
	}
	defer rows.Close()

	portfolios := []model.Portfolio{}

	for rows.Next() {
		p, err := scanPortfolio(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio table results: %w", err)
		}
		portfolios = append(portfolios, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolios table: %w", err)
	}

	return portfolios, nil
}

// GetPortfolio retrieves a portfolio by id. Returns ErrPortfolioNotFound if it does not exist.
func (r *PortfolioRepository) GetPortfolio(ctx context.Context, portfolioID string) (model.Portfolio, error) {
	query := `
		SELECT ` + portfolioColumns + `
		FROM portfolio
		WHERE id = ?
	`

	p, err := scanPortfolio(r.getQuerier().QueryRowContext(ctx, query, portfolioID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Portfolio{}, apperrors.ErrPortfolioNotFound
	}
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to query portfolio: %w", err)
	}

	return p, nil
}

// InsertPortfolio inserts p. The owning user must exist.
func (r *PortfolioRepository) InsertPortfolio(ctx context.Context, p *model.Portfolio) error {
	query := `
		INSERT INTO portfolio (id, user_id, name, description, total_value, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		p.ID,
		p.UserID,
		p.Name,
		nullString(p.Description),
		p.TotalValue,
		p.IsActive,
		formatTimestamp(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert portfolio: %w", err)
	}

	return nil
}

// UpdatePortfolio writes the mutable columns of p. Returns ErrPortfolioNotFound if no row has p.ID.
func (r *PortfolioRepository) UpdatePortfolio(ctx context.Context, p *model.Portfolio) error {
	query := `
		UPDATE portfolio
		SET name = ?, description = ?, total_value = ?, is_active = ?
		WHERE id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		p.Name,
		nullString(p.Description),
		p.TotalValue,
		p.IsActive,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update portfolio: %w", err)
	}

	return ensureAffected(result, apperrors.ErrPortfolioNotFound)
}

// DeletePortfolio removes a portfolio together with its investments,
// transactions and performance snapshots. Deleting an absent id is not an error.
func (r *PortfolioRepository) DeletePortfolio(ctx context.Context, portfolioID string) error {
	if _, err := r.getQuerier().ExecContext(ctx, `DELETE FROM portfolio WHERE id = ?`, portfolioID); err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}
	return nil
}

func scanPortfolio(row rowScanner) (model.Portfolio, error) {
	var p model.Portfolio
	var description sql.NullString
	var createdAtStr string

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&description,
		&p.TotalValue,
		&p.IsActive,
		&createdAtStr,
	)
	if err != nil {
		return model.Portfolio{}, err
	}

	p.Description = description.String
	p.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Portfolio{}, err
	}

	return p, nil
}
