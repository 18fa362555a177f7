package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/model"
)

// PerformanceRepository provides data access methods for the performance table.
// Dates are stored as YYYY-MM-DD so range queries compare lexically.
type PerformanceRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewPerformanceRepository creates a new PerformanceRepository with the provided database connection.
func NewPerformanceRepository(db *sql.DB) *PerformanceRepository {
	return &PerformanceRepository{db: db}
}

// WithTx returns a new PerformanceRepository scoped to the provided transaction.
func (r *PerformanceRepository) WithTx(tx *sql.Tx) *PerformanceRepository {
	return &PerformanceRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *PerformanceRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const performanceColumns = `id, portfolio_id, date, total_value, daily_change, percentage_change`

// GetPerformance retrieves every snapshot of a portfolio in ascending date order.
func (r *PerformanceRepository) GetPerformance(ctx context.Context, portfolioID string) ([]model.Performance, error) {
	query := `
		SELECT ` + performanceColumns + `
		FROM performance
		WHERE portfolio_id = ?
		ORDER BY date ASC
	`
	return r.queryPerformance(ctx, query, portfolioID)
}

// GetPerformanceBetween retrieves the snapshots of a portfolio with
// startDate <= date <= endDate in ascending date order.
func (r *PerformanceRepository) GetPerformanceBetween(ctx context.Context, portfolioID string, startDate, endDate time.Time) ([]model.Performance, error) {
	query := `
		SELECT ` + performanceColumns + `
		FROM performance
		WHERE portfolio_id = ?
		AND date >= ?
		AND date <= ?
		ORDER BY date ASC
	`
	return r.queryPerformance(ctx, query, portfolioID, formatDate(startDate), formatDate(endDate))
}

func (r *PerformanceRepository) queryPerformance(ctx context.Context, query string, args ...any) ([]model.Performance, error) {
	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query performance table: %w", err)
	}
	defer rows.Close()

	snapshots := []model.Performance{}

	for rows.Next() {
		p, err := scanPerformance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan performance table results: %w", err)
		}
		snapshots = append(snapshots, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating performance table: %w", err)
	}

	return snapshots, nil
}

// GetPerformanceOnDate retrieves the snapshot of a portfolio on date.
// Returns ErrPerformanceNotFound if none was recorded.
func (r *PerformanceRepository) GetPerformanceOnDate(ctx context.Context, portfolioID string, date time.Time) (model.Performance, error) {
	query := `
		SELECT ` + performanceColumns + `
		FROM performance
		WHERE portfolio_id = ? AND date = ?
	`
	return r.queryOne(ctx, query, portfolioID, formatDate(date))
}

// GetLatestBefore retrieves the most recent snapshot of a portfolio strictly before date.
// Returns ErrPerformanceNotFound if there is none.
func (r *PerformanceRepository) GetLatestBefore(ctx context.Context, portfolioID string, date time.Time) (model.Performance, error) {
	query := `
		SELECT ` + performanceColumns + `
		FROM performance
		WHERE portfolio_id = ? AND date < ?
		ORDER BY date DESC
		LIMIT 1
	`
	return r.queryOne(ctx, query, portfolioID, formatDate(date))
}

// GetPerformanceByID retrieves a snapshot by id. Returns ErrPerformanceNotFound if it does not exist.
func (r *PerformanceRepository) GetPerformanceByID(ctx context.Context, performanceID string) (model.Performance, error) {
	query := `
		SELECT ` + performanceColumns + `
		FROM performance
		WHERE id = ?
	`
	return r.queryOne(ctx, query, performanceID)
}

func (r *PerformanceRepository) queryOne(ctx context.Context, query string, args ...any) (model.Performance, error) {
	p, err := scanPerformance(r.getQuerier().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Performance{}, apperrors.ErrPerformanceNotFound
	}
	if err != nil {
		return model.Performance{}, fmt.Errorf("failed to query performance: %w", err)
	}
	return p, nil
}

// InsertPerformance inserts p. A second snapshot for the same portfolio and
// date returns ErrPerformanceExists.
func (r *PerformanceRepository) InsertPerformance(ctx context.Context, p *model.Performance) error {
	query := `
		INSERT INTO performance (id, portfolio_id, date, total_value, daily_change, percentage_change)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		p.ID,
		p.PortfolioID,
		formatDate(p.Date),
		p.TotalValue,
		p.DailyChange,
		p.PercentageChange,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrPerformanceExists
		}
		return fmt.Errorf("failed to insert performance: %w", err)
	}

	return nil
}

func (r *PerformanceRepository) UpdatePerformance(ctx context.Context, p *model.Performance) error {
	query := `
		UPDATE performance
		SET total_value = ?, daily_change = ?, percentage_change = ?
		WHERE id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		p.TotalValue,
		p.DailyChange,
		p.PercentageChange,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update performance: %w", err)
	}

	return ensureAffected(result, apperrors.ErrPerformanceNotFound)
}

// DeletePerformance removes a snapshot. Deleting an absent id is not an error.
func (r *PerformanceRepository) DeletePerformance(ctx context.Context, performanceID string) error {
	if _, err := r.getQuerier().ExecContext(ctx, `DELETE FROM performance WHERE id = ?`, performanceID); err != nil {
		return fmt.Errorf("failed to delete performance: %w", err)
	}
	return nil
}

func scanPerformance(row rowScanner) (model.Performance, error) {
	var p model.Performance
	var dateStr string

	err := row.Scan(
		&p.ID,
		&p.PortfolioID,
		&dateStr,
		&p.TotalValue,
		&p.DailyChange,
		&p.PercentageChange,
	)
	if err != nil {
		return model.Performance{}, err
	}

	p.Date, err = ParseTime(dateStr)
	if err != nil {
		return model.Performance{}, err
	}

	return p, nil
}
