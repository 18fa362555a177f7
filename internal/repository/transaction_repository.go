package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
type TransactionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// WithTx returns a new TransactionRepository scoped to the provided transaction.
func (r *TransactionRepository) WithTx(tx *sql.Tx) *TransactionRepository {
	return &TransactionRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *TransactionRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const transactionColumns = `id, portfolio_id, investment_id, transaction_type, amount, notes, date`

// GetTransactions retrieves transactions matching filter, newest first.
// At least one of PortfolioID and InvestmentID should be set; an empty filter returns every transaction.
func (r *TransactionRepository) GetTransactions(ctx context.Context, filter model.TransactionFilter) ([]model.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM "transaction"
		WHERE 1=1
	`
	var args []any

	if filter.PortfolioID != "" {
		query += " AND portfolio_id = ?"
		args = append(args, filter.PortfolioID)
	}

	if filter.InvestmentID != "" {
		query += " AND investment_id = ?"
		args = append(args, filter.InvestmentID)
	}

	query += " ORDER BY date DESC, id DESC"

	return r.queryTransactions(ctx, query, args...)
}

// GetRecentTransactions retrieves at most limit transactions of a portfolio, newest first.
func (r *TransactionRepository) GetRecentTransactions(ctx context.Context, portfolioID string, limit int) ([]model.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM "transaction"
		WHERE portfolio_id = ?
		ORDER BY date DESC, id DESC
		LIMIT ?
	`

	return r.queryTransactions(ctx, query, portfolioID, limit)
}

func (r *TransactionRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]model.Transaction, error) {
	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}

	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransaction retrieves a transaction by id. Returns ErrTransactionNotFound if it does not exist.
func (r *TransactionRepository) GetTransaction(ctx context.Context, transactionID string) (model.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM "transaction"
		WHERE id = ?
	`

	t, err := scanTransaction(r.getQuerier().QueryRowContext(ctx, query, transactionID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to query transaction: %w", err)
	}

	return t, nil
}

func (r *TransactionRepository) InsertTransaction(ctx context.Context, t *model.Transaction) error {
	query := `
		INSERT INTO "transaction" (id, portfolio_id, investment_id, transaction_type, amount, notes, date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		t.ID,
		t.PortfolioID,
		t.InvestmentID,
		t.TransactionType,
		t.Amount,
		nullString(t.Notes),
		formatTimestamp(t.Date),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

func (r *TransactionRepository) UpdateTransaction(ctx context.Context, t *model.Transaction) error {
	query := `
		UPDATE "transaction"
		SET investment_id = ?, transaction_type = ?, amount = ?, notes = ?, date = ?
		WHERE id = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		t.InvestmentID,
		t.TransactionType,
		t.Amount,
		nullString(t.Notes),
		formatTimestamp(t.Date),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	return ensureAffected(result, apperrors.ErrTransactionNotFound)
}

// DeleteTransaction removes a transaction. Deleting an absent id is not an error.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	if _, err := r.getQuerier().ExecContext(ctx, `DELETE FROM "transaction" WHERE id = ?`, transactionID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

func scanTransaction(row rowScanner) (model.Transaction, error) {
	var t model.Transaction
	var notes sql.NullString
	var dateStr string

	err := row.Scan(
		&t.ID,
		&t.PortfolioID,
		&t.InvestmentID,
		&t.TransactionType,
		&t.Amount,
		&notes,
		&dateStr,
	)
	if err != nil {
		return model.Transaction{}, err
	}

	t.Notes = notes.String
	t.Date, err = ParseTime(dateStr)
	if err != nil {
		return model.Transaction{}, err
	}

	return t, nil
}
