// Package apperrors defines the error taxonomy shared by repositories, services and handlers.
//
// Every entity error wraps one of the taxonomy roots, so callers can branch on
// the category with errors.Is(err, apperrors.ErrNotFound) or on the specific
// entity with errors.Is(err, apperrors.ErrUserNotFound).
package apperrors

import (
	"errors"
	"fmt"
)

// Taxonomy roots. Validation failures are reported with *validation.Error.
var (
	// ErrNotFound indicates that an operation targets an absent id.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a uniqueness violation.
	ErrConflict = errors.New("conflict")
)

// Domain entity errors represent missing entities in the system.
var (
	// ErrUserNotFound indicates that a user with the given ID or username does not exist.
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)

	// ErrPortfolioNotFound indicates that a portfolio with the given ID does not exist.
	ErrPortfolioNotFound = fmt.Errorf("portfolio %w", ErrNotFound)

	// ErrInvestmentNotFound indicates that an investment with the given ID does not exist.
	ErrInvestmentNotFound = fmt.Errorf("investment %w", ErrNotFound)

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = fmt.Errorf("transaction %w", ErrNotFound)

	// ErrPerformanceNotFound indicates no performance snapshot for the given ID or portfolio/date.
	ErrPerformanceNotFound = fmt.Errorf("performance snapshot %w", ErrNotFound)
)

// Uniqueness violations.
var (
	// ErrUsernameTaken indicates that another user already owns the username.
	ErrUsernameTaken = fmt.Errorf("%w: username already taken", ErrConflict)

	// ErrEmailInUse indicates that another user already owns the email address.
	ErrEmailInUse = fmt.Errorf("%w: email already in use", ErrConflict)

	// ErrPerformanceExists indicates a snapshot is already recorded for the portfolio and date.
	ErrPerformanceExists = fmt.Errorf("%w: performance snapshot already recorded for date", ErrConflict)
)

// Operation failure errors are the user-facing messages handlers send with a 500.
var (
	ErrFailedToRetrieveUsers        = errors.New("failed to retrieve users")
	ErrFailedToRetrieveUser         = errors.New("failed to retrieve user")
	ErrFailedToRetrievePortfolios   = errors.New("failed to retrieve portfolios")
	ErrFailedToRetrievePortfolio    = errors.New("failed to retrieve portfolio")
	ErrFailedToRetrieveInvestments  = errors.New("failed to retrieve investments")
	ErrFailedToRetrieveInvestment   = errors.New("failed to retrieve investment")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")
	ErrFailedToRetrievePerformance  = errors.New("failed to retrieve performance")
	ErrFailedToRecordSnapshots      = errors.New("failed to record performance snapshots")
	ErrFailedToGetVersionInfo       = errors.New("failed to get version information")
	ErrFailedToSave                 = errors.New("failed to save changes")
	ErrFailedToDelete               = errors.New("failed to delete")
)

// Data integrity errors represent inconsistencies in stored data.
var (
	// ErrDataInconsistency indicates that stored data cannot be decoded
	// (e.g., a malformed timestamp or decimal column).
	ErrDataInconsistency = errors.New("data inconsistency detected")
)
