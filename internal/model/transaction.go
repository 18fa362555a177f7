package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction types accepted on create and update.
const (
	TransactionTypeBuy        = "buy"
	TransactionTypeSell       = "sell"
	TransactionTypeDividend   = "dividend"
	TransactionTypeDeposit    = "deposit"
	TransactionTypeWithdrawal = "withdrawal"
	TransactionTypeFee        = "fee"
)

// Transaction is a monetary event recorded against a portfolio and, optionally,
// one of its investments.
type Transaction struct {
	ID              string
	PortfolioID     string
	InvestmentID    *string
	TransactionType string
	Amount          decimal.Decimal
	Notes           string
	Date            time.Time
}

// TransactionFilter for querying transactions. Empty fields do not filter.
type TransactionFilter struct {
	PortfolioID  string
	InvestmentID string
}

// NewTransaction builds a transaction with a fresh id. A nil date defaults to now.
func NewTransaction(portfolioID string, investmentID *string, transactionType string, amount decimal.Decimal, notes string, date *time.Time) *Transaction {
	t := &Transaction{
		ID:              uuid.New().String(),
		PortfolioID:     portfolioID,
		InvestmentID:    investmentID,
		TransactionType: transactionType,
		Amount:          amount,
		Notes:           notes,
		Date:            now(),
	}
	if date != nil {
		t.Date = date.UTC().Truncate(time.Microsecond)
	}
	return t
}

// TransactionView is the JSON representation of a transaction.
type TransactionView struct {
	ID              string          `json:"id"`
	PortfolioID     string          `json:"portfolioId"`
	InvestmentID    *string         `json:"investmentId"`
	TransactionType string          `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"`
	Notes           string          `json:"notes"`
	Date            time.Time       `json:"date"`
}

func (t *Transaction) View() TransactionView {
	return TransactionView{
		ID:              t.ID,
		PortfolioID:     t.PortfolioID,
		InvestmentID:    t.InvestmentID,
		TransactionType: t.TransactionType,
		Amount:          t.Amount,
		Notes:           t.Notes,
		Date:            t.Date,
	}
}

func TransactionViews(transactions []Transaction) []TransactionView {
	views := make([]TransactionView, len(transactions))
	for i := range transactions {
		views[i] = transactions[i].View()
	}
	return views
}
