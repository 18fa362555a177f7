package request

import "github.com/shopspring/decimal"

// CreateTransactionRequest represents the request body for recording a transaction.
// Date accepts YYYY-MM-DD or RFC3339 and defaults to the creation time.
type CreateTransactionRequest struct {
	PortfolioID     string          `json:"portfolioId"`
	InvestmentID    *string         `json:"investmentId,omitempty"`
	TransactionType string          `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"`
	Notes           string          `json:"notes"`
	Date            *string         `json:"date,omitempty"`
}

// UpdateTransactionRequest changes only the provided fields. An empty
// investmentId detaches the transaction from its investment.
type UpdateTransactionRequest struct {
	InvestmentID    *string          `json:"investmentId,omitempty"`
	TransactionType *string          `json:"transactionType,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	Notes           *string          `json:"notes,omitempty"`
	Date            *string          `json:"date,omitempty"`
}
