package request

import "github.com/shopspring/decimal"

// CreateInvestmentRequest represents the request body for creating an investment.
// PurchaseDate is YYYY-MM-DD and defaults to the creation date.
type CreateInvestmentRequest struct {
	PortfolioID  string          `json:"portfolioId"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Type         string          `json:"type"`
	RiskLevel    string          `json:"riskLevel"`
	Amount       decimal.Decimal `json:"amount"`
	CurrentValue decimal.Decimal `json:"currentValue"`
	PurchaseDate *string         `json:"purchaseDate,omitempty"`
	IsActive     *bool           `json:"isActive,omitempty"`
}

type UpdateInvestmentRequest struct {
	Name         *string          `json:"name,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Type         *string          `json:"type,omitempty"`
	RiskLevel    *string          `json:"riskLevel,omitempty"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	CurrentValue *decimal.Decimal `json:"currentValue,omitempty"`
	PurchaseDate *string          `json:"purchaseDate,omitempty"`
	IsActive     *bool            `json:"isActive,omitempty"`
}
