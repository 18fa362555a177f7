package request

import "github.com/shopspring/decimal"

// CreatePortfolioRequest represents the request body for creating a portfolio
type CreatePortfolioRequest struct {
	UserID      string           `json:"userId"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	TotalValue  *decimal.Decimal `json:"totalValue,omitempty"`
	IsActive    *bool            `json:"isActive,omitempty"`
}

type UpdatePortfolioRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	TotalValue  *decimal.Decimal `json:"totalValue,omitempty"`
	IsActive    *bool            `json:"isActive,omitempty"`
}
