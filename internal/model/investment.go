package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Investment is a single holding within a portfolio: what was put in (Amount)
// against what it is worth now (CurrentValue).
type Investment struct {
	ID           string
	PortfolioID  string
	Name         string
	Description  string
	Type         string
	RiskLevel    string
	Amount       decimal.Decimal
	CurrentValue decimal.Decimal
	PurchaseDate time.Time
	IsActive     bool
	CreatedAt    time.Time
}

// InvestmentFilter for querying investments.
type InvestmentFilter struct {
	PortfolioID string
	ActiveOnly  bool
}

// NewInvestment builds an investment with a fresh id and creation timestamp.
// A nil purchaseDate defaults to the creation date and a nil isActive to true.
func NewInvestment(
	portfolioID, name, description, investmentType, riskLevel string,
	amount, currentValue decimal.Decimal,
	purchaseDate *time.Time,
	isActive *bool,
) *Investment {
	createdAt := now()
	inv := &Investment{
		ID:           uuid.New().String(),
		PortfolioID:  portfolioID,
		Name:         name,
		Description:  description,
		Type:         investmentType,
		RiskLevel:    riskLevel,
		Amount:       amount,
		CurrentValue: currentValue,
		PurchaseDate: DateOf(createdAt),
		IsActive:     true,
		CreatedAt:    createdAt,
	}
	if purchaseDate != nil {
		inv.PurchaseDate = DateOf(*purchaseDate)
	}
	if isActive != nil {
		inv.IsActive = *isActive
	}
	return inv
}

// InvestmentView is the JSON representation of an investment.
type InvestmentView struct {
	ID           string          `json:"id"`
	PortfolioID  string          `json:"portfolioId"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Type         string          `json:"type"`
	RiskLevel    string          `json:"riskLevel"`
	Amount       decimal.Decimal `json:"amount"`
	CurrentValue decimal.Decimal `json:"currentValue"`
	PurchaseDate string          `json:"purchaseDate"`
	IsActive     bool            `json:"isActive"`
	CreatedAt    time.Time       `json:"createdAt"`
}

func (i *Investment) View() InvestmentView {
	return InvestmentView{
		ID:           i.ID,
		PortfolioID:  i.PortfolioID,
		Name:         i.Name,
		Description:  i.Description,
		Type:         i.Type,
		RiskLevel:    i.RiskLevel,
		Amount:       i.Amount,
		CurrentValue: i.CurrentValue,
		PurchaseDate: i.PurchaseDate.Format(DateLayout),
		IsActive:     i.IsActive,
		CreatedAt:    i.CreatedAt,
	}
}

func InvestmentViews(investments []Investment) []InvestmentView {
	views := make([]InvestmentView, len(investments))
	for i := range investments {
		views[i] = investments[i].View()
	}
	return views
}
