package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Portfolio is a named collection of investments owned by one user.
type Portfolio struct {
	ID          string
	UserID      string
	Name        string
	Description string
	TotalValue  decimal.Decimal
	IsActive    bool
	CreatedAt   time.Time
}

// PortfolioFilter for querying portfolios. Empty fields do not filter.
type PortfolioFilter struct {
	UserID     string
	ActiveOnly bool
}

// NewPortfolio builds an active portfolio with a fresh id and creation timestamp.
// A nil totalValue defaults to zero and a nil isActive defaults to true.
func NewPortfolio(userID, name, description string, totalValue *decimal.Decimal, isActive *bool) *Portfolio {
	p := &Portfolio{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        name,
		Description: description,
		TotalValue:  decimal.Zero,
		IsActive:    true,
		CreatedAt:   now(),
	}
	if totalValue != nil {
		p.TotalValue = *totalValue
	}
	if isActive != nil {
		p.IsActive = *isActive
	}
	return p
}

// PortfolioView is the JSON representation of a portfolio.
type PortfolioView struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	TotalValue  decimal.Decimal `json:"totalValue"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (p *Portfolio) View() PortfolioView {
	return PortfolioView{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Description: p.Description,
		TotalValue:  p.TotalValue,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
	}
}

func PortfolioViews(portfolios []Portfolio) []PortfolioView {
	views := make([]PortfolioView, len(portfolios))
	for i := range portfolios {
		views[i] = portfolios[i].View()
	}
	return views
}
