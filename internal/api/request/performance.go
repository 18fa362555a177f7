package request

import "github.com/shopspring/decimal"

type CreatePerformanceRequest struct {
	PortfolioID      string           `json:"portfolioId"`
	Date             string           `json:"date"`
	TotalValue       *decimal.Decimal `json:"totalValue"`
	DailyChange      *decimal.Decimal `json:"dailyChange,omitempty"`
	PercentageChange *decimal.Decimal `json:"percentageChange,omitempty"`
}

type UpdatePerformanceRequest struct {
	TotalValue       *decimal.Decimal `json:"totalValue,omitempty"`
	DailyChange      *decimal.Decimal `json:"dailyChange,omitempty"`
	PercentageChange *decimal.Decimal `json:"percentageChange,omitempty"`
}
