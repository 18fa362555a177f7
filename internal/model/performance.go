package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PercentageScale is the number of decimal places kept for percentage changes.
const PercentageScale = 4

// Performance is a dated snapshot of a portfolio's total value and its change
// from the previous snapshot. There is at most one per portfolio and date.
type Performance struct {
	ID               string
	PortfolioID      string
	Date             time.Time
	TotalValue       decimal.Decimal
	DailyChange      decimal.NullDecimal
	PercentageChange decimal.NullDecimal
}

// NewPerformance builds a snapshot with a fresh id for the calendar date of date.
func NewPerformance(portfolioID string, date time.Time, totalValue decimal.Decimal, dailyChange, percentageChange decimal.NullDecimal) *Performance {
	return &Performance{
		ID:               uuid.New().String(),
		PortfolioID:      portfolioID,
		Date:             DateOf(date),
		TotalValue:       totalValue,
		DailyChange:      dailyChange,
		PercentageChange: percentageChange,
	}
}

// NewSnapshot derives a snapshot of totalValue on date from the previous
// snapshot. Without a previous snapshot both changes are null; the percentage
// is also null when the previous total was zero.
func NewSnapshot(portfolioID string, date time.Time, totalValue decimal.Decimal, previous *Performance) *Performance {
	var change, pct decimal.NullDecimal
	if previous != nil {
		diff := totalValue.Sub(previous.TotalValue)
		change = decimal.NewNullDecimal(diff)
		if !previous.TotalValue.IsZero() {
			pct = decimal.NewNullDecimal(
				diff.Div(previous.TotalValue).Mul(decimal.NewFromInt(100)).Round(PercentageScale),
			)
		}
	}
	return NewPerformance(portfolioID, date, totalValue, change, pct)
}

// PerformanceView is the JSON representation of a snapshot.
type PerformanceView struct {
	ID               string              `json:"id"`
	PortfolioID      string              `json:"portfolioId"`
	Date             string              `json:"date"`
	TotalValue       decimal.Decimal     `json:"totalValue"`
	DailyChange      decimal.NullDecimal `json:"dailyChange"`
	PercentageChange decimal.NullDecimal `json:"percentageChange"`
}

func (p *Performance) View() PerformanceView {
	return PerformanceView{
		ID:               p.ID,
		PortfolioID:      p.PortfolioID,
		Date:             p.Date.Format(DateLayout),
		TotalValue:       p.TotalValue,
		DailyChange:      p.DailyChange,
		PercentageChange: p.PercentageChange,
	}
}

func PerformanceViews(snapshots []Performance) []PerformanceView {
	views := make([]PerformanceView, len(snapshots))
	for i := range snapshots {
		views[i] = snapshots[i].View()
	}
	return views
}

// SnapshotResult summarises a RecordSnapshots run.
type SnapshotResult struct {
	Date     string            `json:"date"`
	Recorded []PerformanceView `json:"recorded"`
	Skipped  int               `json:"skipped"`
}
