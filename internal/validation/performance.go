package validation

import (
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/api/request"
)

// ValidateCreatePerformance validates a manually recorded snapshot.
// totalValue is required and must not be negative; the change fields may be negative.
func ValidateCreatePerformance(req request.CreatePerformanceRequest) error {
	errors := make(map[string]string)

	checkUUID(errors, "portfolioId", req.PortfolioID)

	if req.Date == "" {
		errors["date"] = "date is required"
	} else if _, err := request.ParseDate(req.Date); err != nil {
		errors["date"] = err.Error()
	}

	if req.TotalValue == nil {
		errors["totalValue"] = "totalValue is required"
	} else if req.TotalValue.IsNegative() {
		errors["totalValue"] = "totalValue must not be negative"
	}

	return result(errors)
}

func ValidateUpdatePerformance(req request.UpdatePerformanceRequest) error {
	if req.TotalValue != nil && req.TotalValue.IsNegative() {
		return NewError("totalValue", "totalValue must not be negative")
	}
	return nil
}
