package validation

import (
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/api/request"
)

func ValidateCreatePortfolio(req request.CreatePortfolioRequest) error {
	errors := make(map[string]string)

	checkUUID(errors, "userId", req.UserID)

	// Required field
	checkRequired(errors, "name", req.Name, 100)

	// Optional but has constraints
	checkMaxLen(errors, "description", req.Description, 500)

	if req.TotalValue != nil && req.TotalValue.IsNegative() {
		errors["totalValue"] = "totalValue must not be negative"
	}

	return result(errors)
}

func ValidateUpdatePortfolio(req request.UpdatePortfolioRequest) error {
	errors := make(map[string]string)

	// Only validate provided fields
	if req.Name != nil {
		checkRequired(errors, "name", *req.Name, 100)
	}

	if req.Description != nil {
		checkMaxLen(errors, "description", *req.Description, 500)
	}

	if req.TotalValue != nil && req.TotalValue.IsNegative() {
		errors["totalValue"] = "totalValue must not be negative"
	}

	return result(errors)
}
