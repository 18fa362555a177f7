package validation

import (
	"fmt"
	"strings"

	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/api/request"
)

// ValidRiskLevel contains the allowed risk level values. An empty risk level is allowed.
var ValidRiskLevel = map[string]bool{
	"low": true, "medium": true, "high": true,
}

// ValidateCreateInvestment validates an investment creation request.
//
// Required fields:
//   - portfolioId: Must be a valid UUID
//   - name: 1-100 characters
//   - amount: Must be positive
//   - currentValue: Must be positive
//
// Optional fields:
//   - purchaseDate: YYYY-MM-DD
//   - riskLevel: one of low, medium, high
func ValidateCreateInvestment(req request.CreateInvestmentRequest) error {
	errors := make(map[string]string)

	checkUUID(errors, "portfolioId", req.PortfolioID)
	checkRequired(errors, "name", req.Name, 100)
	checkMaxLen(errors, "description", req.Description, 500)
	checkMaxLen(errors, "type", req.Type, 50)
	checkRiskLevel(errors, req.RiskLevel)
	checkPositive(errors, "amount", req.Amount)
	checkPositive(errors, "currentValue", req.CurrentValue)

	if req.PurchaseDate != nil {
		if _, err := request.ParseDate(*req.PurchaseDate); err != nil {
			errors["purchaseDate"] = err.Error()
		}
	}

	return result(errors)
}

// ValidateUpdateInvestment validates an investment update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateInvestment(req request.UpdateInvestmentRequest) error {
	errors := make(map[string]string)

	if req.Name != nil {
		checkRequired(errors, "name", *req.Name, 100)
	}
	if req.Description != nil {
		checkMaxLen(errors, "description", *req.Description, 500)
	}
	if req.Type != nil {
		checkMaxLen(errors, "type", *req.Type, 50)
	}
	if req.RiskLevel != nil {
		checkRiskLevel(errors, *req.RiskLevel)
	}
	if req.Amount != nil {
		checkPositive(errors, "amount", *req.Amount)
	}
	if req.CurrentValue != nil {
		checkPositive(errors, "currentValue", *req.CurrentValue)
	}
	if req.PurchaseDate != nil {
		if _, err := request.ParseDate(*req.PurchaseDate); err != nil {
			errors["purchaseDate"] = err.Error()
		}
	}

	return result(errors)
}

func checkRiskLevel(errors map[string]string, riskLevel string) {
	if riskLevel != "" && !ValidRiskLevel[strings.ToLower(riskLevel)] {
		errors["riskLevel"] = fmt.Sprintf("invalid riskLevel: %s", riskLevel)
	}
}
