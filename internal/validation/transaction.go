package validation

import (
	"fmt"
	"strings"

	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/model"
)

// ValidTransactionType contains the allowed transaction type values.
var ValidTransactionType = map[string]bool{
	model.TransactionTypeBuy:        true,
	model.TransactionTypeSell:       true,
	model.TransactionTypeDividend:   true,
	model.TransactionTypeDeposit:    true,
	model.TransactionTypeWithdrawal: true,
	model.TransactionTypeFee:        true,
}

// ValidateCreateTransaction validates a transaction creation request.
//
// Required fields:
//   - portfolioId: Must be a valid UUID
//   - transactionType: Must be one of: buy, sell, dividend, deposit, withdrawal, fee
//   - amount: Must be positive
//
// Optional fields:
//   - investmentId: Must be a valid UUID if provided
//   - date: YYYY-MM-DD or RFC3339
//   - notes: at most 1000 characters
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	checkUUID(errors, "portfolioId", req.PortfolioID)

	if req.InvestmentID != nil && *req.InvestmentID != "" {
		checkUUID(errors, "investmentId", *req.InvestmentID)
	}

	checkTransactionType(errors, req.TransactionType)
	checkPositive(errors, "amount", req.Amount)
	checkMaxLen(errors, "notes", req.Notes, 1000)

	if req.Date != nil {
		if _, err := request.ParseDateTime(*req.Date); err != nil {
			errors["date"] = err.Error()
		}
	}

	return result(errors)
}

// ValidateUpdateTransaction validates a transaction update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	errors := make(map[string]string)

	if req.InvestmentID != nil && *req.InvestmentID != "" {
		checkUUID(errors, "investmentId", *req.InvestmentID)
	}
	if req.TransactionType != nil {
		checkTransactionType(errors, *req.TransactionType)
	}
	if req.Amount != nil {
		checkPositive(errors, "amount", *req.Amount)
	}
	if req.Notes != nil {
		checkMaxLen(errors, "notes", *req.Notes, 1000)
	}
	if req.Date != nil {
		if _, err := request.ParseDateTime(*req.Date); err != nil {
			errors["date"] = err.Error()
		}
	}

	return result(errors)
}

// NormalizeTransactionType lower-cases and trims a transaction type.
func NormalizeTransactionType(transactionType string) string {
	return strings.ToLower(strings.TrimSpace(transactionType))
}

func checkTransactionType(errors map[string]string, transactionType string) {
	if strings.TrimSpace(transactionType) == "" {
		errors["transactionType"] = "transactionType is required"
	} else if !ValidTransactionType[NormalizeTransactionType(transactionType)] {
		errors["transactionType"] = fmt.Sprintf("invalid transactionType: %s", transactionType)
	}
}
