package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/validation"
)

// TransactionHandler handles HTTP requests for transaction endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the transactionService.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// TransactionPerPortfolio handles GET requests to retrieve the transactions of a portfolio,
// newest first. With an investmentId query parameter only transactions recorded
// against that investment are returned.
//
// Endpoint: GET /api/portfolio/{uuid}/transactions?investmentId={uuid}
// Response: 200 OK with array of model.TransactionView
// Error: 400 Bad Request if investmentId is malformed
// Error: 404 Not Found if portfolio not found
func (h *TransactionHandler) TransactionPerPortfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")
	investmentID := r.URL.Query().Get("investmentId")

	var (
		transactions []model.TransactionView
		err          error
	)
	if investmentID != "" {
		if verr := validation.ValidateUUID(investmentID); verr != nil {
			respondBadRequest(w, "invalid query parameter", verr)
			return
		}
		transactions, err = h.transactionService.GetTransactionsByPortfolioAndInvestment(r.Context(), portfolioID, investmentID)
	} else {
		transactions, err = h.transactionService.GetTransactionsByPortfolio(r.Context(), portfolioID)
	}
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveTransactions)
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// RecentTransactions handles GET requests for the newest transactions of a portfolio.
//
// Endpoint: GET /api/portfolio/{uuid}/transactions/recent
// Response: 200 OK with at most service.RecentTransactionsLimit model.TransactionView
// Error: 404 Not Found if portfolio not found
func (h *TransactionHandler) RecentTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.transactionService.GetRecentTransactions(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveTransactions)
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// TransactionPerInvestment handles GET requests to retrieve the transactions of an investment.
//
// Endpoint: GET /api/investment/{uuid}/transactions
// Response: 200 OK with array of model.TransactionView
// Error: 404 Not Found if investment not found
func (h *TransactionHandler) TransactionPerInvestment(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.transactionService.GetTransactionsByInvestment(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveTransactions)
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// GetTransaction handles GET requests to retrieve a single transaction by ID.
//
// Endpoint: GET /api/transaction/{uuid}
// Response: 200 OK with model.TransactionView
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transaction, err := h.transactionService.GetTransaction(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveTransaction)
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// CreateTransaction handles POST requests to create a new transaction.
//
// Endpoint: POST /api/transaction
// Request Body: CreateTransactionRequest (portfolioId, transactionType, amount, optional investmentId, notes, date)
// Response: 201 Created with model.TransactionView
// Error: 400 Bad Request if validation fails, the body is invalid or the
// investment belongs to another portfolio
// Error: 404 Not Found if the portfolio or investment does not exist
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		respondBadRequest(w, "invalid request body", err)
		return
	}

	transaction, err := h.transactionService.CreateTransaction(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToSave)
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// UpdateTransaction handles PUT requests to update an existing transaction.
// Validates the request body and updates the specified transaction fields.
//
// Endpoint: PUT /api/transaction/{uuid}
// Request Body: UpdateTransactionRequest (all fields optional)
// Response: 200 OK with updated model.TransactionView
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware) or validation fails
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if update fails
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateTransactionRequest](r)
	if err != nil {
		respondBadRequest(w, "invalid request body", err)
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToSave)
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// DeleteTransaction handles DELETE requests to remove a transaction.
//
// Endpoint: DELETE /api/transaction/{uuid}
// Response: 204 No Content
// Error: 500 Internal Server Error if deletion fails
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.transactionService.DeleteTransaction(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToDelete)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
