package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/service"
)

// InvestmentHandler handles HTTP requests for investment endpoints.
type InvestmentHandler struct {
	investmentService *service.InvestmentService
}

// NewInvestmentHandler creates a new InvestmentHandler with the provided service dependency.
func NewInvestmentHandler(investmentService *service.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{
		investmentService: investmentService,
	}
}

// InvestmentsPerPortfolio handles GET requests to list the investments of a portfolio.
//
// Endpoint: GET /api/portfolio/{uuid}/investments?active=true
// Response: 200 OK with array of model.InvestmentView
// Error: 400 Bad Request if the active parameter is malformed
// Error: 404 Not Found if portfolio not found
func (h *InvestmentHandler) InvestmentsPerPortfolio(w http.ResponseWriter, r *http.Request) {
	active, err := request.ParseActive(r.URL.Query().Get("active"))
	if err != nil {
		respondBadRequest(w, "invalid query parameter", err)
		return
	}

	investments, err := h.investmentService.GetInvestments(r.Context(), chi.URLParam(r, "uuid"), active)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveInvestments)
		return
	}

	response.RespondJSON(w, http.StatusOK, investments)
}

// GetInvestment handles GET requests to retrieve a single investment.
//
// Endpoint: GET /api/investment/{uuid}
// Response: 200 OK with model.InvestmentView
// Error: 404 Not Found if investment not found
func (h *InvestmentHandler) GetInvestment(w http.ResponseWriter, r *http.Request) {
	inv, err := h.investmentService.GetInvestment(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveInvestment)
		return
	}

	response.RespondJSON(w, http.StatusOK, inv)
}

// CreateInvestment handles POST requests to add an investment to a portfolio.
//
// Endpoint: POST /api/investment
// Request Body: CreateInvestmentRequest
// Response: 201 Created with model.InvestmentView
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the portfolio does not exist
func (h *InvestmentHandler) CreateInvestment(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateInvestmentRequest](r)
	if err != nil {
		respondBadRequest(w, "invalid request body", err)
		return
	}

	inv, err := h.investmentService.CreateInvestment(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToSave)
		return
	}

	response.RespondJSON(w, http.StatusCreated, inv)
}

// UpdateInvestment handles PUT requests to update an existing investment.
//
// Endpoint: PUT /api/investment/{uuid}
// Request Body: UpdateInvestmentRequest (all fields optional)
// Response: 200 OK with updated model.InvestmentView
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if investment not found
func (h *InvestmentHandler) UpdateInvestment(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateInvestmentRequest](r)
	if err != nil {
		respondBadRequest(w, "invalid request body", err)
		return
	}

	inv, err := h.investmentService.UpdateInvestment(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToSave)
		return
	}

	response.RespondJSON(w, http.StatusOK, inv)
}

// DeleteInvestment handles DELETE requests to remove an investment and its transactions.
//
// Endpoint: DELETE /api/investment/{uuid}
// Response: 204 No Content
func (h *InvestmentHandler) DeleteInvestment(w http.ResponseWriter, r *http.Request) {
	if err := h.investmentService.DeleteInvestment(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToDelete)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
