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

// PortfolioHandler handles portfolio-related HTTP requests
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Portfolios handles GET requests to list portfolios.
//
// Endpoint: GET /api/portfolio?userId={uuid}&active=true
// Response: 200 OK with array of model.PortfolioView
// Error: 400 Bad Request if a query parameter is malformed
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) Portfolios(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	active, err := request.ParseActive(query.Get("active"))
	if err != nil {
		respondBadRequest(w, "invalid query parameter", err)
		return
	}

	userID := query.Get("userId")
	if userID != "" {
		if err := validation.ValidateUUID(userID); err != nil {
			respondBadRequest(w, "invalid query parameter", err)
			return
		}
	}

	portfolios, err := h.portfolioService.GetPortfolios(r.Context(), model.PortfolioFilter{
		UserID:     userID,
		ActiveOnly: active,
	})
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrievePortfolios)
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolios)
}

// GetPortfolio handles GET requests to retrieve a single portfolio.
//
// Endpoint: GET /api/portfolio/{uuid}
// Response: 200 OK with model.PortfolioView
// Error: 404 Not Found if portfolio not found
func (h *PortfolioHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	portfolio, err := h.portfolioService.GetPortfolio(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrievePortfolio)
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolio)
}

// CreatePortfolio handles POST requests to create a portfolio for a user.
//
// Endpoint: POST /api/portfolio
// Request Body: CreatePortfolioRequest (userId, name, optional description, totalValue, isActive)
// Response: 201 Created with model.PortfolioView
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the user does not exist
func (h *PortfolioHandler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreatePortfolioRequest](r)
	if err != nil {
		respondBadRequest(w, "invalid request body", err)
		return
	}

	portfolio, err := h.portfolioService.CreatePortfolio(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToSave)
		return
	}

	response.RespondJSON(w, http.StatusCreated, portfolio)
}

// UpdatePortfolio handles PUT requests to update an existing portfolio.
// Only the fields present in the body change.
//
// Endpoint: PUT /api/portfolio/{uuid}
// Request Body: UpdatePortfolioRequest (all fields optional)
// Response: 200 OK with updated model.PortfolioView
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if portfolio not found
func (h *PortfolioHandler) UpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdatePortfolioRequest](r)
	if err != nil {
		respondBadRequest(w, "invalid request body", err)
		return
	}

	portfolio, err := h.portfolioService.UpdatePortfolio(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToSave)
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolio)
}

// DeletePortfolio handles DELETE requests to remove a portfolio with its
// investments, transactions and performance snapshots.
//
// Endpoint: DELETE /api/portfolio/{uuid}
// Response: 204 No Content
func (h *PortfolioHandler) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	if err := h.portfolioService.DeletePortfolio(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToDelete)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
