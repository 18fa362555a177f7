package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/service"
)

// Bounds used when only one side of a date range is given.
var (
	earliestDate = time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)
	latestDate   = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
)

// PerformanceHandler handles HTTP requests for portfolio performance snapshots.
type PerformanceHandler struct {
	performanceService *service.PerformanceService
}

// NewPerformanceHandler creates a new PerformanceHandler with the provided service dependency.
func NewPerformanceHandler(performanceService *service.PerformanceService) *PerformanceHandler {
	return &PerformanceHandler{
		performanceService: performanceService,
	}
}

// PerformancePerPortfolio handles GET requests for the snapshot history of a portfolio
// in ascending date order, optionally limited to an inclusive date range.
//
// Endpoint: GET /api/portfolio/{uuid}/performance?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD
// Response: 200 OK with array of model.PerformanceView
// Error: 400 Bad Request if a date is malformed or startDate is after endDate
// Error: 404 Not Found if portfolio not found
func (h *PerformanceHandler) PerformancePerPortfolio(w http.ResponseWriter, r *http.Request) {
	portfolioID := chi.URLParam(r, "uuid")

	dateRange, err := request.ParseDateRange(r.URL.Query().Get("startDate"), r.URL.Query().Get("endDate"))
	if err != nil {
		respondBadRequest(w, "invalid query parameter", err)
		return
	}

	var snapshots []model.PerformanceView
	if dateRange.IsOpen() {
		snapshots, err = h.performanceService.GetPerformanceHistory(r.Context(), portfolioID)
	} else {
		start, end := earliestDate, latestDate
		if dateRange.Start != nil {
			start = *dateRange.Start
		}
		if dateRange.End != nil {
			end = *dateRange.End
		}
		snapshots, err = h.performanceService.GetPerformanceBetween(r.Context(), portfolioID, start, end)
	}
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrievePerformance)
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshots)
}

// PerformanceOnDate handles GET requests for the snapshot of a portfolio on one date.
//
// Endpoint: GET /api/portfolio/{uuid}/performance/date/{date}
// Response: 200 OK with model.PerformanceView
// Error: 400 Bad Request if the date is malformed
// Error: 404 Not Found if the portfolio or snapshot does not exist
func (h *PerformanceHandler) PerformanceOnDate(w http.ResponseWriter, r *http.Request) {
	date, err := request.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		respondBadRequest(w, "invalid date", err)
		return
	}

	snapshot, err := h.performanceService.GetPerformanceOnDate(r.Context(), chi.URLParam(r, "uuid"), date)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrievePerformance)
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshot)
}

// GetPerformance handles GET requests to retrieve a single snapshot.
//
// Endpoint: GET /api/performance/{uuid}
// Response: 200 OK with model.PerformanceView
// Error: 404 Not Found if snapshot not found
func (h *PerformanceHandler) GetPerformance(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.performanceService.GetPerformance(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrievePerformance)
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshot)
}

// CreatePerformance handles POST requests to record a snapshot with explicit values.
//
// Endpoint: POST /api/performance
// Request Body: CreatePerformanceRequest (portfolioId, date, totalValue, optional changes)
// Response: 201 Created with model.PerformanceView
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the portfolio does not exist
// Error: 409 Conflict if the portfolio already has a snapshot on that date
func (h *PerformanceHandler) CreatePerformance(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreatePerformanceRequest](r)
	if err != nil {
		respondBadRequest(w, "invalid request body", err)
		return
	}

	snapshot, err := h.performanceService.RecordPerformance(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToSave)
		return
	}

	response.RespondJSON(w, http.StatusCreated, snapshot)
}

// RecordSnapshots handles POST requests to snapshot every active portfolio.
// Portfolios that already have a snapshot on the date are skipped.
//
// Endpoint: POST /api/performance/snapshot?date=YYYY-MM-DD (defaults to today)
// Response: 200 OK with model.SnapshotResult
// Error: 400 Bad Request if the date is malformed
// Error: 500 Internal Server Error if any portfolio fails
func (h *PerformanceHandler) RecordSnapshots(w http.ResponseWriter, r *http.Request) {
	date := model.Today()
	if param := r.URL.Query().Get("date"); param != "" {
		d, err := request.ParseDate(param)
		if err != nil {
			respondBadRequest(w, "invalid query parameter", err)
			return
		}
		date = d
	}

	result, err := h.performanceService.RecordSnapshots(r.Context(), date)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRecordSnapshots)
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// UpdatePerformance handles PUT requests to correct a snapshot.
//
// Endpoint: PUT /api/performance/{uuid}
// Request Body: UpdatePerformanceRequest (all fields optional)
// Response: 200 OK with updated model.PerformanceView
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if snapshot not found
func (h *PerformanceHandler) UpdatePerformance(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdatePerformanceRequest](r)
	if err != nil {
		respondBadRequest(w, "invalid request body", err)
		return
	}

	snapshot, err := h.performanceService.UpdatePerformance(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToSave)
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshot)
}

// DeletePerformance handles DELETE requests to remove a snapshot.
//
// Endpoint: DELETE /api/performance/{uuid}
// Response: 204 No Content
func (h *PerformanceHandler) DeletePerformance(w http.ResponseWriter, r *http.Request) {
	if err := h.performanceService.DeletePerformance(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToDelete)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
