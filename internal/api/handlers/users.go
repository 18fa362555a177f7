package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/service"
)

// UserHandler handles HTTP requests for user endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the UserService. Password hashes never appear in responses.
type UserHandler struct {
	userService      *service.UserService
	portfolioService *service.PortfolioService
}

// NewUserHandler creates a new UserHandler with the provided service dependencies.
func NewUserHandler(userService *service.UserService, portfolioService *service.PortfolioService) *UserHandler {
	return &UserHandler{
		userService:      userService,
		portfolioService: portfolioService,
	}
}

// Users handles GET requests to list all users ordered by username.
//
// Endpoint: GET /api/user
// Response: 200 OK with array of model.UserView
// Error: 500 Internal Server Error if retrieval fails
func (h *UserHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.GetAllUsers(r.Context())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveUsers)
		return
	}

	response.RespondJSON(w, http.StatusOK, users)
}

// GetUser handles GET requests to retrieve a single user by ID.
//
// Endpoint: GET /api/user/{uuid}
// Response: 200 OK with model.UserView
// Error: 400 Bad Request if user ID is invalid (validated by middleware)
// Error: 404 Not Found if user not found
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetUser(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveUser)
		return
	}

	response.RespondJSON(w, http.StatusOK, user)
}

// GetUserByUsername handles GET requests to retrieve a single user by username.
//
// Endpoint: GET /api/user/username/{username}
// Response: 200 OK with model.UserView
// Error: 404 Not Found if user not found
func (h *UserHandler) GetUserByUsername(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetUserByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveUser)
		return
	}

	response.RespondJSON(w, http.StatusOK, user)
}

// UserPortfolios handles GET requests to list the portfolios owned by a user.
//
// Endpoint: GET /api/user/{uuid}/portfolios?active=true
// Response: 200 OK with array of model.PortfolioView
// Error: 400 Bad Request if the active parameter is malformed
// Error: 404 Not Found if user not found
func (h *UserHandler) UserPortfolios(w http.ResponseWriter, r *http.Request) {
	active, err := request.ParseActive(r.URL.Query().Get("active"))
	if err != nil {
		respondBadRequest(w, "invalid query parameter", err)
		return
	}

	portfolios, err := h.portfolioService.GetPortfoliosForUser(r.Context(), chi.URLParam(r, "uuid"), active)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrievePortfolios)
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolios)
}

// CreateUser handles POST requests to register a user.
//
// Endpoint: POST /api/user
// Request Body: CreateUserRequest (username, password, optional name and email)
// Response: 201 Created with model.UserView
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 409 Conflict if the username or email is already taken
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateUserRequest](r)
	if err != nil {
		respondBadRequest(w, "invalid request body", err)
		return
	}

	user, err := h.userService.CreateUser(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToSave)
		return
	}

	response.RespondJSON(w, http.StatusCreated, user)
}

// UpdateUser handles PUT requests to update an existing user.
//
// Endpoint: PUT /api/user/{uuid}
// Request Body: UpdateUserRequest
// Response: 200 OK with updated model.UserView
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if user not found
// Error: 409 Conflict if the username or email belongs to another user
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.UpdateUserRequest](r)
	if err != nil {
		respondBadRequest(w, "invalid request body", err)
		return
	}

	user, err := h.userService.UpdateUser(r.Context(), chi.URLParam(r, "uuid"), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToSave)
		return
	}

	response.RespondJSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE requests to remove a user and everything it owns.
//
// Endpoint: DELETE /api/user/{uuid}
// Response: 204 No Content
// Error: 500 Internal Server Error if deletion fails
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.DeleteUser(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToDelete)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
