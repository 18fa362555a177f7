package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Tracker-Backend/internal/validation"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// parseJSON decodes the request body into T. Unknown fields are rejected
// and so is anything after the first JSON value.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return v, errors.New("invalid JSON: unexpected data after body")
	}
	return v, nil
}

// respondServiceError maps a service error to an HTTP error response.
//
//   - *validation.Error:     400 with the per-field messages as details
//   - apperrors.ErrNotFound: 404
//   - apperrors.ErrConflict: 409
//   - anything else:         500 with failure as the message
func respondServiceError(w http.ResponseWriter, err error, failure error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		response.RespondError(w, http.StatusBadRequest, "validation failed", verr.Fields)
	case errors.Is(err, apperrors.ErrNotFound):
		response.RespondError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, apperrors.ErrConflict):
		response.RespondError(w, http.StatusConflict, err.Error(), nil)
	default:
		log.Error().Err(err).Msg(failure.Error())
		response.RespondError(w, http.StatusInternalServerError, failure.Error(), err.Error())
	}
}

// respondBadRequest reports a malformed body or query parameter.
func respondBadRequest(w http.ResponseWriter, message string, err error) {
	response.RespondError(w, http.StatusBadRequest, message, err.Error())
}
