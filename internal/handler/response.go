package handler

// RESPONSE HELPERS:
// Every error response from the API has the same shape:
//   {"error": "not_found", "message": "planet 3 not found"}
//
// and every handler goes through writeJSON/writeError, so status codes are
// decided in exactly one place.

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/starwars-api/internal/apperror"
)

// ErrorResponse is the standard error format returned by all API endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`   // Machine-readable error type (e.g., "not_found")
	Message string `json:"message"` // Human-readable description
}

// MessageResponse is the confirmation body for writes.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreatedResponse confirms an insert and carries the new row's id.
type CreatedResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// writeJSON sends a JSON response with the given status code. Headers and
// status must be written before the body.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to an HTTP status code and sends it.
//
//	ErrValidation → 400 validation_error
//	ErrConflict   → 400 conflict (duplicate email or favorite)
//	ErrNotFound   → 404 not_found
//	anything else → 500 internal_error, details logged, not sent
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError

	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			errorType = "not_found"
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusBadRequest
			errorType = "conflict"
		}

		writeJSON(w, status, ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
		})
		return
	}

	// The raw error may contain SQL or file paths; it only goes to the log.
	slog.Error("request failed", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}

// decodeJSON reads the request body into dst. An empty body leaves dst at its
// zero value so that the service's presence checks report the missing
// fields; a malformed body is a validation error.
func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperror.ValidationFailed("body", "invalid JSON body")
	}
	return nil
}

// pathID parses the {id} URL parameter. Routes constrain it to digits, so
// the only failure left is overflow, which cannot name an existing row.
func pathID(r *http.Request, resource string) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NotFound(resource, raw)
	}
	return id, nil
}

// NotFound is the router's fallback for paths no route matches, including
// {id} segments that are not digits.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, ErrorResponse{
		Error:   "not_found",
		Message: "no route for " + r.URL.Path,
	})
}

// MethodNotAllowed is the router's fallback for a known path with an
// unregistered method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{
		Error:   "method_not_allowed",
		Message: r.Method + " is not supported on " + r.URL.Path,
	})
}
