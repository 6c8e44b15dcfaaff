package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/minesweeper/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeInvalidDimensions = "INVALID_DIMENSIONS"
	CodeInvalidDifficulty = "INVALID_DIFFICULTY"
	CodeOutOfBounds       = "OUT_OF_BOUNDS"
	CodeGameNotStarted    = "GAME_NOT_STARTED"
	CodeInternalError     = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrInvalidDimensions), errors.Is(err, model.ErrInvalidLayout):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDimensions, "Width and height must be between 5 and 30"}}
	case errors.Is(err, model.ErrInvalidDifficulty):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDifficulty, "Difficulty must be easy, medium, hard or expert"}}
	case errors.Is(err, model.ErrOutOfBounds):
		return &httpError{http.StatusBadRequest, APIError{CodeOutOfBounds, "Position is outside the board"}}
	case errors.Is(err, model.ErrGameNotStarted), errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusBadRequest, APIError{CodeGameNotStarted, "Game not started"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
