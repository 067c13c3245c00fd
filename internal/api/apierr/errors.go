package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/blockgame-go/internal/model"
	"github.com/mcoot/blockgame-go/internal/services/shapes"
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
	CodeInvalidPlacement  = "INVALID_PLACEMENT"
	CodeOutOfBounds       = "OUT_OF_BOUNDS"
	CodePieceNotFound     = "PIECE_NOT_FOUND"
	CodeResolvePending    = "RESOLVE_PENDING"
	CodeSessionNotFound   = "SESSION_NOT_FOUND"
	CodeSessionFinished   = "SESSION_FINISHED"
	CodeUnknownVariant    = "UNKNOWN_VARIANT"
	CodeUnknownCatalog    = "UNKNOWN_CATALOG"
	CodeInvalidConfig     = "INVALID_CONFIG"
	CodeBoosterDisabled   = "BOOSTER_DISABLED"
	CodeInsufficientCoins = "INSUFFICIENT_COINS"
	CodeUnknownStrategy   = "UNKNOWN_STRATEGY"
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

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Config errors can wrap a catalog or variant error, so those go first
	switch {
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Session not found"}}
	case errors.Is(err, model.ErrSessionFinished):
		return &httpError{http.StatusConflict, APIError{CodeSessionFinished, "Session is finished"}}
	case errors.Is(err, model.ErrPieceNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePieceNotFound, "Piece is not in the current batch"}}
	case errors.Is(err, model.ErrResolvePending):
		return &httpError{http.StatusConflict, APIError{CodeResolvePending, "Previous placement has not been resolved"}}
	case errors.Is(err, model.ErrInvalidPlacement):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeInvalidPlacement, "Piece does not fit at that position"}}
	case errors.Is(err, model.ErrOutOfBounds):
		return &httpError{http.StatusBadRequest, APIError{CodeOutOfBounds, "Position is outside the grid"}}
	case errors.Is(err, model.ErrUnknownVariant):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownVariant, err.Error()}}
	case errors.Is(err, shapes.ErrUnknownCatalog):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownCatalog, err.Error()}}
	case errors.Is(err, model.ErrInvalidConfig):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidConfig, err.Error()}}
	case errors.Is(err, model.ErrBoosterDisabled):
		return &httpError{http.StatusConflict, APIError{CodeBoosterDisabled, "Booster is not available in this variant"}}
	case errors.Is(err, model.ErrInsufficientCoins):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientCoins, err.Error()}}
	case errors.Is(err, model.ErrUnknownStrategy):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownStrategy, err.Error()}}

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
