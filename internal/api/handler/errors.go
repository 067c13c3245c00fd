package handler

import (
	"net/http"

	"github.com/mcoot/blockgame-go/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest    = apierr.CodeInvalidRequest
	CodeInvalidPlacement  = apierr.CodeInvalidPlacement
	CodeOutOfBounds       = apierr.CodeOutOfBounds
	CodePieceNotFound     = apierr.CodePieceNotFound
	CodeResolvePending    = apierr.CodeResolvePending
	CodeSessionNotFound   = apierr.CodeSessionNotFound
	CodeSessionFinished   = apierr.CodeSessionFinished
	CodeUnknownVariant    = apierr.CodeUnknownVariant
	CodeUnknownCatalog    = apierr.CodeUnknownCatalog
	CodeInvalidConfig     = apierr.CodeInvalidConfig
	CodeBoosterDisabled   = apierr.CodeBoosterDisabled
	CodeInsufficientCoins = apierr.CodeInsufficientCoins
	CodeUnknownStrategy   = apierr.CodeUnknownStrategy
	CodeInternalError     = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
