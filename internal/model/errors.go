package model

import "errors"

// Common errors used across the application
var (
	// Grid errors
	ErrOutOfBounds = errors.New("position out of bounds")

	// Placement errors
	ErrInvalidPlacement = errors.New("piece does not fit at that position")
	ErrPieceNotFound    = errors.New("piece not found in batch")
	ErrResolvePending   = errors.New("previous placement has not been resolved")

	// Shape errors
	ErrEmptyShape     = errors.New("shape has no cells")
	ErrDuplicateCells = errors.New("shape has duplicate cells")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionFinished = errors.New("session is finished")
	ErrUnknownVariant  = errors.New("unknown game variant")
	ErrInvalidConfig   = errors.New("invalid session config")

	// Booster errors
	ErrBoosterDisabled   = errors.New("booster is not available in this variant")
	ErrInsufficientCoins = errors.New("not enough coins")

	// Bot errors
	ErrUnknownStrategy = errors.New("unknown bot strategy")
)
