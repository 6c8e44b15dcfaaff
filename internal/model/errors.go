package model

import "errors"

// Common errors used across the application
var (
	// Board errors
	ErrInvalidDimensions = errors.New("board dimensions must be between 5 and 30")
	ErrInvalidDifficulty = errors.New("unknown difficulty")
	ErrOutOfBounds       = errors.New("position is outside the board")
	ErrInvalidLayout     = errors.New("invalid mine layout")

	// Game errors
	ErrGameNotStarted = errors.New("game not started")
	ErrGameNotFound   = errors.New("game not found")
)
