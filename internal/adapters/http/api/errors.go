package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrMissingParam = errors.New("missing query parameter")
	ErrInvalidID    = errors.New("invalid match id")
)
