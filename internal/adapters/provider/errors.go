package provider

import (
	"errors"
)

// Sentinel causes wrapped under the model error kinds.
var (
	ErrBadStatus      = errors.New("unexpected status")
	ErrInvalidID      = errors.New("identifier must be positive")
	ErrMissingSection = errors.New("event is missing its type section")
)
