package render

import (
	"errors"
)

// Sentinel errors for rendering.
var (
	ErrNoColumns = errors.New("pass grid needs at least one column")
)
