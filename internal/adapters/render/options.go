package render

import (
	"github.com/okian/pitchmap/pkg/logger"
)

// Pitch and canvas defaults, in StatsBomb yards and pixels per yard.
const (
	DefaultPitchLength = 120.0
	DefaultPitchWidth  = 80.0
	DefaultScale       = 6
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithPitch sets the pitch dimensions in provider units. Non-positive values
// are ignored.
func WithPitch(length, width float64) Option {
	return func(r *Renderer) {
		if length > 0 && width > 0 {
			r.length, r.width = length, width
		}
	}
}

// WithScale sets how many pixels a provider unit spans.
func WithScale(pixelsPerUnit int) Option {
	return func(r *Renderer) {
		if pixelsPerUnit > 0 {
			r.scale = pixelsPerUnit
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}
