package network

import "github.com/okian/pitchmap/internal/domain/model"

// Default display bounds.
const (
	DefaultMaxMarkerSize = 1500.0
	DefaultMaxLineWidth  = 10.0
)

// KeyFunc maps a player reference to the identity used for grouping.
type KeyFunc func(model.PlayerRef) string

// Surname is the default KeyFunc. Two players sharing a surname become one
// node.
func Surname(p model.PlayerRef) string { return p.Surname() }

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithMaxMarkerSize sets the marker size given to the busiest passer.
func WithMaxMarkerSize(size float64) Option {
	return func(a *Aggregator) {
		if size > 0 {
			a.maxMarkerSize = size
		}
	}
}

// WithMaxLineWidth sets the line width given to the busiest pair.
func WithMaxLineWidth(width float64) Option {
	return func(a *Aggregator) {
		if width > 0 {
			a.maxLineWidth = width
		}
	}
}

// WithPlayerKey replaces the surname identity.
func WithPlayerKey(fn KeyFunc) Option {
	return func(a *Aggregator) {
		if fn != nil {
			a.key = fn
		}
	}
}
