// Package model contains domain models passed between layers.
package model

import (
	"strings"

	"github.com/google/uuid"
)

// EventType is the provider's event type name.
type EventType string

// Event types used by this system. The provider emits many more; they are
// kept verbatim and simply never matched.
const (
	TypePass         EventType = "Pass"
	TypeShot         EventType = "Shot"
	TypeSubstitution EventType = "Substitution"
)

// Sub-types and outcomes referenced by the filters.
const (
	SubTypeThrowIn = "Throw-in"
	OutcomeGoal    = "Goal"
)

// Location is a point on the pitch in provider coordinates (yards, origin at
// the top-left corner, attacking left to right).
type Location struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PlayerRef identifies a player as the provider names them.
type PlayerRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Surname returns the last whitespace-separated token of the player's name,
// or "" when the name is blank.
func (p PlayerRef) Surname() string {
	fields := strings.Fields(p.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// IsZero reports whether the reference is absent.
func (p PlayerRef) IsZero() bool {
	return p.ID == 0 && strings.TrimSpace(p.Name) == ""
}

// Event is one on-pitch occurrence. Events are immutable once fetched.
type Event struct {
	ID     uuid.UUID `json:"id"`
	Index  int       `json:"index"` // order within the match, 1-based
	Period int       `json:"period"`
	Minute int       `json:"minute"`
	Second int       `json:"second"`

	Type   EventType `json:"type"`
	Team   string    `json:"team"`
	Player PlayerRef `json:"player"`

	// Location is the origin; HasLocation is false for events without one
	// (e.g. Starting XI).
	Location    Location `json:"location"`
	HasLocation bool     `json:"has_location"`

	// End is the destination of a pass or shot.
	End    Location `json:"end"`
	HasEnd bool     `json:"has_end"`

	// Outcome is empty when the provider sent none. For passes that means
	// the pass was completed.
	Outcome string `json:"outcome,omitempty"`
	SubType string `json:"sub_type,omitempty"`

	Recipient   PlayerRef `json:"recipient,omitzero"`
	Replacement PlayerRef `json:"replacement,omitzero"`
}

// IsGoal reports whether a shot ended in a goal.
func (e Event) IsGoal() bool {
	return e.Type == TypeShot && e.Outcome == OutcomeGoal
}

// Completed reports whether the event has no outcome recorded.
func (e Event) Completed() bool {
	return e.Outcome == ""
}
