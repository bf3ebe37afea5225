// Package filter narrows a match's event log. Every function returns a new
// slice and leaves its input untouched.
package filter

import (
	"github.com/okian/pitchmap/internal/domain/model"
)

// Predicate selects events.
type Predicate func(model.Event) bool

// Apply returns the events accepted by every predicate, in input order.
func Apply(events []model.Event, preds ...Predicate) []model.Event {
	out := make([]model.Event, 0, len(events))
next:
	for _, e := range events {
		for _, p := range preds {
			if !p(e) {
				continue next
			}
		}
		out = append(out, e)
	}
	return out
}

// OfType accepts events of type t.
func OfType(t model.EventType) Predicate {
	return func(e model.Event) bool { return e.Type == t }
}

// ForTeam accepts events recorded for team.
func ForTeam(team string) Predicate {
	return func(e model.Event) bool { return e.Team == team }
}

// ByPlayer accepts events whose actor has exactly the given full name.
func ByPlayer(name string) Predicate {
	return func(e model.Event) bool { return e.Player.Name == name }
}

// NotSubType rejects events of the given sub-type.
func NotSubType(subType string) Predicate {
	return func(e model.Event) bool { return e.SubType != subType }
}

// Completed accepts events with no outcome recorded.
func Completed() Predicate {
	return func(e model.Event) bool { return e.Completed() }
}

// Before accepts events whose index is strictly below index.
func Before(index int) Predicate {
	return func(e model.Event) bool { return e.Index < index }
}

// Passes is the pass rule shared by every pass view: throw-ins do not count.
func Passes(events []model.Event) []model.Event {
	return Apply(events, OfType(model.TypePass), NotSubType(model.SubTypeThrowIn))
}

// Shots returns every shot in the match.
func Shots(events []model.Event) []model.Event {
	return Apply(events, OfType(model.TypeShot))
}

// Substitutions returns every substitution in the match.
func Substitutions(events []model.Event) []model.Event {
	return Apply(events, OfType(model.TypeSubstitution))
}

// FirstSubstitution returns the team's earliest substitution by index.
func FirstSubstitution(events []model.Event, team string) (model.Event, bool) {
	var (
		first model.Event
		found bool
	)
	for _, e := range events {
		if e.Type != model.TypeSubstitution || e.Team != team {
			continue
		}
		if !found || e.Index < first.Index {
			first, found = e, true
		}
	}
	return first, found
}

// Teams returns the distinct team names in order of first appearance.
func Teams(events []model.Event) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range events {
		if e.Team == "" {
			continue
		}
		if _, ok := seen[e.Team]; ok {
			continue
		}
		seen[e.Team] = struct{}{}
		out = append(out, e.Team)
	}
	return out
}

// Players returns the distinct actor names in order of first appearance.
func Players(events []model.Event) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range events {
		name := e.Player.Name
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
