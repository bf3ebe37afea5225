// Package types contains the JSON shapes shared by the HTTP API and the CLI.
package types

import (
	"github.com/okian/pitchmap/internal/domain/model"
)

const dateLayout = "2006-01-02"

// MatchSummary is one fixture as listed to callers.
type MatchSummary struct {
	MatchID   int    `json:"match_id"`
	Date      string `json:"match_date"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
	Stage     string `json:"competition_stage,omitempty"`
}

// NewMatchSummary converts a Match.
func NewMatchSummary(m model.Match) MatchSummary {
	s := MatchSummary{
		MatchID:   m.ID,
		HomeTeam:  m.HomeTeam,
		AwayTeam:  m.AwayTeam,
		HomeScore: m.HomeScore,
		AwayScore: m.AwayScore,
		Stage:     m.Stage,
	}
	if !m.Date.IsZero() {
		s.Date = m.Date.Format(dateLayout)
	}
	return s
}

// MatchList is a team's fixtures in listing order.
type MatchList struct {
	Team    string         `json:"team"`
	Count   int            `json:"count"`
	Matches []MatchSummary `json:"matches"`
}

// NewMatchList converts matches, always yielding a non-nil list.
func NewMatchList(team string, matches []model.Match) MatchList {
	out := MatchList{Team: team, Count: len(matches), Matches: make([]MatchSummary, 0, len(matches))}
	for _, m := range matches {
		out.Matches = append(out.Matches, NewMatchSummary(m))
	}
	return out
}

// EventList is a filtered slice of one match's event log.
type EventList struct {
	MatchID int           `json:"match_id"`
	Type    string        `json:"type"`
	Count   int           `json:"count"`
	Events  []model.Event `json:"events"`
}

// NewEventList wraps events, always yielding a non-nil list.
func NewEventList(matchID int, t model.EventType, events []model.Event) EventList {
	if events == nil {
		events = []model.Event{}
	}
	return EventList{MatchID: matchID, Type: string(t), Count: len(events), Events: events}
}
