package model

import "time"

// Match is one fixture from the competition listing.
type Match struct {
	ID        int       `json:"match_id"`
	Date      time.Time `json:"match_date"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	HomeScore int       `json:"home_score"`
	AwayScore int       `json:"away_score"`
	Stage     string    `json:"competition_stage,omitempty"`
}

// Involves reports whether team played in the match, home or away.
func (m Match) Involves(team string) bool {
	return m.HomeTeam == team || m.AwayTeam == team
}

// Opponent returns the other side for team, and false when team did not play.
func (m Match) Opponent(team string) (string, bool) {
	switch team {
	case m.HomeTeam:
		return m.AwayTeam, true
	case m.AwayTeam:
		return m.HomeTeam, true
	}
	return "", false
}
