// Package provider reads match listings and event logs in the StatsBomb
// open-data layout, either over HTTP or from a local checkout.
package provider

import (
	"context"
	"strconv"

	"github.com/okian/pitchmap/internal/domain/model"
)

// DefaultBaseURL is the raw root of the StatsBomb open-data repository.
const DefaultBaseURL = "https://raw.githubusercontent.com/statsbomb/open-data/master/data"

// Endpoint names used in logs and metrics.
const (
	EndpointMatches = "matches"
	EndpointEvents  = "events"
)

// Source is the remote event-data query capability.
type Source interface {
	// Matches lists every match of a competition season in provider order.
	Matches(ctx context.Context, competitionID, seasonID int) ([]model.Match, error)
	// Events returns the full event log of one match ordered by index.
	Events(ctx context.Context, matchID int) ([]model.Event, error)
}

func matchesPath(competitionID, seasonID int) string {
	return "matches/" + strconv.Itoa(competitionID) + "/" + strconv.Itoa(seasonID) + ".json"
}

func eventsPath(matchID int) string {
	return "events/" + strconv.Itoa(matchID) + ".json"
}
