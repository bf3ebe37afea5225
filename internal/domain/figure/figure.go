// Package figure holds the renderer inputs built by the application service.
package figure

import (
	"github.com/okian/pitchmap/internal/domain/model"
	"github.com/okian/pitchmap/internal/domain/network"
)

// Kind names a figure in logs and metrics.
type Kind string

// Figure kinds.
const (
	KindShotMap     Kind = "shot_map"
	KindPlayerPass  Kind = "player_passes"
	KindPassGrid    Kind = "pass_grid"
	KindPassNetwork Kind = "pass_network"
)

// Shot is one plotted shot. Location is already mirrored for opponents.
type Shot struct {
	Location model.Location `json:"location"`
	Player   string         `json:"player"`
	Team     string         `json:"team"`
	Minute   int            `json:"minute"`
	Own      bool           `json:"own"`
	Goal     bool           `json:"goal"`
}

// ShotMap is every shot of every match a team played, theirs and their
// opponents'.
type ShotMap struct {
	Team  string `json:"team"`
	Shots []Shot `json:"shots"`
}

// Title returns the caption drawn above the pitch.
func (f ShotMap) Title() string {
	return f.Team + " (red) and others (blue) shots"
}

// PlayerPassMap is one player's passes in one match.
type PlayerPassMap struct {
	Player   string        `json:"player"`
	Opponent string        `json:"opponent"`
	Passes   []model.Event `json:"passes"`
}

// Title returns the caption drawn above the pitch.
func (f PlayerPassMap) Title() string {
	return f.Player + " passes against " + f.Opponent
}

// Panel is one player's passes inside a PassGrid.
type Panel struct {
	Player string        `json:"player"`
	Passes []model.Event `json:"passes"`
}

// PassGrid lays out one panel per passing player of a team.
type PassGrid struct {
	Team     string  `json:"team"`
	Opponent string  `json:"opponent"`
	Columns  int     `json:"columns"`
	Panels   []Panel `json:"panels"`
}

// Title returns the caption drawn above the grid.
func (f PassGrid) Title() string {
	return f.Team + " passes against " + f.Opponent
}

// Rows is the number of grid rows actually used.
func (f PassGrid) Rows() int {
	if f.Columns <= 0 || len(f.Panels) == 0 {
		return 0
	}
	return (len(f.Panels) + f.Columns - 1) / f.Columns
}

// PassNetwork is a team's pass network up to its first substitution.
type PassNetwork struct {
	Team     string          `json:"team"`
	Opponent string          `json:"opponent"`
	Network  network.Network `json:"network"`
}

// Title returns the caption drawn above the pitch.
func (f PassNetwork) Title() string {
	return f.Team + " Passing Network against " + f.Opponent
}
