package service

import (
	"github.com/okian/pitchmap/internal/domain/network"
	"github.com/okian/pitchmap/pkg/logger"
)

// Defaults for the FIFA World Cup 2022 on a StatsBomb pitch.
const (
	DefaultCompetitionID = 43
	DefaultSeasonID      = 106
	DefaultPitchLength   = 120.0
	DefaultPitchWidth    = 80.0
	DefaultGridColumns   = 4
	DefaultGridRows      = 4
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithCompetition sets the competition and season every lookup is scoped to.
func WithCompetition(competitionID, seasonID int) Option {
	return func(s *Service) {
		if competitionID > 0 && seasonID > 0 {
			s.competitionID = competitionID
			s.seasonID = seasonID
		}
	}
}

// WithAggregator replaces the pass network aggregator.
func WithAggregator(a *network.Aggregator) Option {
	return func(s *Service) {
		if a != nil {
			s.aggregator = a
		}
	}
}

// WithPitch sets the pitch size used to mirror opponent shots.
func WithPitch(length, width float64) Option {
	return func(s *Service) {
		if length > 0 && width > 0 {
			s.pitchLength = length
			s.pitchWidth = width
		}
	}
}

// WithGrid sets the pass grid layout. The number of panels is capped at
// columns*rows.
func WithGrid(columns, rows int) Option {
	return func(s *Service) {
		if columns > 0 && rows > 0 {
			s.gridColumns = columns
			s.gridRows = rows
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
