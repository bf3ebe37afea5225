// Package service composes the match locator, the event fetcher and the pass
// aggregator into the operations exposed by the CLI and the HTTP API.
package service

import (
	"context"
	"time"

	"github.com/okian/pitchmap/internal/adapters/provider"
	"github.com/okian/pitchmap/internal/domain/figure"
	"github.com/okian/pitchmap/internal/domain/filter"
	"github.com/okian/pitchmap/internal/domain/model"
	"github.com/okian/pitchmap/internal/domain/network"
	"github.com/okian/pitchmap/pkg/logger"
	"github.com/okian/pitchmap/pkg/metrics"
)

// Service answers match queries. Every call fetches fresh data from the
// source and derives its result from scratch; nothing is cached.
type Service struct {
	source     provider.Source
	aggregator *network.Aggregator

	competitionID int
	seasonID      int
	pitchLength   float64
	pitchWidth    float64
	gridColumns   int
	gridRows      int

	logger logger.Logger
}

// New constructs a Service reading from source.
func New(source provider.Source, opts ...Option) *Service {
	s := &Service{
		source:        source,
		aggregator:    network.NewAggregator(),
		competitionID: DefaultCompetitionID,
		seasonID:      DefaultSeasonID,
		pitchLength:   DefaultPitchLength,
		pitchWidth:    DefaultPitchWidth,
		gridColumns:   DefaultGridColumns,
		gridRows:      DefaultGridRows,
		logger:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GridColumns is the pass grid width in panels.
func (s *Service) GridColumns() int { return s.gridColumns }

// Matches returns the fixtures team played in the configured season, in
// listing order. A team with no fixtures yields an empty slice, not an error.
func (s *Service) Matches(ctx context.Context, team string) ([]model.Match, error) {
	const op = "service.matches"
	if team == "" {
		return nil, model.Errorf(op, model.ErrBadRequest, "team is required")
	}

	all, err := s.source.Matches(ctx, s.competitionID, s.seasonID)
	if err != nil {
		return nil, model.Wrap(op, err)
	}

	out := make([]model.Match, 0, 8)
	for _, m := range all {
		if m.Involves(team) {
			out = append(out, m)
		}
	}
	s.logger.Debug(ctx, "matches located", logger.String("team", team), logger.Int("count", len(out)))
	return out, nil
}

// MatchIDs returns the identifiers of the matches team played.
func (s *Service) MatchIDs(ctx context.Context, team string) ([]int, error) {
	matches, err := s.Matches(ctx, team)
	if err != nil {
		return nil, err
	}
	ids := make([]int, len(matches))
	for i, m := range matches {
		ids[i] = m.ID
	}
	return ids, nil
}

// Shots returns every shot of a match.
func (s *Service) Shots(ctx context.Context, matchID int) ([]model.Event, error) {
	events, err := s.events(ctx, "service.shots", matchID)
	if err != nil {
		return nil, err
	}
	return filter.Shots(events), nil
}

// Passes returns every pass of a match except throw-ins.
func (s *Service) Passes(ctx context.Context, matchID int) ([]model.Event, error) {
	events, err := s.events(ctx, "service.passes", matchID)
	if err != nil {
		return nil, err
	}
	return filter.Passes(events), nil
}

// Substitutions returns every substitution of a match.
func (s *Service) Substitutions(ctx context.Context, matchID int) ([]model.Event, error) {
	events, err := s.events(ctx, "service.substitutions", matchID)
	if err != nil {
		return nil, err
	}
	return filter.Substitutions(events), nil
}

// ShotMap collects the shots of every match team played. The team's shots
// keep their coordinates; everyone else's are mirrored so both attack
// opposite goals on one pitch.
func (s *Service) ShotMap(ctx context.Context, team string) (figure.ShotMap, error) {
	const op = "service.shot_map"
	ids, err := s.MatchIDs(ctx, team)
	if err != nil {
		return figure.ShotMap{}, err
	}

	out := figure.ShotMap{Team: team, Shots: []figure.Shot{}}
	for _, id := range ids {
		shots, err := s.Shots(ctx, id)
		if err != nil {
			return figure.ShotMap{}, model.Wrap(op, err)
		}
		for _, e := range shots {
			if !e.HasLocation {
				return figure.ShotMap{}, model.Errorf(op, model.ErrMalformedRecord, "shot %s has no location", e.ID)
			}
			shot := figure.Shot{
				Location: e.Location,
				Player:   e.Player.Name,
				Team:     e.Team,
				Minute:   e.Minute,
				Own:      e.Team == team,
				Goal:     e.IsGoal(),
			}
			if !shot.Own {
				shot.Location = model.Location{X: s.pitchLength - e.Location.X, Y: s.pitchWidth - e.Location.Y}
			}
			out.Shots = append(out.Shots, shot)
		}
	}
	s.logger.Info(ctx, "shot map built",
		logger.String("team", team),
		logger.Int("matches", len(ids)),
		logger.Int("shots", len(out.Shots)))
	return out, nil
}

// PlayerPasses returns one player's passes in one match. The player is
// matched on their full provider name.
func (s *Service) PlayerPasses(ctx context.Context, matchID int, player string) (figure.PlayerPassMap, error) {
	const op = "service.player_passes"
	if player == "" {
		return figure.PlayerPassMap{}, model.Errorf(op, model.ErrBadRequest, "player is required")
	}
	events, err := s.events(ctx, op, matchID)
	if err != nil {
		return figure.PlayerPassMap{}, err
	}

	own := filter.Apply(events, filter.ByPlayer(player))
	if len(own) == 0 {
		return figure.PlayerPassMap{}, model.Errorf(op, model.ErrNotFound, "player %q did not appear in match %d", player, matchID)
	}
	opponent, _ := opponentOf(events, own[0].Team)

	return figure.PlayerPassMap{
		Player:   player,
		Opponent: opponent,
		Passes:   filter.Apply(filter.Passes(events), filter.ByPlayer(player)),
	}, nil
}

// PassGrid returns one panel per passing player of team, in order of their
// first pass, capped at the grid size.
func (s *Service) PassGrid(ctx context.Context, matchID int, team string) (figure.PassGrid, error) {
	const op = "service.pass_grid"
	events, opponent, err := s.teamEvents(ctx, op, matchID, team)
	if err != nil {
		return figure.PassGrid{}, err
	}

	passes := filter.Apply(filter.Passes(events), filter.ForTeam(team))
	players := filter.Players(passes)
	if limit := s.gridColumns * s.gridRows; len(players) > limit {
		s.logger.Debug(ctx, "pass grid truncated",
			logger.String("team", team), logger.Int("players", len(players)), logger.Int("limit", limit))
		players = players[:limit]
	}

	grid := figure.PassGrid{Team: team, Opponent: opponent, Columns: s.gridColumns, Panels: make([]figure.Panel, 0, len(players))}
	for _, p := range players {
		grid.Panels = append(grid.Panels, figure.Panel{Player: p, Passes: filter.Apply(passes, filter.ByPlayer(p))})
	}
	return grid, nil
}

// PassNetwork aggregates team's completed passes made before its first
// substitution. A team that made no substitution yields ErrNoSubstitution.
func (s *Service) PassNetwork(ctx context.Context, matchID int, team string) (figure.PassNetwork, error) {
	const op = "service.pass_network"
	start := time.Now()

	net, opponent, err := s.passNetwork(ctx, op, matchID, team)
	if err != nil {
		metrics.RecordAggregationError(model.KindName(err))
		return figure.PassNetwork{}, err
	}

	metrics.RecordAggregation(len(net.Nodes), len(net.Edges))
	s.logger.Info(ctx, "pass network aggregated",
		logger.Int("match", matchID),
		logger.String("team", team),
		logger.Int("nodes", len(net.Nodes)),
		logger.Int("edges", len(net.Edges)),
		logger.Duration("elapsed", time.Since(start)))
	return figure.PassNetwork{Team: team, Opponent: opponent, Network: net}, nil
}

func (s *Service) passNetwork(ctx context.Context, op string, matchID int, team string) (network.Network, string, error) {
	events, opponent, err := s.teamEvents(ctx, op, matchID, team)
	if err != nil {
		return network.Network{}, "", err
	}

	sub, ok := filter.FirstSubstitution(events, team)
	if !ok {
		return network.Network{}, "", model.Wrap(op, model.ErrNoSubstitution)
	}

	passes := filter.Apply(filter.Passes(events), filter.ForTeam(team), filter.Before(sub.Index), filter.Completed())
	net, err := s.aggregator.Aggregate(passes)
	if err != nil {
		return network.Network{}, "", model.Wrap(op, err)
	}
	return net, opponent, nil
}

// events fetches a match's full event log.
func (s *Service) events(ctx context.Context, op string, matchID int) ([]model.Event, error) {
	if matchID <= 0 {
		return nil, model.Errorf(op, model.ErrBadRequest, "match id must be positive, got %d", matchID)
	}
	events, err := s.source.Events(ctx, matchID)
	if err != nil {
		s.logger.Warn(ctx, "event fetch failed", logger.Int("match", matchID), logger.Error(err))
		return nil, model.Wrap(op, err)
	}
	return events, nil
}

// teamEvents fetches a match and checks that team took part in it.
func (s *Service) teamEvents(ctx context.Context, op string, matchID int, team string) ([]model.Event, string, error) {
	if team == "" {
		return nil, "", model.Errorf(op, model.ErrBadRequest, "team is required")
	}
	events, err := s.events(ctx, op, matchID)
	if err != nil {
		return nil, "", err
	}
	opponent, ok := opponentOf(events, team)
	if !ok {
		return nil, "", model.Errorf(op, model.ErrNotFound, "team %q did not play in match %d", team, matchID)
	}
	return events, opponent, nil
}

// opponentOf returns the first other team in the log, and whether team
// appears at all.
func opponentOf(events []model.Event, team string) (string, bool) {
	var (
		opponent string
		found    bool
	)
	for _, t := range filter.Teams(events) {
		if t == team {
			found = true
		} else if opponent == "" {
			opponent = t
		}
	}
	return opponent, found
}
