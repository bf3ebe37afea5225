package provider

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/pitchmap/internal/domain/model"
	"github.com/okian/pitchmap/pkg/logger"
	"github.com/okian/pitchmap/pkg/metrics"
)

const sourceDir = "dir"

// DirSource reads the open-data layout from a local directory, typically the
// data/ folder of a checkout of the open-data repository.
type DirSource struct {
	root string
	log  logger.Logger
}

// NewDirSource returns a DirSource rooted at root.
func NewDirSource(root string, opts ...DirOption) *DirSource {
	s := &DirSource{root: root, log: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Matches implements Source.
func (s *DirSource) Matches(ctx context.Context, competitionID, seasonID int) ([]model.Match, error) {
	const op = "provider.dir.matches"
	if competitionID <= 0 || seasonID <= 0 {
		return nil, model.WrapKind(op, model.ErrBadRequest, ErrInvalidID)
	}

	raw, err := s.read(ctx, EndpointMatches, matchesPath(competitionID, seasonID))
	if err != nil {
		return nil, model.Wrap(op, err)
	}
	out, err := decodeMatches(raw)
	if err != nil {
		metrics.RecordMalformedRecord(EndpointMatches)
		return nil, model.WrapKind(op, model.ErrMalformedRecord, err)
	}
	return out, nil
}

// Events implements Source.
func (s *DirSource) Events(ctx context.Context, matchID int) ([]model.Event, error) {
	const op = "provider.dir.events"
	if matchID <= 0 {
		return nil, model.WrapKind(op, model.ErrBadRequest, ErrInvalidID)
	}

	raw, err := s.read(ctx, EndpointEvents, eventsPath(matchID))
	if err != nil {
		return nil, model.Wrap(op, err)
	}
	out, err := decodeEvents(raw)
	if err != nil {
		metrics.RecordMalformedRecord(EndpointEvents)
		return nil, model.WrapKind(op, model.ErrMalformedRecord, err)
	}
	metrics.RecordEventsFetched(len(out))
	return out, nil
}

func (s *DirSource) read(ctx context.Context, endpoint, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, model.WrapKind(endpoint, model.ErrUpstreamUnavailable, err)
	}

	start := time.Now()
	full := filepath.Join(s.root, filepath.FromSlash(path))
	raw, err := os.ReadFile(full)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		metrics.RecordUpstreamRequest(sourceDir, endpoint, "not_found")
		s.log.Debug(ctx, "data file not found", logger.String("path", full))
		return nil, model.Errorf(endpoint, model.ErrNotFound, "%s", path)
	case err != nil:
		metrics.RecordUpstreamRequest(sourceDir, endpoint, "error")
		s.log.Warn(ctx, "data file unreadable", logger.String("path", full), logger.Error(err))
		return nil, model.WrapKind(endpoint, model.ErrUpstreamUnavailable, err)
	}

	metrics.RecordUpstreamRequest(sourceDir, endpoint, "ok")
	metrics.RecordUpstreamLatency(sourceDir, endpoint, float64(time.Since(start).Milliseconds()))
	return raw, nil
}
