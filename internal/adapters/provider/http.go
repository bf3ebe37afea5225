package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/pitchmap/internal/domain/model"
	"github.com/okian/pitchmap/pkg/logger"
	"github.com/okian/pitchmap/pkg/metrics"
)

const sourceHTTP = "http"

// HTTPSource fetches open-data JSON over HTTP. It keeps no state between
// calls and is safe for concurrent use.
type HTTPSource struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	maxBody int64
	log     logger.Logger
}

// NewHTTPSource builds an HTTPSource. Without options it reads the public
// StatsBomb repository.
func NewHTTPSource(opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
		maxBody: DefaultMaxBodyBytes,
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: s.timeout}
	}
	return s
}

// Matches implements Source.
func (s *HTTPSource) Matches(ctx context.Context, competitionID, seasonID int) ([]model.Match, error) {
	const op = "provider.http.matches"
	if competitionID <= 0 || seasonID <= 0 {
		return nil, model.WrapKind(op, model.ErrBadRequest, ErrInvalidID)
	}

	raw, err := s.get(ctx, EndpointMatches, matchesPath(competitionID, seasonID))
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
func (s *HTTPSource) Events(ctx context.Context, matchID int) ([]model.Event, error) {
	const op = "provider.http.events"
	if matchID <= 0 {
		return nil, model.WrapKind(op, model.ErrBadRequest, ErrInvalidID)
	}

	raw, err := s.get(ctx, EndpointEvents, eventsPath(matchID))
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

// get performs one GET without retries and returns the body of a 2xx reply.
func (s *HTTPSource) get(ctx context.Context, endpoint, path string) ([]byte, error) {
	url := s.baseURL + "/" + path
	start := time.Now()
	outcome := "error"
	defer func() {
		metrics.RecordUpstreamRequest(sourceHTTP, endpoint, outcome)
		metrics.RecordUpstreamLatency(sourceHTTP, endpoint, float64(time.Since(start).Milliseconds()))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, model.WrapKind("build request", model.ErrBadRequest, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Warn(ctx, "provider request failed", logger.String("url", url), logger.Error(err))
		return nil, model.WrapKind("send request", model.ErrUpstreamUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		outcome = "not_found"
		s.log.Debug(ctx, "provider resource not found", logger.String("url", url))
		return nil, model.Errorf(endpoint, model.ErrNotFound, "%s", path)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		outcome = "bad_status"
		s.log.Warn(ctx, "provider returned non-success status",
			logger.String("url", url), logger.Int("status", resp.StatusCode))
		return nil, model.WrapKind(endpoint, model.ErrUpstreamUnavailable,
			fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBody))
	if err != nil {
		return nil, model.WrapKind("read response body", model.ErrUpstreamUnavailable, err)
	}
	outcome = "ok"
	s.log.Debug(ctx, "provider request done",
		logger.String("url", url),
		logger.Int("bytes", len(raw)),
		logger.Duration("elapsed", time.Since(start)))
	return raw, nil
}
