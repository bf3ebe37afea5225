// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/okian/pitchmap/internal/domain/figure"
	"github.com/okian/pitchmap/internal/domain/model"
	"github.com/okian/pitchmap/pkg/logger"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // shared encoder config

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Matches(ctx context.Context, team string) ([]model.Match, error)
	Shots(ctx context.Context, matchID int) ([]model.Event, error)
	Passes(ctx context.Context, matchID int) ([]model.Event, error)
	Substitutions(ctx context.Context, matchID int) ([]model.Event, error)

	ShotMap(ctx context.Context, team string) (figure.ShotMap, error)
	PlayerPasses(ctx context.Context, matchID int, player string) (figure.PlayerPassMap, error)
	PassGrid(ctx context.Context, matchID int, team string) (figure.PassGrid, error)
	PassNetwork(ctx context.Context, matchID int, team string) (figure.PassNetwork, error)
}

// Renderer draws figures.
type Renderer interface {
	ShotMap(ctx context.Context, w io.Writer, f figure.ShotMap) error
	PlayerPasses(ctx context.Context, w io.Writer, f figure.PlayerPassMap) error
	PassGrid(ctx context.Context, w io.Writer, f figure.PassGrid) error
	PassNetwork(ctx context.Context, w io.Writer, f figure.PassNetwork) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	matchesHandler *MatchesHandler
	renderHandler  *RenderHandler
	log            logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, renderer Renderer, log logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(),
		matchesHandler: NewMatchesHandler(deps, log),
		renderHandler:  NewRenderHandler(deps, renderer, log),
		log:            log,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	route := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.Handle(pattern, RequestIDMiddleware(MetricsMiddleware(h, endpoint), s.log))
	}

	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	route("GET /stats", "stats", s.statsHandler.HandleStats)

	route("GET /matches", "matches", s.matchesHandler.HandleList)
	route("GET /matches/{id}/shots", "match_shots", s.matchesHandler.HandleShots)
	route("GET /matches/{id}/passes", "match_passes", s.matchesHandler.HandlePasses)
	route("GET /matches/{id}/substitutions", "match_substitutions", s.matchesHandler.HandleSubstitutions)
	route("GET /matches/{id}/network", "match_network", s.matchesHandler.HandleNetwork)

	route("GET /render/shotmap", "render_shotmap", s.renderHandler.HandleShotMap)
	route("GET /render/passes", "render_passes", s.renderHandler.HandlePlayerPasses)
	route("GET /render/grid", "render_grid", s.renderHandler.HandlePassGrid)
	route("GET /render/network", "render_network", s.renderHandler.HandlePassNetwork)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps an error kind to its status code.
func writeServiceError(ctx context.Context, log logger.Logger, w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError && !errors.Is(err, model.ErrUpstreamUnavailable) {
		log.Error(ctx, "request failed", logger.Error(err))
	} else {
		log.Debug(ctx, "request rejected", logger.Int("status", status), logger.Error(err))
	}
	writeError(w, status, model.KindName(err), err)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrPrecondition):
		return http.StatusConflict
	case errors.Is(err, model.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrMalformedRecord), errors.Is(err, model.ErrUpstreamUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
