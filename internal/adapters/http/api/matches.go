package api

import (
	"context"
	"net/http"

	"github.com/okian/pitchmap/internal/domain/model"
	"github.com/okian/pitchmap/internal/domain/types"
	"github.com/okian/pitchmap/pkg/logger"
)

// MatchesHandler serves match listings and per-match data as JSON.
type MatchesHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps Dependencies, log logger.Logger) *MatchesHandler {
	return &MatchesHandler{deps: deps, log: log}
}

// HandleList handles GET /matches?team=.
func (h *MatchesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	team, err := requireQuery(r, "team")
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	matches, err := h.deps.Matches(r.Context(), team)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.NewMatchList(team, matches))
}

// HandleShots handles GET /matches/{id}/shots.
func (h *MatchesHandler) HandleShots(w http.ResponseWriter, r *http.Request) {
	h.events(w, r, model.TypeShot, h.deps.Shots)
}

// HandlePasses handles GET /matches/{id}/passes.
func (h *MatchesHandler) HandlePasses(w http.ResponseWriter, r *http.Request) {
	h.events(w, r, model.TypePass, h.deps.Passes)
}

// HandleSubstitutions handles GET /matches/{id}/substitutions.
func (h *MatchesHandler) HandleSubstitutions(w http.ResponseWriter, r *http.Request) {
	h.events(w, r, model.TypeSubstitution, h.deps.Substitutions)
}

// HandleNetwork handles GET /matches/{id}/network?team=.
func (h *MatchesHandler) HandleNetwork(w http.ResponseWriter, r *http.Request) {
	id, err := pathMatchID(r)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	team, err := requireQuery(r, "team")
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	f, err := h.deps.PassNetwork(r.Context(), id, team)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (h *MatchesHandler) events(w http.ResponseWriter, r *http.Request, t model.EventType,
	fetch func(context.Context, int) ([]model.Event, error),
) {
	id, err := pathMatchID(r)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	events, err := fetch(r.Context(), id)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.NewEventList(id, t, events))
}
