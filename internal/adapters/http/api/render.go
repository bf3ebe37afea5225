package api

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/okian/pitchmap/pkg/logger"
)

const svgContentType = "image/svg+xml"

// RenderHandler serves figures as SVG.
type RenderHandler struct {
	deps     Dependencies
	renderer Renderer
	log      logger.Logger
}

// NewRenderHandler creates a new render handler.
func NewRenderHandler(deps Dependencies, renderer Renderer, log logger.Logger) *RenderHandler {
	return &RenderHandler{deps: deps, renderer: renderer, log: log}
}

// HandleShotMap handles GET /render/shotmap?team=.
func (h *RenderHandler) HandleShotMap(w http.ResponseWriter, r *http.Request) {
	team, err := requireQuery(r, "team")
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	f, err := h.deps.ShotMap(r.Context(), team)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	h.draw(w, r, func(ctx context.Context, out io.Writer) error { return h.renderer.ShotMap(ctx, out, f) })
}

// HandlePlayerPasses handles GET /render/passes?match=&player=.
func (h *RenderHandler) HandlePlayerPasses(w http.ResponseWriter, r *http.Request) {
	id, err := queryMatchID(r)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	player, err := requireQuery(r, "player")
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	f, err := h.deps.PlayerPasses(r.Context(), id, player)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	h.draw(w, r, func(ctx context.Context, out io.Writer) error { return h.renderer.PlayerPasses(ctx, out, f) })
}

// HandlePassGrid handles GET /render/grid?match=&team=.
func (h *RenderHandler) HandlePassGrid(w http.ResponseWriter, r *http.Request) {
	id, team, err := matchAndTeam(r)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	f, err := h.deps.PassGrid(r.Context(), id, team)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	h.draw(w, r, func(ctx context.Context, out io.Writer) error { return h.renderer.PassGrid(ctx, out, f) })
}

// HandlePassNetwork handles GET /render/network?match=&team=.
func (h *RenderHandler) HandlePassNetwork(w http.ResponseWriter, r *http.Request) {
	id, team, err := matchAndTeam(r)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	f, err := h.deps.PassNetwork(r.Context(), id, team)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	h.draw(w, r, func(ctx context.Context, out io.Writer) error { return h.renderer.PassNetwork(ctx, out, f) })
}

// draw renders into a buffer first so a failure can still be reported as JSON.
func (h *RenderHandler) draw(w http.ResponseWriter, r *http.Request, fn func(context.Context, io.Writer) error) {
	var buf bytes.Buffer
	if err := fn(r.Context(), &buf); err != nil {
		writeServiceError(r.Context(), h.log, w, err)
		return
	}
	w.Header().Set("Content-Type", svgContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func matchAndTeam(r *http.Request) (int, string, error) {
	id, err := queryMatchID(r)
	if err != nil {
		return 0, "", err
	}
	team, err := requireQuery(r, "team")
	if err != nil {
		return 0, "", err
	}
	return id, team, nil
}
