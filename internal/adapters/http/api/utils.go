package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/pitchmap/internal/domain/model"
)

// requireQuery returns a trimmed, non-empty query parameter.
func requireQuery(r *http.Request, name string) (string, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return "", model.WrapKind(name, model.ErrBadRequest, ErrMissingParam)
	}
	return v, nil
}

// parseMatchID parses a positive match identifier.
func parseMatchID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, model.Errorf("match", model.ErrBadRequest, "%w: %q", ErrInvalidID, raw)
	}
	return id, nil
}

// pathMatchID reads the {id} path segment.
func pathMatchID(r *http.Request) (int, error) {
	return parseMatchID(r.PathValue("id"))
}

// queryMatchID reads the match query parameter.
func queryMatchID(r *http.Request) (int, error) {
	raw, err := requireQuery(r, "match")
	if err != nil {
		return 0, err
	}
	return parseMatchID(raw)
}
