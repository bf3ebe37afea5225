package api

import (
	"net/http"
	"runtime"

	"github.com/okian/pitchmap/pkg/metrics"
)

// StatsHandler handles stats requests.
type StatsHandler struct{}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler() *StatsHandler {
	return &StatsHandler{}
}

// HandleStats handles GET /stats with a flat JSON view of the metrics.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	metrics.UpdateSystemMemoryUsage(mem.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	snapshot, err := metrics.Snapshot()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "metrics", err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}
