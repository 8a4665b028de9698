package api

import (
	"net/http"

	"github.com/bastiangx/wordindex/pkg/suggest"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status"`
	Terms  int    `json:"terms"`
}

// StatsResponse represents the stats response
type StatsResponse struct {
	Index    suggest.Stats  `json:"index"`
	Snapshot uint64         `json:"snapshot,omitempty"`
	Cache    map[string]int `json:"cache,omitempty"`
}

// HandleHealth handles GET requests to the health check endpoint
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "healthy",
		Terms:  h.completer.Len(),
	})
}

// HandleStats reports index counters, plus snapshot and cache details when reloadable.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	resp := StatsResponse{Index: h.completer.Stats()}
	if sw := h.swapper(); sw != nil {
		resp.Snapshot = sw.Snapshot().Version
		resp.Cache = sw.CacheStats()
	}
	writeJSON(w, http.StatusOK, resp)
}
