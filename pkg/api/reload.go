package api

import (
	"net/http"

	"github.com/bastiangx/wordindex/pkg/suggest"
)

// ReloadResponse is the body returned by POST /reload.
type ReloadResponse struct {
	Snapshot uint64             `json:"snapshot"`
	Terms    int                `json:"terms"`
	Result   suggest.BulkResult `json:"result"`
}

type observer interface {
	Observe(res suggest.BulkResult)
}

// HandleReload rebuilds the index from the configured vocabulary while readers keep
// using the current snapshot.
func (h *Handler) HandleReload(w http.ResponseWriter, r *http.Request) {
	sw := h.swapper()
	if sw == nil {
		WriteJSONError(w, http.StatusNotFound, "index does not support reload")
		return
	}
	if h.build == nil {
		writeError(w, ErrNoVocabulary)
		return
	}

	res, err := sw.Rebuild(r.Context(), h.build)
	if err != nil {
		h.logger.Errorf("Reload failed: %v", err)
		writeError(w, err)
		return
	}
	if o, ok := h.completer.(observer); ok {
		o.Observe(res)
	}

	snap := sw.Snapshot()
	h.logger.Infof("Reloaded vocabulary into snapshot %d (%d terms)", snap.Version, snap.Index().Len())
	writeJSON(w, http.StatusOK, ReloadResponse{
		Snapshot: snap.Version,
		Terms:    snap.Index().Len(),
		Result:   res,
	})
}
