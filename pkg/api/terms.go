package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/bastiangx/wordindex/pkg/suggest"
)

// InsertResponse is the body returned by POST /terms.
type InsertResponse struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
	Terms int     `json:"terms"`
}

// BulkRequest is the body accepted by POST /terms/bulk.
type BulkRequest struct {
	Terms []suggest.Entry `json:"terms"`
}

// HandleInsert handles POST /terms with a {"term", "score"} body.
func (h *Handler) HandleInsert(w http.ResponseWriter, r *http.Request) {
	var entry suggest.Entry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		h.logger.Errorf("Decoding body failed: %v", err)
		WriteJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if entry.Score == 0 {
		entry.Score = h.config.Index.DefaultScore
	}

	if err := h.completer.Insert(entry.Term, entry.Score); err != nil {
		h.logger.Debug("Insert rejected", "term", entry.Term, "err", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, InsertResponse{
		Term:  suggest.Normalize(entry.Term),
		Score: entry.Score,
		Terms: h.completer.Len(),
	})
}

// HandleBulk handles POST /terms/bulk. Invalid terms are counted, never fatal.
func (h *Handler) HandleBulk(w http.ResponseWriter, r *http.Request) {
	var req BulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Errorf("Decoding body failed: %v", err)
		WriteJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(req.Terms) == 0 {
		WriteJSONError(w, http.StatusBadRequest, "no terms provided")
		return
	}
	if max := h.config.Index.MaxBatch; len(req.Terms) > max {
		writeError(w, fmt.Errorf("%w: %d terms, maximum is %d", ErrBatchTooLarge, len(req.Terms), max))
		return
	}

	for i := range req.Terms {
		if req.Terms[i].Score == 0 {
			req.Terms[i].Score = h.config.Index.DefaultScore
		}
	}

	res := h.completer.BulkLoad(req.Terms)
	h.logger.Debugf("Bulk load of %d terms: %+v", len(req.Terms), res)
	writeJSON(w, http.StatusOK, res)
}
