package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/bastiangx/wordindex/internal/utils"
	"github.com/bastiangx/wordindex/pkg/suggest"
)

// SuggestResponse is the body returned by GET /suggest.
type SuggestResponse struct {
	Prefix      string               `json:"prefix"`
	Suggestions []suggest.Suggestion `json:"suggestions"`
	Count       int                  `json:"count"`
	TookMicros  int64                `json:"took_us"`
}

// HandleSuggest handles GET /suggest?prefix=&limit=
// A missing prefix lists the best terms overall.
func (h *Handler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	prefix := query.Get("prefix")
	srv := h.config.Server

	limit := h.config.Index.DefaultLimit
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", raw))
			return
		}
		limit = n
	}
	if limit > srv.MaxLimit {
		limit = srv.MaxLimit
	}

	if len(prefix) < srv.MinPrefix {
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("prefix must be at least %d bytes", srv.MinPrefix))
		return
	}
	if len(prefix) > srv.MaxPrefix {
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("prefix exceeds maximum length of %d bytes", srv.MaxPrefix))
		return
	}

	start := time.Now()
	results := []suggest.Suggestion{}
	if srv.EnableFilter && prefix != "" && !utils.IsValidInput(prefix) {
		h.logger.Debug("Prefix filtered out", "prefix", prefix)
	} else {
		results = h.completer.SuggestScored(prefix, limit)
	}

	writeJSON(w, http.StatusOK, SuggestResponse{
		Prefix:      prefix,
		Suggestions: results,
		Count:       len(results),
		TookMicros:  time.Since(start).Microseconds(),
	})
}
