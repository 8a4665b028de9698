package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API routes with the given router
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/suggest", h.HandleSuggest).Methods(http.MethodGet)

	router.HandleFunc("/terms", h.HandleInsert).Methods(http.MethodPost)
	router.HandleFunc("/terms/bulk", h.HandleBulk).Methods(http.MethodPost)
	router.HandleFunc("/reload", h.HandleReload).Methods(http.MethodPost)

	router.HandleFunc("/stats", h.HandleStats).Methods(http.MethodGet)
	router.HandleFunc("/health", h.HandleHealth).Methods(http.MethodGet)

	if h.metrics != nil && h.config.Metrics.Enabled {
		router.Handle(h.config.Metrics.Path, h.metrics.Handler()).Methods(http.MethodGet)
	}
}

// Router returns a router with every route and middleware in place.
func (h *Handler) Router() *mux.Router {
	router := mux.NewRouter()
	h.RegisterRoutes(router)

	router.Use(h.requestLoggerMiddleware)
	if h.metrics != nil {
		router.Use(h.metrics.Middleware)
	}

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.logger.Warnf("No route found for %s %s", r.Method, r.URL.Path)
		WriteJSONError(w, http.StatusNotFound, "no route for "+r.URL.Path)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, http.StatusMethodNotAllowed, r.Method+" not allowed on "+r.URL.Path)
	})
	return router
}
