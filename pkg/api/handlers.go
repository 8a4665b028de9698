// Package api serves the completion index over HTTP with JSON bodies.
package api

import (
	"github.com/bastiangx/wordindex/internal/logger"
	"github.com/bastiangx/wordindex/pkg/config"
	"github.com/bastiangx/wordindex/pkg/metrics"
	"github.com/bastiangx/wordindex/pkg/suggest"
	"github.com/charmbracelet/log"
)

// Handler provides HTTP handlers for the completion API
type Handler struct {
	completer suggest.Completer
	config    *config.Config
	build     suggest.BuildFunc
	metrics   *metrics.Metrics
	logger    *log.Logger
}

// NewHandler creates a new API handler. build is used by /reload and may be nil when
// no vocabulary is configured. m may be nil to serve without metrics.
func NewHandler(completer suggest.Completer, cfg *config.Config, build suggest.BuildFunc, m *metrics.Metrics) *Handler {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Handler{
		completer: completer,
		config:    cfg,
		build:     build,
		metrics:   m,
		logger:    logger.New("http"),
	}
}

type unwrapper interface {
	Unwrap() suggest.Completer
}

// swapper finds the Swapper behind any wrapping Completers.
func (h *Handler) swapper() *suggest.Swapper {
	c := h.completer
	for c != nil {
		if s, ok := c.(*suggest.Swapper); ok {
			return s
		}
		u, ok := c.(unwrapper)
		if !ok {
			return nil
		}
		c = u.Unwrap()
	}
	return nil
}
