package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// NewServer builds an http.Server for the handler using the configured timeouts.
func (h *Handler) NewServer() *http.Server {
	return &http.Server{
		Addr:         h.config.HTTP.Addr,
		Handler:      h.Router(),
		ReadTimeout:  h.config.HTTP.ReadTimeout(),
		WriteTimeout: h.config.HTTP.WriteTimeout(),
	}
}

// Serve runs srv on ln until ctx is done, then shuts it down gracefully within timeout.
func Serve(ctx context.Context, srv *http.Server, ln net.Listener, timeout time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http: %w", err)
		}
		return nil
	})

	return g.Wait()
}
