package commands

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordindex/pkg/api"
	"github.com/bastiangx/wordindex/pkg/metrics"
	"github.com/bastiangx/wordindex/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

func newHTTPCmd(opts *options) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "http",
		Short: "Serve completions over an HTTP JSON API",
		Long:  `Start the HTTP API with /suggest, /terms, /terms/bulk, /reload, /stats, /health and Prometheus metrics. Shuts down gracefully on SIGINT or SIGTERM.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if addr != "" {
				opts.cfg.HTTP.Addr = addr
			}

			handler, err := opts.newAPIHandler(cmd)
			if err != nil {
				return err
			}

			ln, err := net.Listen("tcp", opts.cfg.HTTP.Addr)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", opts.cfg.HTTP.Addr, err)
			}
			log.Infof("HTTP API listening on %s", ln.Addr())

			err = api.Serve(ctx, handler.NewServer(), ln, opts.cfg.HTTP.ShutdownTimeout())
			log.Info("HTTP API stopped")
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides [http] addr)")
	return cmd
}

// newAPIHandler loads the index behind a Swapper and instruments it.
func (o *options) newAPIHandler(cmd *cobra.Command) (*api.Handler, error) {
	ix, err := o.loadIndex(cmd.Context())
	if err != nil {
		return nil, err
	}
	sw := suggest.NewSwapper(ix, o.cfg.Index.CacheSize)

	var m *metrics.Metrics
	var completer suggest.Completer = sw
	if o.cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m = metrics.New(reg)
		completer = metrics.Instrument(sw, m)
	}
	return api.NewHandler(completer, o.cfg, o.builder(), m), nil
}
