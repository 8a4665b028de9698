package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordindex/pkg/server"
	"github.com/bastiangx/wordindex/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve completions as msgpack over stdin/stdout",
		Long:  `Start the msgpack IPC server. Requests are read from stdin and answered on stdout, logs go to stderr.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ix, err := opts.loadIndex(ctx)
			if err != nil {
				return err
			}
			sw := suggest.NewSwapper(ix, opts.cfg.Index.CacheSize)

			showStartupInfo(ix.Len())
			srv := server.NewServer(sw, opts.cfg, cmd.InOrStdin(), cmd.OutOrStdout())
			if err := srv.Start(ctx); err != nil {
				return fmt.Errorf("ipc server: %w", err)
			}
			return nil
		},
	}
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(terms int) {
	currentLevel := log.GetLevel()
	if currentLevel > log.InfoLevel {
		return
	}
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("terms: ( %d )", terms)
	log.Info("status: ready")
}
