package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordindex/internal/cli"
	"github.com/bastiangx/wordindex/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newCliCmd(opts *options) *cobra.Command {
	var (
		limit     int
		minPrefix int
		maxPrefix int
		noFilter  bool
	)

	cmd := &cobra.Command{
		Use:   "cli",
		Short: "Interactive prompt for trying prefixes by hand",
		Long:  `Read prefixes from stdin and print ranked suggestions. Useful for testing and debugging a vocabulary.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			defaults := opts.cfg.CLI
			flags := cmd.Flags()
			if !flags.Changed("limit") {
				limit = defaults.DefaultLimit
			}
			if !flags.Changed("prmin") {
				minPrefix = defaults.DefaultMinLen
			}
			if !flags.Changed("prmax") {
				maxPrefix = defaults.DefaultMaxLen
			}
			if !flags.Changed("no-filter") {
				noFilter = defaults.DefaultNoFilter
			}

			ix, err := opts.loadIndex(ctx)
			if err != nil {
				return err
			}

			log.SetReportTimestamp(false)
			log.Debug("Input info:",
				"minPrefix", minPrefix,
				"maxPrefix", maxPrefix,
				"limit", limit,
				"noFilter", noFilter)

			handler := cli.NewInputHandler(suggest.NewGuarded(ix), cli.Options{
				MinPrefix: minPrefix,
				MaxPrefix: maxPrefix,
				Limit:     limit,
				NoFilter:  noFilter,
			}, cmd.InOrStdin(), cmd.OutOrStdout())
			return handler.Start(ctx)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "number of suggestions to return (default from [cli] config)")
	cmd.Flags().IntVar(&minPrefix, "prmin", 1, "minimum prefix length for suggestions")
	cmd.Flags().IntVar(&maxPrefix, "prmax", 24, "maximum prefix length for suggestions")
	cmd.Flags().BoolVar(&noFilter, "no-filter", false, "disable input filtering, numbers and symbols are looked up too")
	return cmd
}
