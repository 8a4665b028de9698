package commands

import (
	"fmt"

	"github.com/bastiangx/wordindex/pkg/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(opts *options) *cobra.Command {
	var (
		maxLimit     int
		minPrefix    int
		maxPrefix    int
		enableFilter bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show config settings, or change the [server] values",
		Long:  `Show the active config file and its values. Any of the flags below updates the [server] section and saves the file.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			var (
				ml, minp, maxp *int
				filter         *bool
			)
			if flags.Changed("max-limit") {
				ml = &maxLimit
			}
			if flags.Changed("min-prefix") {
				minp = &minPrefix
			}
			if flags.Changed("max-prefix") {
				maxp = &maxPrefix
			}
			if flags.Changed("enable-filter") {
				filter = &enableFilter
			}

			if ml != nil || minp != nil || maxp != nil || filter != nil {
				if opts.cfgPath == "" {
					return fmt.Errorf("no config file to update")
				}
				if err := opts.cfg.Update(opts.cfgPath, ml, minp, maxp, filter); err != nil {
					return fmt.Errorf("update config: %w", err)
				}
			}

			printConfig(cmd, opts.cfg, config.GetActiveConfigPath(opts.cfgPath))
			return nil
		},
	}

	cmd.Flags().IntVar(&maxLimit, "max-limit", 0, "maximum suggestions per request")
	cmd.Flags().IntVar(&minPrefix, "min-prefix", 0, "minimum prefix length in bytes")
	cmd.Flags().IntVar(&maxPrefix, "max-prefix", 0, "maximum prefix length in bytes")
	cmd.Flags().BoolVar(&enableFilter, "enable-filter", true, "skip lookups for numeric or symbol only prefixes")
	return cmd
}

func printConfig(cmd *cobra.Command, cfg *config.Config, path string) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Config file: %s\n\n", path)
	fmt.Fprintln(w, "Current configuration:")
	fmt.Fprintf(w, "  Max limit:      %d\n", cfg.Server.MaxLimit)
	fmt.Fprintf(w, "  Min prefix:     %d\n", cfg.Server.MinPrefix)
	fmt.Fprintf(w, "  Max prefix:     %d\n", cfg.Server.MaxPrefix)
	fmt.Fprintf(w, "  Filter:         %v\n", cfg.Server.EnableFilter)
	fmt.Fprintf(w, "  Default limit:  %d\n", cfg.Index.DefaultLimit)
	fmt.Fprintf(w, "  Vocabulary:     %v\n", cfg.Index.Vocabulary)
	fmt.Fprintf(w, "  HTTP addr:      %s\n", cfg.HTTP.Addr)
	fmt.Fprintf(w, "  Metrics:        %v (%s)\n", cfg.Metrics.Enabled, cfg.Metrics.Path)
	fmt.Fprintf(w, "  Log level:      %s\n", cfg.Log.Level)
}
