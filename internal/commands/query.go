package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newQueryCmd(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "query PREFIX",
		Short: "Load the vocabulary, run one prefix query and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("limit") {
				limit = opts.cfg.Index.DefaultLimit
			}

			ix, err := opts.loadIndex(cmd.Context())
			if err != nil {
				return err
			}

			prefix := args[0]
			results := ix.Suggest(prefix, limit)
			fmt.Fprintf(cmd.OutOrStdout(), "Autocomplete suggestions for '%s': %s\n", prefix, formatList(results))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "number of suggestions (default from [index] default_limit)")
	return cmd
}

// formatList renders terms as ['a', 'b'].
func formatList(terms []string) string {
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = "'" + t + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
