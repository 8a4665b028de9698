package commands

import (
	"fmt"
	"sort"

	"github.com/bastiangx/wordindex/internal/utils"
	"github.com/bastiangx/wordindex/pkg/dictionary"
	"github.com/bastiangx/wordindex/pkg/suggest"
	"github.com/spf13/cobra"
)

func newBuildCmd(opts *options) *cobra.Command {
	var (
		outDir    string
		chunkSize int
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Convert the vocabulary into binary chunk files",
		Long:  `Load every configured vocabulary, merge duplicate words keeping the highest score and write the result as dict_NNNN.bin chunks ordered from the best scored word down.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(opts.vocabulary()) == 0 {
				return fmt.Errorf("no vocabulary to build from, use --vocab or [index] vocabulary")
			}
			ix, err := opts.loadIndex(cmd.Context())
			if err != nil {
				return err
			}

			entries := ix.Entries()
			sort.SliceStable(entries, func(i, j int) bool {
				return suggest.Less(
					suggest.Suggestion{Term: entries[i].Term, Score: entries[i].Score},
					suggest.Suggestion{Term: entries[j].Term, Score: entries[j].Score},
				)
			})

			chunks, err := dictionary.WriteChunks(outDir, entries, chunkSize)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s words into %d chunks under %s\n",
				utils.FormatWithCommas(len(entries)), len(chunks), outDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "data", "directory for the chunk files")
	cmd.Flags().IntVar(&chunkSize, "chunk", 10000, "number of words per chunk")
	return cmd
}
