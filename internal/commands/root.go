// Package commands wires the wordindex command tree.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/bastiangx/wordindex/internal/logger"
	"github.com/bastiangx/wordindex/internal/utils"
	"github.com/bastiangx/wordindex/pkg/config"
	"github.com/bastiangx/wordindex/pkg/dictionary"
	"github.com/bastiangx/wordindex/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const (
	Version = "0.1.0"
	AppName = "wordindex"
	gh      = "https://github.com/bastiangx/wordindex"
)

// options holds the persistent flags and the config they resolve to.
type options struct {
	configPath string
	vocab      []string
	debug      bool

	cfg     *config.Config
	cfgPath string
}

// NewRootCmd builds the command tree. Each call returns fresh commands and flags.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           AppName,
		Short:         "wordindex serves fast prefix completions from an in-memory index",
		Long:          `wordindex loads a vocabulary into a ranked prefix index and serves completions over msgpack IPC, HTTP or an interactive prompt.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is ~/.config/wordindex/config.toml)")
	root.PersistentFlags().StringArrayVar(&opts.vocab, "vocab", nil, "vocabulary file or chunk dir, repeatable (overrides [index] vocabulary)")
	root.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")

	root.AddCommand(
		newServeCmd(opts),
		newHTTPCmd(opts),
		newCliCmd(opts),
		newQueryCmd(opts),
		newBuildCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func (o *options) load() error {
	logger.Setup("", o.debug)

	cfg, path, err := config.LoadConfigWithPriority(o.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	o.cfg = cfg
	o.cfgPath = path

	logger.Setup(cfg.Log.Level, o.debug)
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(path))
	return nil
}

// vocabulary returns the vocabulary paths from --vocab or the config, resolved
// against the working dir, the executable dir and the config dir.
func (o *options) vocabulary() []string {
	paths := o.cfg.Index.Vocabulary
	if len(o.vocab) > 0 {
		paths = o.vocab
	}
	if len(paths) == 0 {
		return nil
	}

	resolver, err := utils.NewPathResolver(AppName)
	if err != nil {
		log.Warnf("Failed to initialize path resolver: %v", err)
		return paths
	}
	return resolver.ResolveAll(paths)
}

// builder returns the BuildFunc for the configured vocabulary, or nil without one.
func (o *options) builder() suggest.BuildFunc {
	paths := o.vocabulary()
	if len(paths) == 0 {
		return nil
	}
	load := dictionary.Builder(paths)
	score := o.cfg.Index.DefaultScore
	return func(ctx context.Context) ([]suggest.Entry, error) {
		entries, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return withDefaultScore(entries, score), nil
	}
}

// loadIndex builds the initial index from the configured vocabulary.
func (o *options) loadIndex(ctx context.Context) (*suggest.Index, error) {
	ix := suggest.New()
	build := o.builder()
	if build == nil {
		log.Warn("No vocabulary configured, running with an empty index...")
		return ix, nil
	}

	entries, err := build(ctx)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}
	res := ix.BulkLoad(entries)
	log.Debugf("Loaded %s terms (%d updated, %d repeated, %d rejected)",
		utils.FormatWithCommas(res.Inserted), res.Updated, res.Repeated, res.Rejected)
	return ix, nil
}

func withDefaultScore(entries []suggest.Entry, score float64) []suggest.Entry {
	for i := range entries {
		if entries[i].Score == 0 {
			entries[i].Score = score
		}
	}
	return entries
}
