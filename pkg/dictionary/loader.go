package dictionary

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bastiangx/wordindex/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/pierrec/lz4/v4"
	"golang.org/x/sync/errgroup"
)

// maxParallelFiles bounds how many vocabulary files LoadAll reads at once.
const maxParallelFiles = 4

// Load reads the vocabulary at path. A directory is read as a set of chunk files.
func Load(path string) ([]suggest.Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat vocabulary %s: %w", path, err)
	}
	if info.IsDir() {
		return loadChunkDir(path)
	}

	format, compressed, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vocabulary %s: %w", path, err)
	}
	defer file.Close()

	var r io.Reader = file
	if compressed {
		r = lz4.NewReader(file)
	}

	entries, err := Read(r, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debugf("Loaded %d words from %s (%s)", len(entries), path, format)
	return entries, nil
}

// Read decodes a vocabulary stream of the given format.
func Read(r io.Reader, format FileFormat) ([]suggest.Entry, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatText:
		entries, malformed, err := ReadText(r)
		if malformed > 0 {
			log.Warnf("%d lines carried a score that could not be parsed", malformed)
		}
		return entries, err
	case FormatChunk:
		return ReadChunk(r)
	default:
		return nil, ErrUnknownFormat
	}
}

func loadChunkDir(dir string) ([]suggest.Entry, error) {
	chunks, err := ScanChunks(dir)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no chunk files found in %s", dir)
	}

	var entries []suggest.Entry
	for _, chunk := range chunks {
		part, err := Load(chunk.Filename)
		if err != nil {
			return nil, err
		}
		entries = append(entries, part...)
	}
	return entries, nil
}

// LoadAll reads every path concurrently and concatenates the entries in path order.
// The first failure cancels the remaining reads.
func LoadAll(ctx context.Context, paths []string) ([]suggest.Entry, error) {
	parts := make([][]suggest.Entry, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFiles)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			entries, err := Load(path)
			if err != nil {
				return err
			}
			parts[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, p := range parts {
		total += len(p)
	}
	entries := make([]suggest.Entry, 0, total)
	for _, p := range parts {
		entries = append(entries, p...)
	}
	return entries, nil
}

// Builder returns a suggest.BuildFunc that reloads paths.
func Builder(paths []string) suggest.BuildFunc {
	return func(ctx context.Context) ([]suggest.Entry, error) {
		return LoadAll(ctx, paths)
	}
}
