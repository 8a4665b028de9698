// Package dictionary reads vocabulary files into completion index entries.
//
// Supported formats are a JSON object keyed by word (such as words_dictionary.json),
// plain text with one word and an optional score per line, and the little-endian
// binary chunk files named dict_NNNN.bin. Any of them may be lz4 compressed, in which
// case the file name carries an extra .lz4 suffix.
package dictionary

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnknownFormat is returned for files whose format cannot be detected.
var ErrUnknownFormat = errors.New("unknown vocabulary format")

// FileFormat represents different vocabulary file formats
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatJSON               // JSON object keyed by word
	FormatText               // one word per line, optional score
	FormatChunk              // chunked binary format
)

const compressedExt = ".lz4"

// FormatInfo contains metadata about a vocabulary file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatJSON: {
		Format:      FormatJSON,
		Description: "JSON Word Map",
		Extensions:  []string{".json"},
	},
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Word List",
		Extensions:  []string{".txt", ".lst"},
	},
	FormatChunk: {
		Format:      FormatChunk,
		Description: "Chunked Binary Dictionary",
		Extensions:  []string{".bin"},
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "unknown"
}

// DetectFormat works out the format of path from its name.
// compressed reports whether the file carries the .lz4 suffix.
func DetectFormat(path string) (format FileFormat, compressed bool, err error) {
	name := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(name, compressedExt) {
		compressed = true
		name = strings.TrimSuffix(name, compressedExt)
	}

	ext := filepath.Ext(name)
	for f, info := range supportedFormats {
		for _, e := range info.Extensions {
			if ext == e {
				return f, compressed, nil
			}
		}
	}
	return FormatUnknown, compressed, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}
