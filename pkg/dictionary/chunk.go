package dictionary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/bastiangx/wordindex/pkg/suggest"
	"github.com/charmbracelet/log"
)

// maxChunkEntries is a sanity bound on the header of a chunk file.
const maxChunkEntries = 1000000

// ChunkInfo contains metadata about a chunk file
type ChunkInfo struct {
	ChunkID   int
	Filename  string
	WordCount int
}

// ChunkName returns the file name of chunk id.
func ChunkName(id int) string {
	return fmt.Sprintf("dict_%04d.bin", id)
}

// ScanChunks lists the dict_NNNN.bin files in dir ordered by chunk id.
func ScanChunks(dir string) ([]ChunkInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, "dict_*.bin"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		idStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(file), "dict_"), ".bin")
		chunkID, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		wordCount, err := chunkWordCount(file)
		if err != nil {
			log.Warnf("Failed to get word count for chunk %s: %v", file, err)
		}
		chunks = append(chunks, ChunkInfo{
			ChunkID:   chunkID,
			Filename:  file,
			WordCount: wordCount,
		})
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ChunkID < chunks[j].ChunkID
	})
	return chunks, nil
}

func chunkWordCount(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return 0, err
	}
	return int(wordCount), nil
}

// ReadChunk decodes one chunk: an int32 entry count followed by entries of a uint16
// word length, the word bytes and a uint16 rank. Rank 1 is the most frequent word and
// maps to score 65535.
func ReadChunk(r io.Reader) ([]suggest.Entry, error) {
	reader := bufio.NewReader(r)

	var total int32
	if err := binary.Read(reader, binary.LittleEndian, &total); err != nil {
		return nil, fmt.Errorf("failed to read chunk header: %w", err)
	}
	if total < 0 || total > maxChunkEntries {
		return nil, fmt.Errorf("invalid chunk word count %d", total)
	}

	entries := make([]suggest.Entry, 0, total)
	for i := 0; i < int(total); i++ {
		var wordLen uint16
		if err := binary.Read(reader, binary.LittleEndian, &wordLen); err != nil {
			if err == io.EOF {
				log.Warnf("Chunk ended after %d of %d words", i, total)
				break
			}
			return nil, fmt.Errorf("failed to read word length: %w", err)
		}

		word := make([]byte, wordLen)
		if _, err := io.ReadFull(reader, word); err != nil {
			return nil, fmt.Errorf("failed to read word: %w", err)
		}

		var rank uint16
		if err := binary.Read(reader, binary.LittleEndian, &rank); err != nil {
			return nil, fmt.Errorf("failed to read rank: %w", err)
		}

		entries = append(entries, suggest.Entry{
			Term:  string(word),
			Score: float64(65536 - int(rank)),
		})
	}
	return entries, nil
}

// WriteChunk encodes entries in the chunk format read by ReadChunk. Scores are
// clamped to the 1..65535 range the rank field can carry.
func WriteChunk(w io.Writer, entries []suggest.Entry) error {
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, int32(len(entries))); err != nil {
		return err
	}
	for _, e := range entries {
		if len(e.Term) > math.MaxUint16 {
			return fmt.Errorf("word too long for chunk format: %d bytes", len(e.Term))
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(len(e.Term))); err != nil {
			return err
		}
		if _, err := bw.WriteString(e.Term); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, scoreToRank(e.Score)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func scoreToRank(score float64) uint16 {
	s := int(score)
	if s < 1 {
		s = 1
	}
	if s > 65535 {
		s = 65535
	}
	return uint16(65536 - s)
}

// WriteChunks splits entries into chunk files of at most chunkSize words under dir,
// numbered from dict_0001.bin in entry order. Existing chunk files in dir are
// overwritten but stale higher numbered ones are left alone.
func WriteChunks(dir string, entries []suggest.Entry, chunkSize int) ([]ChunkInfo, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("invalid chunk size %d", chunkSize)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create chunk dir %s: %w", dir, err)
	}

	var chunks []ChunkInfo
	for start, id := 0, 1; start < len(entries); start, id = start+chunkSize, id+1 {
		end := min(start+chunkSize, len(entries))
		name := filepath.Join(dir, ChunkName(id))

		file, err := os.Create(name)
		if err != nil {
			return chunks, fmt.Errorf("failed to create chunk %s: %w", name, err)
		}
		err = WriteChunk(file, entries[start:end])
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return chunks, fmt.Errorf("failed to write chunk %s: %w", name, err)
		}

		chunks = append(chunks, ChunkInfo{ChunkID: id, Filename: name, WordCount: end - start})
		log.Debugf("Wrote %d words to %s", end-start, name)
	}
	return chunks, nil
}
