package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/bastiangx/wordindex/pkg/suggest"
	"github.com/charmbracelet/log"
)

const maxLineSize = 1 << 20

// ReadText reads one term per line with an optional trailing score. Terms may hold
// several words; a last space separated field that parses as a finite number is the
// score. A tab always separates the score column, and a score there that does not
// parse leaves the score unset and is counted in malformed.
// Blank lines and lines starting with # are skipped.
func ReadText(r io.Reader) (entries []suggest.Entry, malformed int, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var e suggest.Entry
		if i := strings.LastIndexByte(line, '\t'); i >= 0 {
			e.Term = strings.Join(strings.Fields(line[:i]), " ")
			score, ok := parseScore(line[i+1:])
			if !ok {
				malformed++
				log.Debugf("Bad score on line %d: %q", lineNo, line)
			}
			e.Score = score
		} else {
			fields := strings.Fields(line)
			if n := len(fields); n > 1 {
				if score, ok := parseScore(fields[n-1]); ok {
					e.Score = score
					fields = fields[:n-1]
				}
			}
			e.Term = strings.Join(fields, " ")
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, malformed, fmt.Errorf("read text vocabulary at line %d: %w", lineNo, err)
	}
	return entries, malformed, nil
}

func parseScore(raw string) (float64, bool) {
	score, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, false
	}
	return score, true
}
