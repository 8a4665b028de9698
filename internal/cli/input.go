// Package cli handles cmd line input and suggestions for debugging the index by hand
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/wordindex/internal/utils"
	"github.com/bastiangx/wordindex/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Options controls how the InputHandler validates prefixes.
type Options struct {
	MinPrefix int
	MaxPrefix int
	Limit     int
	NoFilter  bool
}

// InputHandler reads prefixes line by line and prints ranked suggestions.
// Lines starting with ':' are commands:
//
//	:add <term> [score]   insert a term
//	:stats                print index counters
//	:quit                 leave the prompt
type InputHandler struct {
	completer    suggest.Completer
	opts         Options
	in           io.Reader
	out          io.Writer
	wordStyle    lipgloss.Style
	dimStyle     lipgloss.Style
	requestCount int
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(completer suggest.Completer, opts Options, in io.Reader, out io.Writer) *InputHandler {
	if opts.Limit <= 0 {
		opts.Limit = suggest.DefaultLimit
	}
	r := lipgloss.NewRenderer(out)
	return &InputHandler{
		completer: completer,
		opts:      opts,
		in:        in,
		out:       out,
		wordStyle: r.NewStyle().Foreground(lipgloss.Color("75")),
		dimStyle:  r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// Start begins the interface loop. It ends cleanly on EOF, ":quit" or when ctx is done.
func (h *InputHandler) Start(ctx context.Context) error {
	fmt.Fprintln(h.out, "wordindex CLI")
	fmt.Fprintln(h.out, "type a prefix and press Enter to see suggestions (:quit or Ctrl+D to exit)")
	reader := bufio.NewReader(h.in)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprint(h.out, "> ")
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		line = strings.TrimSpace(line)
		if line != "" && !h.handleLine(line) {
			return nil
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(h.out)
			return nil
		}
	}
}

// handleLine runs one line of input and reports whether the loop should go on.
func (h *InputHandler) handleLine(line string) bool {
	if !strings.HasPrefix(line, ":") {
		h.handleInput(line)
		return true
	}

	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q":
		return false
	case ":stats":
		st := h.completer.Stats()
		fmt.Fprintf(h.out, "terms: %s  max score: %s  inserted: %s  updated: %s  rejected: %s\n",
			utils.FormatWithCommas(st.Terms), utils.FormatScore(st.MaxScore),
			utils.FormatWithCommas(st.Inserted), utils.FormatWithCommas(st.Updated),
			utils.FormatWithCommas(st.Rejected))
	case ":add":
		h.handleAdd(fields[1:])
	default:
		log.Errorf("Unknown command: %s", fields[0])
	}
	return true
}

func (h *InputHandler) handleAdd(args []string) {
	if len(args) == 0 {
		log.Error("Usage: :add <term> [score]")
		return
	}
	term := args[0]
	score := suggest.DefaultScore
	if len(args) > 1 {
		s, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			log.Errorf("Invalid score: %s", args[1])
			return
		}
		score = s
	}
	if err := h.completer.Insert(term, score); err != nil {
		log.Errorf("Insert failed: %v", err)
		return
	}
	fmt.Fprintf(h.out, "added %s\n", h.wordStyle.Render(suggest.Normalize(term)))
}

// handleInput validates a prefix, asks the completer and prints the ranked results.
func (h *InputHandler) handleInput(prefix string) {
	h.requestCount++

	if len(prefix) < h.opts.MinPrefix {
		log.Errorf("Prefix too short: %s", prefix)
		return
	}
	if len(prefix) > h.opts.MaxPrefix {
		log.Errorf("Prefix too long: %s", prefix)
		return
	}

	if !h.opts.NoFilter && !utils.IsValidInput(prefix) {
		fmt.Fprintf(h.out, "No suggestions found for prefix: '%s'\n", prefix)
		return
	}

	start := time.Now()
	suggestions := h.completer.SuggestScored(prefix, h.opts.Limit)
	log.Debugf("Took [ %v ] for prefix '%s'", time.Since(start), prefix)

	if len(suggestions) == 0 {
		fmt.Fprintf(h.out, "No suggestions found for prefix: '%s'\n", prefix)
		return
	}

	fmt.Fprintf(h.out, "Found %d suggestions for prefix '%s':\n", len(suggestions), prefix)
	ranks := utils.CreateRankList(len(suggestions))
	for i, s := range suggestions {
		word := h.wordStyle.Render(fmt.Sprintf("%-32s", s.Term))
		score := h.dimStyle.Render("(score: " + utils.FormatScore(s.Score) + ")")
		fmt.Fprintf(h.out, "%2d. %s %s\n", ranks[i], word, score)
	}
}
