package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/bastiangx/wordindex/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	log.SetLevel(log.FatalLevel)
}

func runSession(t *testing.T, c suggest.Completer, opts Options, input string) string {
	t.Helper()
	var out bytes.Buffer
	h := NewInputHandler(c, opts, strings.NewReader(input), &out)
	require.NoError(t, h.Start(context.Background()))
	return out.String()
}

func completer() suggest.Completer {
	g := suggest.NewGuarded(nil)
	g.BulkLoad([]suggest.Entry{
		{Term: "happy", Score: 5},
		{Term: "happen", Score: 3},
		{Term: "happily", Score: 1200},
	})
	return g
}

func defaultOpts() Options {
	return Options{MinPrefix: 1, MaxPrefix: 24, Limit: 10}
}

func TestSuggestionsPrintedInRankOrder(t *testing.T) {
	out := runSession(t, completer(), defaultOpts(), "happ\n")

	assert.Contains(t, out, "Found 3 suggestions for prefix 'happ':")
	first := strings.Index(out, "happily")
	second := strings.Index(out, "happy")
	third := strings.Index(out, "happen")
	require.True(t, first > 0 && second > 0 && third > 0)
	assert.Less(t, first, second)
	assert.Less(t, second, third)
	assert.Contains(t, out, "(score: 1,200)")
	assert.Contains(t, out, " 1. ")
}

func TestNoSuggestionsAndFilter(t *testing.T) {
	out := runSession(t, completer(), defaultOpts(), "zzq\n1234\n")
	assert.Contains(t, out, "No suggestions found for prefix: 'zzq'")
	assert.Contains(t, out, "No suggestions found for prefix: '1234'")

	opts := defaultOpts()
	opts.NoFilter = true
	c := completer()
	require.NoError(t, c.Insert("1234abc"))
	out = runSession(t, c, opts, "1234\n")
	assert.Contains(t, out, "Found 1 suggestions")
}

func TestPrefixLengthBounds(t *testing.T) {
	opts := defaultOpts()
	opts.MinPrefix = 3
	opts.MaxPrefix = 4
	out := runSession(t, completer(), opts, "ha\nhappi\n")
	assert.NotContains(t, out, "Found")
}

func TestCommands(t *testing.T) {
	c := completer()
	out := runSession(t, c, defaultOpts(), ":add Happiness 9000\n:add\n:add x notanumber\nhappiness\n:stats\n:quit\nhapp\n")

	assert.Contains(t, out, "added happiness")
	assert.Contains(t, out, "Found 1 suggestions for prefix 'happiness'")
	assert.Contains(t, out, "terms: 4")
	assert.NotContains(t, out, "prefix 'happ'", "input after :quit is ignored")

	score, ok := c.(*suggest.Guarded).Score("happiness")
	require.True(t, ok)
	assert.Equal(t, 9000.0, score)
}

func TestLastLineWithoutNewline(t *testing.T) {
	out := runSession(t, completer(), defaultOpts(), "happe")
	assert.Contains(t, out, "Found 1 suggestions for prefix 'happe'")
}

func TestCancelledContextStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	h := NewInputHandler(completer(), defaultOpts(), strings.NewReader("happ\n"), &out)
	require.NoError(t, h.Start(ctx))
	assert.NotContains(t, out.String(), "Found")
}
