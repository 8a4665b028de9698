package dictionary

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bastiangx/wordindex/pkg/suggest"
)

// ReadJSON reads a JSON object whose keys are words. A positive numeric value is
// used as the word's score; any other value leaves the score unset.
// Words come back in file order.
func ReadJSON(r io.Reader) ([]suggest.Entry, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read json vocabulary: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("read json vocabulary: expected object, got %v", tok)
	}

	var entries []suggest.Entry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read json vocabulary key: %w", err)
		}
		word, _ := tok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("read json vocabulary value for %q: %w", word, err)
		}

		entries = append(entries, suggest.Entry{Term: word, Score: jsonScore(value)})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read json vocabulary: %w", err)
	}
	return entries, nil
}

func jsonScore(v any) float64 {
	n, ok := v.(json.Number)
	if !ok {
		return 0
	}
	f, err := n.Float64()
	if err != nil || f <= 0 {
		return 0
	}
	return f
}
