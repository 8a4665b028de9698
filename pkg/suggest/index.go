package suggest

import (
	"fmt"
	"math"
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"
)

const (
	// DefaultScore is used for terms inserted without a score.
	DefaultScore = 1.0

	// DefaultLimit is the number of suggestions returned when the caller has no preference.
	DefaultLimit = 10
)

// entry is the item stored at the trie node where a term ends.
type entry struct {
	id    uint32
	term  string
	score float64
}

// Index is an in-memory prefix completion index.
//
// Terms are lowercased and stored in a patricia trie keyed by their bytes. Each stored
// item carries a dense identifier assigned in first-insertion order, so entries can be
// replayed into a new Index without changing identifiers.
//
// Index is not safe for concurrent use. Wrap it in a Guarded or a Swapper when readers
// and writers overlap.
type Index struct {
	trie     *patricia.Trie
	entries  []*entry
	maxScore float64
	inserted int
	updated  int
	rejected int
}

// New returns an empty Index.
func New() *Index {
	return &Index{
		trie: patricia.NewTrie(),
	}
}

// Normalize trims and case-folds a term the way the index stores it.
func Normalize(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// normalizePrefix only case-folds. Surrounding spaces are part of the prefix.
func normalizePrefix(prefix string) string {
	return strings.ToLower(prefix)
}

// validate returns the stored key and score for an insert.
func validate(term string, score ...float64) (string, float64, error) {
	s := DefaultScore
	if len(score) > 0 && score[0] != 0 {
		s = score[0]
	}
	key := Normalize(term)
	if key == "" {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidTerm, term)
	}
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return "", 0, fmt.Errorf("%w: %v for %q", ErrInvalidScore, s, term)
	}
	return key, s, nil
}

// Insert adds term with the given score, or DefaultScore when none is given.
// Re-inserting a known term keeps the higher of the two scores.
func (ix *Index) Insert(term string, score ...float64) error {
	key, s, err := validate(term, score...)
	if err != nil {
		ix.rejected++
		return err
	}
	ix.put(key, s)
	return nil
}

// BulkLoad inserts every entry and reports what happened to the batch.
// Entries that normalize to an empty term or carry a NaN or infinite score are
// skipped and counted as rejected.
func (ix *Index) BulkLoad(entries []Entry) BulkResult {
	var res BulkResult
	for _, e := range entries {
		key, s, err := validate(e.Term, e.Score)
		if err != nil {
			ix.rejected++
			res.Rejected++
			continue
		}
		switch ix.put(key, s) {
		case putInserted:
			res.Inserted++
		case putUpdated:
			res.Updated++
		default:
			res.Repeated++
		}
	}
	return res
}

type putOutcome int

const (
	putRepeated putOutcome = iota
	putInserted
	putUpdated
)

// put stores an already normalized key. Walking the trie is O(len(key)).
func (ix *Index) put(key string, score float64) putOutcome {
	if len(ix.entries) == 0 || score > ix.maxScore {
		ix.maxScore = score
	}

	if item := ix.trie.Get(patricia.Prefix(key)); item != nil {
		e := mustEntry(item)
		if score > e.score {
			e.score = score
			ix.updated++
			return putUpdated
		}
		return putRepeated
	}

	e := &entry{id: uint32(len(ix.entries)), term: key, score: score}
	ix.trie.Insert(patricia.Prefix(key), e)
	ix.entries = append(ix.entries, e)
	ix.inserted++
	return putInserted
}

// Suggest returns up to limit terms that start with prefix, ranked by Less.
// An unknown prefix or a non-positive limit gives an empty, non-nil slice.
func (ix *Index) Suggest(prefix string, limit int) []string {
	ranked := ix.SuggestScored(prefix, limit)
	terms := make([]string, len(ranked))
	for i, s := range ranked {
		terms[i] = s.Term
	}
	return terms
}

// SuggestScored is Suggest with scores attached.
func (ix *Index) SuggestScored(prefix string, limit int) []Suggestion {
	if limit <= 0 || len(ix.entries) == 0 {
		return []Suggestion{}
	}

	top := newTopK(limit)
	visit := func(_ patricia.Prefix, item patricia.Item) error {
		e := mustEntry(item)
		top.offer(Suggestion{Term: e.term, Score: e.score})
		return nil
	}

	key := normalizePrefix(prefix)
	if key == "" {
		_ = ix.trie.Visit(visit)
	} else {
		_ = ix.trie.VisitSubtree(patricia.Prefix(key), visit)
	}
	return top.sorted()
}

// Score returns the stored score of term.
func (ix *Index) Score(term string) (float64, bool) {
	key := Normalize(term)
	if key == "" {
		return 0, false
	}
	item := ix.trie.Get(patricia.Prefix(key))
	if item == nil {
		return 0, false
	}
	return mustEntry(item).score, true
}

// Len returns the number of distinct terms.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Stats returns the index counters.
func (ix *Index) Stats() Stats {
	return Stats{
		Terms:    len(ix.entries),
		MaxScore: ix.maxScore,
		Inserted: ix.inserted,
		Updated:  ix.updated,
		Rejected: ix.rejected,
	}
}

// Entries returns every term with its current score in identifier order.
func (ix *Index) Entries() []Entry {
	out := make([]Entry, len(ix.entries))
	for i, e := range ix.entries {
		out[i] = Entry{Term: e.term, Score: e.score}
	}
	return out
}

// Clone returns an independent copy that keeps term identifiers.
func (ix *Index) Clone() *Index {
	c := New()
	c.entries = make([]*entry, 0, len(ix.entries))
	for _, e := range ix.entries {
		cp := *e
		c.trie.Insert(patricia.Prefix(cp.term), &cp)
		c.entries = append(c.entries, &cp)
	}
	c.maxScore = ix.maxScore
	c.inserted = ix.inserted
	c.updated = ix.updated
	c.rejected = ix.rejected
	return c
}

func mustEntry(item patricia.Item) *entry {
	e, ok := item.(*entry)
	if !ok || e == nil {
		panic(fmt.Errorf("%w: unexpected item type %T", ErrCorruptIndex, item))
	}
	return e
}
