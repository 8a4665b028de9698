// Package suggest is the core, holding the completion index: a trie of lowercase terms
// ranked by score, with bulk load, incremental insert and ranked prefix lookup.
package suggest

// Completer defines the operations shared by the plain Index and its concurrency wrappers.
type Completer interface {
	// Suggest returns up to limit terms starting with prefix, best first.
	Suggest(prefix string, limit int) []string

	// SuggestScored is Suggest with the score of each term attached.
	SuggestScored(prefix string, limit int) []Suggestion

	// Insert adds a single term. A missing score means DefaultScore.
	Insert(term string, score ...float64) error

	// BulkLoad adds many terms at once and never aborts on a bad entry.
	BulkLoad(entries []Entry) BulkResult

	// Len returns the number of distinct terms.
	Len() int

	// Stats returns counters about the loaded vocabulary
	Stats() Stats
}

// Entry is one vocabulary item handed to BulkLoad.
// A zero Score means the item carried no score and DefaultScore applies.
type Entry struct {
	Term  string  `json:"term" msgpack:"w"`
	Score float64 `json:"score,omitempty" msgpack:"s,omitempty"`
}

// Suggestion is a ranked term returned by SuggestScored.
type Suggestion struct {
	Term  string  `json:"term"`
	Score float64 `json:"score"`
}

// BulkResult reports how a BulkLoad batch was absorbed.
type BulkResult struct {
	Inserted int `json:"inserted" msgpack:"inserted"`
	Updated  int `json:"updated" msgpack:"updated"`
	Repeated int `json:"repeated" msgpack:"repeated"`
	Rejected int `json:"rejected" msgpack:"rejected"`
}

// Accepted is the number of entries that were valid terms.
func (r BulkResult) Accepted() int {
	return r.Inserted + r.Updated + r.Repeated
}

// Add merges another batch result into r.
func (r *BulkResult) Add(o BulkResult) {
	r.Inserted += o.Inserted
	r.Updated += o.Updated
	r.Repeated += o.Repeated
	r.Rejected += o.Rejected
}

// Stats holds counters about an index.
type Stats struct {
	Terms    int     `json:"terms" msgpack:"terms"`
	MaxScore float64 `json:"max_score" msgpack:"max_score"`
	Inserted int     `json:"inserted" msgpack:"inserted"`
	Updated  int     `json:"updated" msgpack:"updated"`
	Rejected int     `json:"rejected" msgpack:"rejected"`
}

var (
	_ Completer = (*Index)(nil)
	_ Completer = (*Guarded)(nil)
	_ Completer = (*Swapper)(nil)
)
