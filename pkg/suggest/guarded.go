package suggest

import "sync"

// Guarded serializes access to one Index with a readers-writer lock.
// Writers hold the lock for the whole Insert or BulkLoad call.
type Guarded struct {
	mu sync.RWMutex
	ix *Index
}

// NewGuarded wraps ix. A nil ix starts from an empty Index.
func NewGuarded(ix *Index) *Guarded {
	if ix == nil {
		ix = New()
	}
	return &Guarded{ix: ix}
}

func (g *Guarded) Suggest(prefix string, limit int) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.ix.Suggest(prefix, limit)
}

func (g *Guarded) SuggestScored(prefix string, limit int) []Suggestion {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.ix.SuggestScored(prefix, limit)
}

func (g *Guarded) Insert(term string, score ...float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ix.Insert(term, score...)
}

func (g *Guarded) BulkLoad(entries []Entry) BulkResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ix.BulkLoad(entries)
}

func (g *Guarded) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.ix.Len()
}

func (g *Guarded) Stats() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.ix.Stats()
}

// Score returns the stored score of term.
func (g *Guarded) Score(term string) (float64, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.ix.Score(term)
}
