package suggest

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// BuildFunc produces the vocabulary for a full rebuild.
type BuildFunc func(ctx context.Context) ([]Entry, error)

// Snapshot is an Index that is never mutated after it has been published.
type Snapshot struct {
	Version uint64
	index   *Index
	cache   *ResultCache
}

// Index returns the snapshot's index. It must be treated as read-only.
func (s *Snapshot) Index() *Index {
	return s.index
}

func (s *Snapshot) suggestScored(prefix string, limit int) []Suggestion {
	if limit <= 0 {
		return []Suggestion{}
	}
	key := normalizePrefix(prefix)
	res, ok := s.cache.Get(key, limit)
	if !ok {
		res = s.index.SuggestScored(key, limit)
		s.cache.Put(key, limit, res)
	}
	out := make([]Suggestion, len(res))
	copy(out, res)
	return out
}

// Swapper serves lock-free reads from an immutable snapshot and publishes new
// snapshots atomically. Writes copy the current index, apply the change to the copy
// and swap it in, so they cost O(index size) and suit read-heavy workloads.
type Swapper struct {
	current   atomic.Pointer[Snapshot]
	writeMu   sync.Mutex
	group     singleflight.Group
	rejected  atomic.Int64
	cacheSize int
}

// NewSwapper publishes ix as the first snapshot. A nil ix starts empty.
// cacheSize bounds the per-snapshot result cache; zero disables it.
func NewSwapper(ix *Index, cacheSize int) *Swapper {
	if ix == nil {
		ix = New()
	}
	s := &Swapper{cacheSize: cacheSize}
	s.publish(ix)
	return s
}

// Snapshot returns the currently published snapshot.
func (s *Swapper) Snapshot() *Snapshot {
	return s.current.Load()
}

func (s *Swapper) publish(ix *Index) *Snapshot {
	var version uint64 = 1
	if cur := s.current.Load(); cur != nil {
		version = cur.Version + 1
	}
	snap := &Snapshot{Version: version, index: ix, cache: NewResultCache(s.cacheSize)}
	s.current.Store(snap)
	return snap
}

func (s *Swapper) Suggest(prefix string, limit int) []string {
	ranked := s.SuggestScored(prefix, limit)
	terms := make([]string, len(ranked))
	for i, r := range ranked {
		terms[i] = r.Term
	}
	return terms
}

func (s *Swapper) SuggestScored(prefix string, limit int) []Suggestion {
	return s.Snapshot().suggestScored(prefix, limit)
}

func (s *Swapper) Insert(term string, score ...float64) error {
	key, sc, err := validate(term, score...)
	if err != nil {
		s.rejected.Add(1)
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := s.Snapshot().index.Clone()
	next.put(key, sc)
	s.publish(next)
	return nil
}

func (s *Swapper) BulkLoad(entries []Entry) BulkResult {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := s.Snapshot().index.Clone()
	res := next.BulkLoad(entries)
	s.publish(next)
	return res
}

// Rebuild replaces the whole index with the vocabulary returned by build.
// The new index is built off to the side while readers keep using the old one.
// Concurrent calls share a single build. Terms inserted while the build runs
// are not carried over.
func (s *Swapper) Rebuild(ctx context.Context, build BuildFunc) (BulkResult, error) {
	v, err, _ := s.group.Do("rebuild", func() (any, error) {
		entries, err := build(ctx)
		if err != nil {
			return BulkResult{}, fmt.Errorf("build vocabulary: %w", err)
		}
		ix := New()
		res := ix.BulkLoad(entries)
		if err := ctx.Err(); err != nil {
			return BulkResult{}, err
		}

		s.writeMu.Lock()
		s.publish(ix)
		s.writeMu.Unlock()
		return res, nil
	})
	if err != nil {
		return BulkResult{}, err
	}
	return v.(BulkResult), nil
}

func (s *Swapper) Len() int {
	return s.Snapshot().index.Len()
}

func (s *Swapper) Stats() Stats {
	st := s.Snapshot().index.Stats()
	st.Rejected += int(s.rejected.Load())
	return st
}

// CacheStats reports the result cache of the current snapshot.
func (s *Swapper) CacheStats() map[string]int {
	return s.Snapshot().cache.Stats()
}
