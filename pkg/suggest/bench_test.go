package suggest

import (
	"fmt"
	"testing"
)

var benchPrefixes = []string{
	"a", "ab", "abc", "h", "he", "hel", "hello",
	"p", "pr", "pro", "prog", "program", "w1", "w12",
}

func benchEntries(n int) []Entry {
	entries := make([]Entry, n)
	for i := range entries {
		entries[i] = Entry{Term: fmt.Sprintf("w%d", i), Score: float64(i % 997)}
	}
	return entries
}

func BenchmarkBulkLoad(b *testing.B) {
	entries := benchEntries(100000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		New().BulkLoad(entries)
	}
}

func BenchmarkSuggest(b *testing.B) {
	ix := New()
	ix.BulkLoad(benchEntries(100000))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ix.Suggest(benchPrefixes[i%len(benchPrefixes)], DefaultLimit)
	}
}

func BenchmarkSwapperSuggestCached(b *testing.B) {
	s := NewSwapper(nil, 1024)
	s.BulkLoad(benchEntries(100000))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Suggest(benchPrefixes[i%len(benchPrefixes)], DefaultLimit)
	}
}
