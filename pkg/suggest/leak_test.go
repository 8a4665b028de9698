//go:build test

package suggest

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"testing"
)

var leakPatterns = [][]string{
	{"a", "ab", "abc", "abcd", "abcde"},
	{"h", "he", "hel", "hell", "hello"},
	{"p", "pr", "pro", "prog", "progr", "progra", "program"},
	{"i", "in", "int", "inte", "inter", "intern", "interna", "internat", "internati", "internatio", "internation"},
	{"w", "w1", "w12", "w123"},
}

func leakVocabulary() []Entry {
	words := []string{"abcde", "hello", "help", "program", "progress", "international", "internal", "interval"}
	entries := benchEntries(50000)
	for i, w := range words {
		entries = append(entries, Entry{Term: w, Score: float64(i + 1)})
	}
	return entries
}

type memSample struct {
	alloc      uint64
	goroutines int
}

func sample() memSample {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	return memSample{alloc: m.Alloc, goroutines: runtime.NumGoroutine()}
}

func checkDelta(t *testing.T, base memSample, ops int, maxPerOp float64, maxGoroutines int) {
	t.Helper()
	final := sample()
	memDelta := int64(final.alloc) - int64(base.alloc)
	goroutineDelta := final.goroutines - base.goroutines
	memPerOp := float64(memDelta) / float64(ops)

	t.Logf("ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d", ops, memDelta, memPerOp, goroutineDelta)

	if memPerOp > maxPerOp {
		t.Errorf("excessive memory usage per operation: %.2f bytes", memPerOp)
	}
	if goroutineDelta > maxGoroutines {
		t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
	}
}

func TestMemoryLeakBasic(t *testing.T) {
	for _, iterations := range []int{100, 1000, 5000} {
		t.Run(fmt.Sprintf("iterations_%d", iterations), func(t *testing.T) {
			s := NewSwapper(nil, 256)
			s.BulkLoad(leakVocabulary())

			base := sample()
			ops := 0
			for i := 0; i < iterations; i++ {
				for _, pattern := range leakPatterns {
					for _, prefix := range pattern {
						_ = s.Suggest(prefix, DefaultLimit)
						ops++
					}
				}
			}
			checkDelta(t, base, ops, 1000, 2)
		})
	}
}

func TestMemoryLeakConcurrent(t *testing.T) {
	configs := []struct {
		workers             int
		iterationsPerWorker int
	}{
		{workers: 1, iterationsPerWorker: 1000},
		{workers: 4, iterationsPerWorker: 250},
		{workers: 8, iterationsPerWorker: 125},
	}

	for _, cfg := range configs {
		t.Run(fmt.Sprintf("workers_%d_iter_%d", cfg.workers, cfg.iterationsPerWorker), func(t *testing.T) {
			s := NewSwapper(nil, 256)
			vocab := leakVocabulary()
			s.BulkLoad(vocab)

			base := sample()
			var wg sync.WaitGroup
			for w := 0; w < cfg.workers; w++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := 0; i < cfg.iterationsPerWorker; i++ {
						for _, pattern := range leakPatterns {
							for _, prefix := range pattern {
								_ = s.Suggest(prefix, DefaultLimit)
							}
						}
					}
				}()
			}

			if _, err := s.Rebuild(context.Background(), func(context.Context) ([]Entry, error) {
				return vocab, nil
			}); err != nil {
				t.Fatalf("rebuild failed: %v", err)
			}
			wg.Wait()

			ops := cfg.workers * cfg.iterationsPerWorker * 32
			checkDelta(t, base, ops, 1000, 3)
		})
	}
}
