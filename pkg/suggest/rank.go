package suggest

import (
	"container/heap"
	"sort"
	"unicode/utf8"
)

// Less reports whether a ranks ahead of b: higher score first, then the term with
// fewer characters, then lexicographic order. Any monotonic score works here as long as the
// tie-break stays total.
func Less(a, b Suggestion) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if la, lb := utf8.RuneCountInString(a.Term), utf8.RuneCountInString(b.Term); la != lb {
		return la < lb
	}
	return a.Term < b.Term
}

// topK keeps the best k suggestions seen so far. The heap root is the worst kept
// suggestion, so a new candidate only has to beat the root.
type topK struct {
	k     int
	items []Suggestion
}

func newTopK(k int) *topK {
	capacity := k
	if capacity > 1024 {
		capacity = 1024
	}
	return &topK{k: k, items: make([]Suggestion, 0, capacity)}
}

func (t *topK) Len() int           { return len(t.items) }
func (t *topK) Less(i, j int) bool { return Less(t.items[j], t.items[i]) }
func (t *topK) Swap(i, j int)      { t.items[i], t.items[j] = t.items[j], t.items[i] }

func (t *topK) Push(x any) {
	t.items = append(t.items, x.(Suggestion))
}

func (t *topK) Pop() any {
	n := len(t.items)
	last := t.items[n-1]
	t.items = t.items[:n-1]
	return last
}

func (t *topK) offer(s Suggestion) {
	if len(t.items) < t.k {
		heap.Push(t, s)
		return
	}
	if Less(s, t.items[0]) {
		t.items[0] = s
		heap.Fix(t, 0)
	}
}

// sorted drains the heap into best-first order.
func (t *topK) sorted() []Suggestion {
	out := make([]Suggestion, len(t.items))
	copy(out, t.items)
	sort.Slice(out, func(i, j int) bool { return Less(out[i], out[j]) })
	return out
}
