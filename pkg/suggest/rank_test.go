package suggest

import (
	"math/rand"
	"sort"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLess(t *testing.T) {
	tests := []struct {
		name string
		a, b Suggestion
		want bool
	}{
		{"higher score first", Suggestion{"zz", 5}, Suggestion{"a", 1}, true},
		{"lower score after", Suggestion{"a", 1}, Suggestion{"zz", 5}, false},
		{"shorter on tie", Suggestion{"car", 1}, Suggestion{"cart", 1}, true},
		{"lexicographic on tie", Suggestion{"car", 1}, Suggestion{"cat", 1}, true},
		{"length counts characters", Suggestion{"xéa", 1}, Suggestion{"xabc", 1}, true},
		{"equal is not less", Suggestion{"car", 1}, Suggestion{"car", 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Less(tt.a, tt.b))
		})
	}
}

func TestTopKMatchesFullSort(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	all := make([]Suggestion, 500)
	for i := range all {
		all[i] = Suggestion{
			Term:  "t" + strconv.Itoa(rng.Intn(100000)),
			Score: float64(rng.Intn(20)),
		}
	}
	want := append([]Suggestion(nil), all...)
	sort.Slice(want, func(i, j int) bool { return Less(want[i], want[j]) })

	for _, k := range []int{1, 5, 50, 499, 500, 1000} {
		top := newTopK(k)
		for _, s := range all {
			top.offer(s)
		}
		n := k
		if n > len(all) {
			n = len(all)
		}
		assert.Equal(t, want[:n], top.sorted(), "k=%d", k)
	}
}
