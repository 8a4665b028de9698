package metrics

import (
	"time"

	"github.com/bastiangx/wordindex/pkg/suggest"
)

// Instrumented records index metrics around any Completer.
type Instrumented struct {
	suggest.Completer
	m *Metrics
}

var _ suggest.Completer = (*Instrumented)(nil)

// Instrument wraps c and sets the term gauge to its current size.
func Instrument(c suggest.Completer, m *Metrics) *Instrumented {
	m.IndexTerms.Set(float64(c.Len()))
	return &Instrumented{Completer: c, m: m}
}

// Unwrap returns the wrapped Completer.
func (i *Instrumented) Unwrap() suggest.Completer {
	return i.Completer
}

func (i *Instrumented) Suggest(prefix string, limit int) []string {
	ranked := i.SuggestScored(prefix, limit)
	terms := make([]string, len(ranked))
	for n, r := range ranked {
		terms[n] = r.Term
	}
	return terms
}

func (i *Instrumented) SuggestScored(prefix string, limit int) []suggest.Suggestion {
	start := time.Now()
	res := i.Completer.SuggestScored(prefix, limit)
	i.m.SuggestDuration.Observe(time.Since(start).Seconds())

	result := "hit"
	if len(res) == 0 {
		result = "empty"
	}
	i.m.SuggestTotal.WithLabelValues(result).Inc()
	return res
}

func (i *Instrumented) Insert(term string, score ...float64) error {
	before := i.Completer.Len()
	err := i.Completer.Insert(term, score...)
	if err != nil {
		i.m.TermsRejected.Inc()
		return err
	}
	after := i.Completer.Len()
	if after > before {
		i.m.TermsInserted.Add(float64(after - before))
	}
	i.m.IndexTerms.Set(float64(after))
	return nil
}

func (i *Instrumented) BulkLoad(entries []suggest.Entry) suggest.BulkResult {
	res := i.Completer.BulkLoad(entries)
	i.record(res)
	return res
}

// Observe records a batch applied to the wrapped Completer by other means,
// such as a snapshot rebuild.
func (i *Instrumented) Observe(res suggest.BulkResult) {
	i.record(res)
}

func (i *Instrumented) record(res suggest.BulkResult) {
	i.m.TermsInserted.Add(float64(res.Inserted))
	i.m.TermsRejected.Add(float64(res.Rejected))
	i.m.IndexTerms.Set(float64(i.Completer.Len()))
}
