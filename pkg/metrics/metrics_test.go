package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bastiangx/wordindex/pkg/suggest"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMetrics(t *testing.T) *Metrics {
	t.Helper()
	return New(prometheus.NewRegistry())
}

func TestNewRegistersOnInjectedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)

	assert.Panics(t, func() { New(reg) }, "second registration must collide")
	assert.NotPanics(t, func() { New(prometheus.NewRegistry()) })
}

func TestInstrumentedSuggest(t *testing.T) {
	m := newMetrics(t)
	ix := suggest.New()
	ix.BulkLoad([]suggest.Entry{{Term: "happy", Score: 5}, {Term: "happen", Score: 3}})
	c := Instrument(ix, m)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.IndexTerms))

	assert.Equal(t, []string{"happy", "happen"}, c.Suggest("happ", 10))
	assert.Empty(t, c.Suggest("zzz", 10))
	assert.Empty(t, c.SuggestScored("happ", 0))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SuggestTotal.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SuggestTotal.WithLabelValues("empty")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.SuggestDuration))
}

func TestInstrumentedWrites(t *testing.T) {
	m := newMetrics(t)
	c := Instrument(suggest.NewGuarded(nil), m)

	require.NoError(t, c.Insert("cat"))
	require.NoError(t, c.Insert("cat", 4))
	require.ErrorIs(t, c.Insert(" "), suggest.ErrInvalidTerm)

	res := c.BulkLoad([]suggest.Entry{{Term: "car"}, {Term: ""}, {Term: "cab"}})
	assert.Equal(t, 2, res.Inserted)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.TermsInserted))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.TermsRejected))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.IndexTerms))

	c.Observe(suggest.BulkResult{Inserted: 5, Rejected: 1})
	assert.Equal(t, 8.0, testutil.ToFloat64(m.TermsInserted))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.TermsRejected))
}

func TestUnwrap(t *testing.T) {
	sw := suggest.NewSwapper(nil, 0)
	c := Instrument(sw, newMetrics(t))
	assert.Same(t, sw, c.Unwrap())
}

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	m := newMetrics(t)
	r := mux.NewRouter()
	r.Use(m.Middleware)
	r.HandleFunc("/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}).Methods(http.MethodGet)
	r.HandleFunc("/ok", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/items/1", "/items/2", "/ok"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/items/{id}", "418")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/ok", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.HTTPRequestsInFlight))
}

func TestStatusWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := NewStatusWriter(rec)
	assert.Same(t, sw, NewStatusWriter(sw))

	sw.WriteHeader(http.StatusCreated)
	sw.WriteHeader(http.StatusInternalServerError)
	assert.Equal(t, http.StatusCreated, sw.Status())
}

func TestHandlerServesRegistry(t *testing.T) {
	m := newMetrics(t)
	m.SuggestTotal.WithLabelValues("hit").Inc()

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `wordindex_suggest_total{result="hit"} 1`))
}
