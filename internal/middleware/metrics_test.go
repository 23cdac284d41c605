package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/nyc-taxi/internal/metrics"
	"github.com/pkordes/nyc-taxi/internal/middleware"
)

func newMeteredRouter(t *testing.T) (http.Handler, *metrics.HTTP) {
	t.Helper()
	m := metrics.NewHTTP(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(middleware.NewMetrics(m))
	r.Get("/vendors/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/stats", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	return r, m
}

// TestMetrics_labelsByRoutePattern verifies that requests are counted under
// the chi route pattern, not the concrete path.
func TestMetrics_labelsByRoutePattern(t *testing.T) {
	h, m := newMeteredRouter(t)

	for _, path := range []string{"/vendors/1", "/vendors/2"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, 2.0, promtest.ToFloat64(m.Requests.WithLabelValues("GET", "/vendors/{id}", "200")))
	assert.Equal(t, 1, promtest.CollectAndCount(m.Duration))
}

// TestMetrics_recordsStatus verifies that the status written by the handler
// ends up in the status label.
func TestMetrics_recordsStatus(t *testing.T) {
	h, m := newMeteredRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, 1.0, promtest.ToFloat64(m.Requests.WithLabelValues("GET", "/stats", "500")))
}

// TestMetrics_unmatchedRoute verifies that 404s do not create a label per path.
func TestMetrics_unmatchedRoute(t *testing.T) {
	h, m := newMeteredRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no/such/path", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 1.0, promtest.ToFloat64(m.Requests.WithLabelValues("GET", "unmatched", "404")))
}
