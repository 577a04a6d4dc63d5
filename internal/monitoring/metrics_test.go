package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordGeneration(t *testing.T) {
	before := testutil.ToFloat64(evaluationsTotal.WithLabelValues("test-variant"))

	RecordGeneration("test-variant", 42, 30)
	RecordGeneration("test-variant", 8, 10)

	assert.Equal(t, before+50, testutil.ToFloat64(evaluationsTotal.WithLabelValues("test-variant")))
	assert.Equal(t, 10.0, testutil.ToFloat64(generationMinFitness.WithLabelValues("test-variant")))
}

func TestRecordRun(t *testing.T) {
	RecordRun("sample", "simple", 20)
	assert.Equal(t, 20.0, testutil.ToFloat64(bestFitness.WithLabelValues("sample", "simple")))

	RecordRun("sample", "simple", 0)
	assert.Equal(t, 0.0, testutil.ToFloat64(bestFitness.WithLabelValues("sample", "simple")))
}

func TestObserveHTTPRequest(t *testing.T) {
	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/catalogs/{id}", "200")
	before := testutil.ToFloat64(counter)

	ObserveHTTPRequest(http.MethodGet, "/catalogs/{id}", http.StatusOK, 0.01)
	ObserveHTTPRequest(http.MethodGet, "/catalogs/{id}", http.StatusOK, 0.02)

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestMetricsHandler(t *testing.T) {
	RecordError("test")

	rec := httptest.NewRecorder()
	NewMetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "timetabler_errors_total")
}
