package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := New()

	m.ObserveSubmission(ResultAccepted)
	m.ObserveSubmission(ResultAccepted)
	m.ObserveSubmission(ResultDuplicate)
	m.ObserveSnapshot(20*time.Millisecond, 12, false)
	m.ObserveSnapshot(5*time.Millisecond, 0, true)
	m.ObserveExport("csv", true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submissions.WithLabelValues(ResultAccepted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submissions.WithLabelValues(ResultDuplicate)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.snapshotFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.exports.WithLabelValues("csv", "success")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `survey_submissions_total{result="accepted"} 2`)
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveSubmission(ResultFailed)
		m.ObserveSnapshot(time.Second, 1, false)
		m.ObserveExport("json", false)
	})
}
