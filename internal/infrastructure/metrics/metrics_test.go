package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ObserveCollected("theme", 3, 1)
	m.ObserveCollected("theme", 2, 0)
	m.ObserveContributorFailure("comments")
	m.ObservePage("ok", 2*time.Millisecond)

	assert.Equal(t, 5.0, testutil.ToFloat64(m.records.WithLabelValues("theme", "accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.records.WithLabelValues("theme", "rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues("comments")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pages.WithLabelValues("ok")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveCollected("theme", 1, 0)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `assets_records_total{contributor="theme",outcome="accepted"} 1`)
}
