package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/guestpost-report/internal/metrics"
)

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetricsExposition(t *testing.T) {
	m := metrics.New(func() int { return 3 })
	m.ObserveUpload(12, 30)
	m.UploadFailed(metrics.ResultPipelineError)

	body := scrape(t, m)
	require.Contains(t, body, `guestpost_uploads_total{result="ok"} 1`)
	require.Contains(t, body, `guestpost_uploads_total{result="pipeline_error"} 1`)
	require.Contains(t, body, "guestpost_upload_rows_count 1")
	require.Contains(t, body, "guestpost_upload_keyword_pairs_sum 30")
	require.Contains(t, body, "guestpost_sessions 3")
}

func TestMetricsWithoutSessionGauge(t *testing.T) {
	body := scrape(t, metrics.New(nil))
	require.NotContains(t, body, "guestpost_sessions")
}
