package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRequest(t *testing.T) {
	before := testutil.ToFloat64(RequestsTotal.WithLabelValues("summarize", StatusInvalid))

	RecordRequest("summarize", StatusInvalid)
	RecordRequest("summarize", StatusInvalid)

	after := testutil.ToFloat64(RequestsTotal.WithLabelValues("summarize", StatusInvalid))
	assert.InDelta(t, 2, after-before, 0.0001)
}

func TestRecordRender(t *testing.T) {
	before := testutil.ToFloat64(DocumentsTotal.WithLabelValues("pdf", StatusOK))

	RecordRender("pdf", StatusOK)

	after := testutil.ToFloat64(DocumentsTotal.WithLabelValues("pdf", StatusOK))
	assert.InDelta(t, 1, after-before, 0.0001)
}

func TestHandlerExposesMetrics(t *testing.T) {
	RecordSummarize("huggingface", StatusOK, 0.5)
	RecordInput(128)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	text := string(body)
	assert.True(t, strings.Contains(text, "sumdoc_summarize_duration_seconds"))
	assert.True(t, strings.Contains(text, "sumdoc_input_length_bytes"))
}
