package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRequest(t *testing.T) {
	before := counterValue(t, segmentRequests.WithLabelValues(SourceCache))
	RecordRequest(SourceCache)
	RecordRequest(SourceCache)
	assert.Equal(t, before+2, counterValue(t, segmentRequests.WithLabelValues(SourceCache)))
}

func TestRecordSegmentation(t *testing.T) {
	before := counterValue(t, segmentsCreated.WithLabelValues("kagome/ipa"))
	RecordSegmentation("kagome/ipa", 7, 20*time.Millisecond)
	assert.Equal(t, before+7, counterValue(t, segmentsCreated.WithLabelValues("kagome/ipa")))
}

func TestRecordCacheShared(t *testing.T) {
	before := counterValue(t, cacheShared)
	RecordCacheShared()
	assert.Equal(t, before+1, counterValue(t, cacheShared))
}

func TestHandler(t *testing.T) {
	RecordRequest(SourceComputed)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "rsvp_segmenter_request_ops_total")
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}
