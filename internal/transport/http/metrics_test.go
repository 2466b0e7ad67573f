package httptransport

import (
	"context"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"example.com/fitnessclient/internal/session"
)

func sampleCount(t *testing.T, route string) uint64 {
	t.Helper()
	observer, err := requestDuration.GetMetricWithLabelValues(route)
	require.NoError(t, err)
	var m dto.Metric
	require.NoError(t, observer.(prometheus.Metric).Write(&m))
	return m.GetHistogram().GetSampleCount()
}

func TestRequestsAreRecordedByRouteTemplate(t *testing.T) {
	backend := &fakeBackend{body: `{"id":"x"}`}
	client := newTestClient(t, backend, session.NewMemoryStore())

	const route = "/metrics-test/{id}"
	beforeCount := testutil.ToFloat64(requestCounter.WithLabelValues(http.MethodGet, route, "200"))
	beforeSamples := sampleCount(t, route)

	var out map[string]string
	for _, id := range []string{"1", "2"} {
		require.NoError(t, client.Do(context.Background(), Call{Method: http.MethodGet, Route: route, Path: "/metrics-test/" + id, Out: &out}))
	}

	require.Equal(t, beforeCount+2, testutil.ToFloat64(requestCounter.WithLabelValues(http.MethodGet, route, "200")))
	require.Equal(t, beforeSamples+2, sampleCount(t, route))
}
