package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestRecording(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	original := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)
	defer otel.SetMeterProvider(original)

	require.NoError(t, Init("campus-portal"))

	ctx := context.Background()
	RecordAPICall(ctx, "courses", "GET", 401, 20*time.Millisecond)
	RecordAPICall(ctx, "courses", "GET", 200, 10*time.Millisecond)
	RecordRefresh(ctx, "success")
	RecordSessionCleared(ctx, "logout")
	RecordSessionEstablished(ctx, "student")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	names := map[string]bool{}
	for _, m := range rm.ScopeMetrics[0].Metrics {
		names[m.Name] = true
		if m.Name == "api_calls_total" {
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			assert.Equal(t, int64(2), total)
		}
	}
	for _, name := range []string{"api_calls_total", "api_call_duration_seconds", "session_refresh_total", "session_cleared_total", "session_established_total"} {
		assert.True(t, names[name], name)
	}
}
