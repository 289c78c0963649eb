package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	apiCallsTotal       metric.Int64Counter
	apiCallDuration     metric.Float64Histogram
	refreshTotal        metric.Int64Counter
	sessionsCleared     metric.Int64Counter
	sessionsEstablished metric.Int64Counter
)

// Init creates the session client instruments on the global meter provider.
// Recording before Init is a no-op.
func Init(serviceName string) error {
	meter := otel.Meter(serviceName)

	var err error

	apiCallsTotal, err = meter.Int64Counter(
		"api_calls_total",
		metric.WithDescription("Total number of calls to the remote API"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create api_calls_total counter: %w", err)
	}

	apiCallDuration, err = meter.Float64Histogram(
		"api_call_duration_seconds",
		metric.WithDescription("Remote API call duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create api_call_duration_seconds histogram: %w", err)
	}

	refreshTotal, err = meter.Int64Counter(
		"session_refresh_total",
		metric.WithDescription("Access token refresh attempts by outcome"),
		metric.WithUnit("{refresh}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create session_refresh_total counter: %w", err)
	}

	sessionsCleared, err = meter.Int64Counter(
		"session_cleared_total",
		metric.WithDescription("Sessions destroyed by reason"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create session_cleared_total counter: %w", err)
	}

	sessionsEstablished, err = meter.Int64Counter(
		"session_established_total",
		metric.WithDescription("Sessions created by a successful login"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create session_established_total counter: %w", err)
	}

	return nil
}

// RecordAPICall records one outbound request. statusCode is 0 on transport failure.
func RecordAPICall(ctx context.Context, operation, method string, statusCode int, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("api.operation", operation),
		attribute.String("http.method", method),
		attribute.Int("http.status_code", statusCode),
	)

	if apiCallsTotal != nil {
		apiCallsTotal.Add(ctx, 1, attrs)
	}
	if apiCallDuration != nil {
		apiCallDuration.Record(ctx, duration.Seconds(), attrs)
	}
}

// RecordRefresh records a refresh attempt; outcome is e.g. "success", "no_token", "rejected", "transport".
func RecordRefresh(ctx context.Context, outcome string) {
	if refreshTotal != nil {
		refreshTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}
}

func RecordSessionCleared(ctx context.Context, reason string) {
	if sessionsCleared != nil {
		sessionsCleared.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
	}
}

func RecordSessionEstablished(ctx context.Context, role string) {
	if sessionsEstablished != nil {
		sessionsEstablished.Add(ctx, 1, metric.WithAttributes(attribute.String("user.role", role)))
	}
}
