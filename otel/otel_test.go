package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitOpenTelemetry_Disabled(t *testing.T) {
	shutdown, err := InitOpenTelemetry(context.Background(), OtelConfig{Enabled: false})
	if err != nil {
		t.Fatalf("InitOpenTelemetry with disabled config should not error: %v", err)
	}
	shutdown()
}

func TestInitOpenTelemetry_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  OtelConfig
	}{
		{"missing service", OtelConfig{Enabled: true, Endpoint: "localhost:4318", SampleRate: 1}},
		{"missing endpoint", OtelConfig{Enabled: true, ServiceName: "campus-portal", SampleRate: 1}},
		{"sample rate too high", OtelConfig{Enabled: true, ServiceName: "campus-portal", Endpoint: "localhost:4318", SampleRate: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := InitOpenTelemetry(context.Background(), tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestNewResource(t *testing.T) {
	res := newResource(OtelConfig{ServiceName: "campus-portal", Environment: "test"})
	if res == nil {
		t.Fatal("newResource returned nil resource")
	}
}

func TestEndpointHost(t *testing.T) {
	host, insecure := endpointHost("https://otel.example.com:4318")
	assert.Equal(t, "otel.example.com:4318", host)
	assert.False(t, insecure)

	host, insecure = endpointHost("http://localhost:4318")
	assert.Equal(t, "localhost:4318", host)
	assert.True(t, insecure)

	host, insecure = endpointHost("localhost:4318")
	assert.Equal(t, "localhost:4318", host)
	assert.True(t, insecure)
}
