package logger

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestCtxLoggingAddsTraceFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	original := zap.L()
	zap.ReplaceGlobals(zap.New(core))
	defer zap.ReplaceGlobals(original)

	tp := trace.NewTracerProvider()
	defer tp.Shutdown(context.Background())
	ctx, span := tp.Tracer("test").Start(context.Background(), "refresh")
	defer span.End()

	InfofCtx(ctx, "refreshing %s", "access token")
	ErrorCtx(context.Background(), "refresh failed", errors.New("status 400"))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.True(t, strings.HasPrefix(entries[0].Message, "[trace_id="+span.SpanContext().TraceID().String()))
	assert.True(t, strings.HasSuffix(entries[0].Message, "refreshing access token"))
	assert.Equal(t, "refresh failed: status 400", entries[1].Message)
}
