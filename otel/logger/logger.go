package logger

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"

	"github.com/octabyte/campus-portal/utils/logger"
)

func InfofCtx(ctx context.Context, format string, args ...interface{}) {
	logger.LogInfo(withTrace(ctx, fmt.Sprintf(format, args...)))
}

func WarnfCtx(ctx context.Context, format string, args ...interface{}) {
	logger.LogWarn(withTrace(ctx, fmt.Sprintf(format, args...)))
}

func DebugfCtx(ctx context.Context, format string, args ...interface{}) {
	logger.LogDebug(withTrace(ctx, fmt.Sprintf(format, args...)))
}

// ErrorCtx logs msg with err appended.
func ErrorCtx(ctx context.Context, msg string, err error) {
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	logger.LogError(withTrace(ctx, msg))
}

func withTrace(ctx context.Context, msg string) string {
	if f := WithTraceFields(ctx); f != "" {
		return fmt.Sprintf("[%s] %s", f, msg)
	}
	return msg
}

// WithTraceFields returns "trace_id=… span_id=…" for the active span, or "".
func WithTraceFields(ctx context.Context) string {
	spanContext := trace.SpanContextFromContext(ctx)
	if spanContext.IsValid() {
		return fmt.Sprintf("trace_id=%s span_id=%s",
			spanContext.TraceID().String(),
			spanContext.SpanID().String(),
		)
	}
	return ""
}
