package echo

import (
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	reqctx "github.com/octabyte/campus-portal/utils/context"
)

// Middleware instruments portal requests with otelecho and tags each span
// with the route and, once the guard has run, the user's role. Requests
// matched by skipper are not traced.
func Middleware(serviceName string, skipper func(c echo.Context) bool) echo.MiddlewareFunc {
	base := otelecho.Middleware(serviceName)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		traced := base(func(c echo.Context) error {
			err := next(c)
			annotate(c, err)
			return err
		})

		return func(c echo.Context) error {
			if skipper != nil && skipper(c) {
				return next(c)
			}
			return traced(c)
		}
	}
}

func annotate(c echo.Context, err error) {
	span := trace.SpanFromContext(c.Request().Context())
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(
		attribute.String("http.route", c.Path()),
		attribute.String("http.method", c.Request().Method),
		attribute.Int("http.status_code", c.Response().Status),
	)
	if id := reqctx.GetRequestIDFromContext(c.Request().Context()); id != "" {
		span.SetAttributes(attribute.String("request.id", id))
	}
	if user, ok := reqctx.GetUserFromContext(c.Request().Context()); ok {
		span.SetAttributes(attribute.String("user.role", string(user.Role)))
	}
	if err != nil {
		span.SetAttributes(attribute.String("error.message", err.Error()))
	}
}
