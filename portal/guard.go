package portal

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octabyte/campus-portal/client"
	"github.com/octabyte/campus-portal/enums"
	"github.com/octabyte/campus-portal/navigation"
	reqctx "github.com/octabyte/campus-portal/utils/context"
)

// Guard admits a request only when the local session is authenticated,
// matches requiredRole (any role when empty) and the server still accepts
// its access token. The verified user is put on the request context.
func (s *Server) Guard(requiredRole enums.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			access := s.auth.CheckAccess(ctx, requiredRole)
			if !access.Success {
				return s.deny(c, access)
			}
			if !s.auth.VerifySession(ctx) {
				intent := s.routes.Intent(navigation.TargetAnonymousEntry, "verify_failed")
				return s.deny(c, client.Result{
					Error:  client.ErrSessionInvalid.Error(),
					Kind:   client.KindSessionInvalid,
					Intent: &intent,
				})
			}

			c.SetRequest(c.Request().WithContext(reqctx.WithUser(ctx, access.User)))
			return next(c)
		}
	}
}

// deny sends browsers to the anonymous entry point and API callers a JSON
// error.
func (s *Server) deny(c echo.Context, result client.Result) error {
	if acceptsHTML(c) {
		return c.Redirect(http.StatusFound, s.routes.AnonymousEntry)
	}
	return c.JSON(statusFor(result), result)
}

func acceptsHTML(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMETextHTML)
}
