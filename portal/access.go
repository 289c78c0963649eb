package portal

import (
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/octabyte/campus-portal/client"
	"github.com/octabyte/campus-portal/utils/logger"
)

// localOnly rejects callers whose connection does not come from a loopback
// address. Forwarding headers are ignored.
func localOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !isLoopback(c.Request().RemoteAddr) {
				logger.LogWarnf("portal: refusing request from %s", c.Request().RemoteAddr)
				return c.JSON(http.StatusForbidden, client.Result{Error: "portal only serves local requests"})
			}
			return next(c)
		}
	}
}

func isLoopback(remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	ip := net.ParseIP(strings.Trim(host, "[]"))
	return ip != nil && ip.IsLoopback()
}

// sameOrigin rejects state-changing requests a browser sent on behalf of
// another site.
func sameOrigin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}
			if crossSite(req) {
				return c.JSON(http.StatusForbidden, client.Result{Error: "cross-origin request refused"})
			}
			return next(c)
		}
	}
}

func crossSite(req *http.Request) bool {
	if site := req.Header.Get("Sec-Fetch-Site"); site == "cross-site" || site == "same-site" {
		return true
	}
	origin := req.Header.Get(echo.HeaderOrigin)
	if origin == "" {
		return false
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return true
	}
	return !strings.EqualFold(u.Host, req.Host)
}
