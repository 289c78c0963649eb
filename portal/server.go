// Package portal is a small HTTP shell over the session client. It guards
// portal pages and exposes the page flows as endpoints, turning navigation
// intents into redirects for form posts and JSON for everything else.
//
// The shell is single-user: every request acts on the one session in the
// configured store. It therefore listens on loopback, refuses non-loopback
// callers unless PORTAL_ALLOW_REMOTE is set, and refuses cross-origin posts.
package portal

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/octabyte/campus-portal/auth"
	"github.com/octabyte/campus-portal/bootstrap"
	"github.com/octabyte/campus-portal/contact"
	"github.com/octabyte/campus-portal/navigation"
	otelecho "github.com/octabyte/campus-portal/otel/echo"
	reqctx "github.com/octabyte/campus-portal/utils/context"
	"github.com/octabyte/campus-portal/utils/logger"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	echo    *echo.Echo
	auth    *auth.Service
	contact *contact.Service
	routes  navigation.Routes
	addr    string
}

func New(app *bootstrap.App) *Server {
	s := &Server{
		echo:    echo.New(),
		auth:    app.Auth,
		contact: app.Contact,
		routes:  app.Config.NavigationRoutes(),
		addr:    app.Config.PortalAddr,
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true

	s.echo.Use(middleware.Recover())
	s.echo.Use(requestID())
	if !app.Config.PortalAllowRemote {
		s.echo.Use(localOnly())
	}
	s.echo.Use(sameOrigin())
	s.echo.Use(otelecho.Middleware(app.Config.ServiceName, func(c echo.Context) bool {
		return c.Path() == "/healthz"
	}))
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := s.echo.Group("/api")
	api.POST("/login", s.login)
	api.POST("/register", s.register)
	api.POST("/logout", s.logout)
	api.POST("/forgot-password", s.forgotPassword)
	api.POST("/reset-password", s.resetPassword)
	api.POST("/contact", s.submitContact)
	api.GET("/me", s.profile, s.Guard(""))
	api.POST("/setup", s.completeSetup, s.Guard(""))

	pages := s.echo.Group("/portal")
	pages.GET("/student", s.page(navigation.TargetStudentPortal), s.Guard("student"))
	pages.GET("/faculty", s.page(navigation.TargetFacultyPortal), s.Guard("faculty"))
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.echo }

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.LogInfof("portal listening on %s", s.addr)
		if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}

// requestID tags each request with an id, reusing X-Request-ID when the
// caller sent one.
func requestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, id)
			c.SetRequest(c.Request().WithContext(reqctx.WithRequestID(c.Request().Context(), id)))
			return next(c)
		}
	}
}
