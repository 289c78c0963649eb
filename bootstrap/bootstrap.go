// Package bootstrap wires configuration into a ready session client and the
// flows built on it.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/octabyte/campus-portal/auth"
	"github.com/octabyte/campus-portal/client"
	"github.com/octabyte/campus-portal/config"
	"github.com/octabyte/campus-portal/contact"
	"github.com/octabyte/campus-portal/navigation"
	"github.com/octabyte/campus-portal/notify"
	"github.com/octabyte/campus-portal/otel"
	"github.com/octabyte/campus-portal/otel/metrics"
	"github.com/octabyte/campus-portal/session"
	"github.com/octabyte/campus-portal/utils/logger"
)

type App struct {
	Config   *config.Config
	Sessions *session.Manager
	Client   *client.Client
	Auth     *auth.Service
	Contact  *contact.Service

	closers []func()
}

type Option func(*options)

type options struct {
	navigator navigation.Navigator
	notifier  notify.Notifier
	store     session.Store
}

func WithNavigator(n navigation.Navigator) Option {
	return func(o *options) { o.navigator = n }
}

func WithNotifier(n notify.Notifier) Option {
	return func(o *options) { o.notifier = n }
}

// WithStore bypasses SESSION_STORE and uses s.
func WithStore(s session.Store) Option {
	return func(o *options) { o.store = s }
}

// New initialises logging, telemetry and the session store, then builds
// the client and flows. Close releases what New opened.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	o := options{navigator: navigation.Discard, notifier: notify.LogNotifier{}}
	for _, opt := range opts {
		opt(&o)
	}

	if err := logger.Init(cfg.LoggerConfig()); err != nil {
		return nil, err
	}

	app := &App{Config: cfg}
	app.closers = append(app.closers, logger.Sync)

	shutdownOtel, err := otel.InitOpenTelemetry(ctx, cfg.OtelConfig())
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("bootstrap: opentelemetry: %w", err)
	}
	app.closers = append(app.closers, shutdownOtel)

	if err := metrics.Init(cfg.ServiceName); err != nil {
		app.Close()
		return nil, fmt.Errorf("bootstrap: metrics: %w", err)
	}

	if cfg.Audit.AMQPURL != "" {
		nav, closeAudit, err := newAuditNavigator(cfg, o.navigator)
		if err != nil {
			app.Close()
			return nil, err
		}
		o.navigator = nav
		app.closers = append(app.closers, closeAudit)
	}

	store := o.store
	if store == nil {
		var closeStore func()
		store, closeStore, err = NewStore(ctx, cfg)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.closers = append(app.closers, closeStore)
	}

	app.Sessions = session.NewManager(store)
	app.Client, err = client.New(cfg.ClientConfig(), app.Sessions, client.WithNavigator(o.navigator))
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	app.Auth = auth.NewService(app.Client, o.notifier, auth.WithRedirectDelay(cfg.LoginRedirectDelay))
	app.Contact = contact.NewService(app.Client, o.notifier)

	logger.LogInfof("session client ready for %s", cfg.APIBaseURL)
	return app, nil
}

// Close runs the shutdown hooks in reverse order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
