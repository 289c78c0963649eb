// Package auth implements the page flows that create, check and destroy the
// user's session on top of the client package.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/octabyte/campus-portal/client"
	"github.com/octabyte/campus-portal/models"
	"github.com/octabyte/campus-portal/navigation"
	"github.com/octabyte/campus-portal/notify"
	"github.com/octabyte/campus-portal/session"
)

// DefaultRedirectDelay lets the login notification render before the
// portal redirect is followed.
const DefaultRedirectDelay = 500 * time.Millisecond

type Service struct {
	client        *client.Client
	sessions      *session.Manager
	notifier      notify.Notifier
	navigator     navigation.Navigator
	routes        navigation.Routes
	redirectDelay time.Duration
}

type Option func(*Service)

// WithRedirectDelay overrides the delay attached to post-login intents.
func WithRedirectDelay(d time.Duration) Option {
	return func(s *Service) { s.redirectDelay = d }
}

// NewService builds the flows over c. Sessions, routes and the navigator are
// the client's, so a session the client ends is the one these flows see.
func NewService(c *client.Client, notifier notify.Notifier, opts ...Option) *Service {
	s := &Service{
		client:        c,
		sessions:      c.Sessions(),
		notifier:      notifier,
		navigator:     c.Navigator(),
		routes:        c.Routes(),
		redirectDelay: DefaultRedirectDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsAuthenticated reports whether all three session fields are present.
func (s *Service) IsAuthenticated(ctx context.Context) bool {
	sess, err := s.sessions.Load(ctx)
	if err != nil {
		return false
	}
	return sess.IsAuthenticated()
}

// CurrentUser returns the cached profile of an authenticated session.
func (s *Service) CurrentUser(ctx context.Context) (*models.User, error) {
	sess, err := s.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !sess.IsAuthenticated() {
		return nil, client.ErrSessionInvalid
	}
	return sess.User, nil
}

func (s *Service) navigate(ctx context.Context, target navigation.Target, reason string) *navigation.Intent {
	intent := s.routes.Intent(target, reason)
	s.navigator.Navigate(ctx, intent)
	return &intent
}

// networkFailure reports err as a network error.
func (s *Service) networkFailure(ctx context.Context, err error) client.Result {
	r := client.Failure(err)
	r.Kind = client.KindTransport
	notify.Error(ctx, s.notifier, "Network error: "+r.Error)
	return r
}

// isNetworkError reports whether err should be presented as a network error:
// no response, or a response that is not JSON.
func isNetworkError(err error) bool {
	var te *client.TransportError
	return errors.As(err, &te) || errors.Is(err, client.ErrMalformedResponse)
}
