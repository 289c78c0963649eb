package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/octabyte/campus-portal/navigation"
	"github.com/octabyte/campus-portal/otel/logger"
	"github.com/octabyte/campus-portal/otel/metrics"
)

// AuthenticatedCall issues a protected request with the stored access token.
//
// A 401 answer triggers one Refresh. If it succeeds the request is replayed
// exactly once with the new token and that second response is returned
// whatever its status. If it fails the session is destroyed, an intent to
// the anonymous entry point is emitted, and ErrSessionInvalid is returned
// with a nil response. Every other status is returned untouched. Transport
// failures come back as *TransportError and are not retried.
func (c *Client) AuthenticatedCall(ctx context.Context, endpoint string, opts RequestOptions) (*resty.Response, error) {
	body, err := bufferBody(opts.Body)
	if err != nil {
		return nil, fmt.Errorf("client: encode request body: %w", err)
	}

	// An absent token is still sent; the server's 401 then drives the same
	// refresh path as an expired one.
	token, err := c.sessions.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("client: %w", err)
	}

	resp, err := c.execute(ctx, endpoint, opts, body, &token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusUnauthorized {
		return resp, nil
	}

	logger.InfofCtx(ctx, "access token rejected by %s %s, refreshing", opts.method(), endpoint)
	if !c.Refresh(ctx) {
		c.EndSession(ctx, "refresh_failed")
		return nil, ErrSessionInvalid
	}

	token, err = c.sessions.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("client: %w", err)
	}
	return c.execute(ctx, endpoint, opts, body, &token)
}

// EndSession destroys the local session and sends the user to the anonymous
// entry point. It returns the emitted intent.
func (c *Client) EndSession(ctx context.Context, reason string) navigation.Intent {
	if err := c.sessions.Clear(ctx); err != nil {
		logger.ErrorCtx(ctx, "clearing session", err)
	}
	metrics.RecordSessionCleared(ctx, reason)

	intent := c.routes.Intent(navigation.TargetAnonymousEntry, reason)
	c.navigator.Navigate(ctx, intent)
	return intent
}

// BestEffort runs fn and logs, rather than returns, its error. It is for
// calls whose outcome must not change what the caller does next.
func BestEffort(ctx context.Context, name string, fn func(ctx context.Context) error) {
	if err := fn(ctx); err != nil {
		logger.WarnfCtx(ctx, "%s failed (ignored): %v", name, err)
	}
}
