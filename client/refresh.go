package client

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/octabyte/campus-portal/otel/logger"
	"github.com/octabyte/campus-portal/otel/metrics"
)

// Refresh exchanges the stored refresh token for a new access token and
// overwrites only the access token. It reports failure solely through its
// result and leaves the session untouched when it fails.
func (c *Client) Refresh(ctx context.Context) bool {
	refreshToken, err := c.sessions.RefreshToken(ctx)
	if err != nil {
		logger.ErrorCtx(ctx, "reading refresh token", err)
		metrics.RecordRefresh(ctx, "store_error")
		return false
	}
	if refreshToken == "" {
		metrics.RecordRefresh(ctx, "no_token")
		return false
	}

	resp, err := c.Send(ctx, EndpointRefresh, RequestOptions{
		Method:    "POST",
		Body:      map[string]string{"refresh": refreshToken},
		Operation: "auth.refresh",
	})
	if err != nil {
		logger.ErrorCtx(ctx, "token refresh", err)
		metrics.RecordRefresh(ctx, "transport")
		return false
	}
	if !resp.IsSuccess() {
		logger.WarnfCtx(ctx, "token refresh rejected with status %d", resp.StatusCode())
		metrics.RecordRefresh(ctx, "rejected")
		return false
	}

	access := gjson.GetBytes(resp.Body(), "access").String()
	if access == "" {
		logger.WarnfCtx(ctx, "token refresh response carried no access token")
		metrics.RecordRefresh(ctx, "malformed")
		return false
	}

	if err := c.sessions.SetAccessToken(ctx, access); err != nil {
		logger.ErrorCtx(ctx, "storing refreshed access token", err)
		metrics.RecordRefresh(ctx, "store_error")
		return false
	}

	metrics.RecordRefresh(ctx, "success")
	return true
}
