package auth

import (
	"context"
	"net/http"

	"github.com/octabyte/campus-portal/client"
	"github.com/octabyte/campus-portal/otel/logger"
)

// Logout tells the server to revoke the refresh token, then destroys the
// local session whatever the server said.
func (s *Service) Logout(ctx context.Context) client.Result {
	client.BestEffort(ctx, "logout notification", s.notifyLogout)

	intent := s.client.EndSession(ctx, "logout")
	return client.Result{Success: true, Message: "Logged out", Intent: &intent}
}

func (s *Service) notifyLogout(ctx context.Context) error {
	sess, err := s.sessions.Load(ctx)
	if err != nil {
		return err
	}

	resp, err := s.client.Send(ctx, client.EndpointLogout, client.RequestOptions{
		Method: http.MethodPost,
		Headers: map[string]string{
			"Authorization": client.Bearer(sess.AccessToken),
		},
		Body:      map[string]string{"refresh_token": sess.RefreshToken},
		Operation: "auth.logout",
	})
	if err != nil {
		return err
	}
	if !resp.IsSuccess() {
		return client.NewAPIError(resp, resp.Status())
	}
	logger.DebugfCtx(ctx, "server acknowledged logout")
	return nil
}
