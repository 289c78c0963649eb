package auth

import (
	"context"
	"net/http"

	"github.com/octabyte/campus-portal/client"
	"github.com/octabyte/campus-portal/enums"
	"github.com/octabyte/campus-portal/navigation"
	"github.com/octabyte/campus-portal/notify"
	"github.com/octabyte/campus-portal/otel/logger"
)

// VerifySession is the guard run when a protected page loads. It asks the
// server whether the access token is still good and never refreshes it: an
// expired token at page entry means logging in again. Every false result
// redirects to the anonymous entry point.
func (s *Service) VerifySession(ctx context.Context) bool {
	sess, err := s.sessions.Load(ctx)
	if err != nil {
		logger.ErrorCtx(ctx, "loading session for verification", err)
		s.navigate(ctx, navigation.TargetAnonymousEntry, "session_unreadable")
		return false
	}
	if !sess.IsAuthenticated() {
		s.navigate(ctx, navigation.TargetAnonymousEntry, "not_authenticated")
		return false
	}

	resp, err := s.client.Send(ctx, client.EndpointVerify, client.RequestOptions{
		Method:    http.MethodGet,
		Headers:   map[string]string{"Authorization": client.Bearer(sess.AccessToken)},
		Operation: "auth.verify",
	})
	if err != nil {
		logger.ErrorCtx(ctx, "token verification", err)
		s.navigate(ctx, navigation.TargetAnonymousEntry, "verify_unreachable")
		return false
	}
	if !resp.IsSuccess() {
		logger.InfofCtx(ctx, "token verification rejected with status %d", resp.StatusCode())
		s.client.EndSession(ctx, "verify_failed")
		return false
	}
	return true
}

// CheckAccess is the local half of the page guard: the session must be
// authenticated and, when requiredRole is set, belong to that role.
func (s *Service) CheckAccess(ctx context.Context, requiredRole enums.Role) client.Result {
	sess, err := s.sessions.Load(ctx)
	if err != nil || !sess.IsAuthenticated() {
		intent := s.navigate(ctx, navigation.TargetAnonymousEntry, "not_authenticated")
		return client.Result{Error: client.ErrSessionInvalid.Error(), Kind: client.KindSessionInvalid, Intent: intent}
	}

	if requiredRole != "" && !sess.HasRole(requiredRole) {
		const msg = "Access denied. You do not have permission to view this page."
		notify.Error(ctx, s.notifier, msg)
		intent := s.navigate(ctx, navigation.TargetAnonymousEntry, "access_denied")
		return client.Result{Error: msg, Kind: client.KindAuthDenied, StatusCode: http.StatusForbidden, User: sess.User, Intent: intent}
	}

	return client.Result{Success: true, User: sess.User}
}
