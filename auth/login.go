package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/octabyte/campus-portal/client"
	"github.com/octabyte/campus-portal/models"
	"github.com/octabyte/campus-portal/navigation"
	"github.com/octabyte/campus-portal/notify"
	"github.com/octabyte/campus-portal/otel/logger"
	"github.com/octabyte/campus-portal/otel/metrics"
	"github.com/octabyte/campus-portal/utils"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login posts the credentials and, on success, establishes the session and
// redirects to the portal of the user's role. A failed login leaves the
// session exactly as it was.
func (s *Service) Login(ctx context.Context, email, password string) client.Result {
	resp, err := s.client.Send(ctx, client.EndpointLogin, client.RequestOptions{
		Method:    http.MethodPost,
		Body:      credentials{Email: email, Password: password},
		Operation: "auth.login",
	})
	if err != nil {
		return s.networkFailure(ctx, err)
	}

	body, err := client.ParseBody(resp)
	if err != nil {
		return s.networkFailure(ctx, err)
	}

	if !resp.IsSuccess() {
		apiErr := client.NewAPIError(resp, "Invalid credentials")
		notify.Error(ctx, s.notifier, "Login failed: "+apiErr.Message)
		return client.Failure(apiErr)
	}

	tokens, user, profile, err := parseLogin(body)
	if err != nil {
		return s.networkFailure(ctx, err)
	}

	if err := s.sessions.EstablishProfile(ctx, tokens, profile); err != nil {
		logger.ErrorCtx(ctx, "establishing session after login", err)
		notify.Error(ctx, s.notifier, "Login failed: could not save session")
		return client.Result{Error: err.Error(), StatusCode: http.StatusInternalServerError}
	}
	metrics.RecordSessionEstablished(ctx, string(user.Role))
	notify.Success(ctx, s.notifier, "Login successful!")

	result := client.Result{
		Success: true,
		Message: "Login successful!",
		User:    user,
		Data:    body,
	}

	target, ok := navigation.TargetForRole(user.Role)
	if !ok {
		logger.WarnfCtx(ctx, "no portal for role %q, staying on the current page", user.Role)
		return result
	}
	intent := s.routes.Intent(target, "login")
	intent.Delay = s.redirectDelay
	s.navigator.Navigate(ctx, intent)
	result.Intent = &intent
	return result
}

// parseLogin pulls the session fields out of a login payload, returning the
// user both decoded and as the server sent it. Anything short of all three is
// a malformed response.
func parseLogin(body gjson.Result) (models.Tokens, *models.User, string, error) {
	tokens := models.Tokens{
		Access:  body.Get("tokens.access").String(),
		Refresh: body.Get("tokens.refresh").String(),
	}
	raw := body.Get("user")
	if tokens.Access == "" || tokens.Refresh == "" || !raw.IsObject() {
		return models.Tokens{}, nil, "", fmt.Errorf("login payload incomplete: %w", client.ErrMalformedResponse)
	}

	var user models.User
	if err := utils.StringToStruct(raw.Raw, &user); err != nil {
		return models.Tokens{}, nil, "", fmt.Errorf("login user: %v: %w", err, client.ErrMalformedResponse)
	}
	return tokens, &user, raw.Raw, nil
}
