package auth

import (
	"context"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/octabyte/campus-portal/client"
	"github.com/octabyte/campus-portal/notify"
)

// ForgotPassword asks the server to mail a reset link to email.
func (s *Service) ForgotPassword(ctx context.Context, email string) client.Result {
	body, err := s.post(ctx, client.EndpointForgotPassword, "auth.forgot_password",
		map[string]string{"email": email}, "Failed to send reset email")
	if err != nil {
		return s.fail(ctx, "Error: ", err)
	}

	const msg = "Password reset email sent! Check your inbox."
	notify.Success(ctx, s.notifier, msg)
	return client.Result{Success: true, Message: msg, Data: body}
}

// ResetPassword sets a new password using the token from the reset link.
func (s *Service) ResetPassword(ctx context.Context, token, password, password2 string) client.Result {
	if password2 == "" {
		password2 = password
	}
	body, err := s.post(ctx, client.EndpointResetPassword, "auth.reset_password",
		map[string]string{"token": token, "password": password, "password2": password2},
		"Failed to reset password")
	if err != nil {
		return s.fail(ctx, "Error: ", err)
	}

	const msg = "Password reset successful! Please login."
	notify.Success(ctx, s.notifier, msg)
	return client.Result{Success: true, Message: msg, Data: body}
}

// post sends an unauthenticated JSON POST and returns the parsed body of a
// 2xx answer. Non-2xx answers come back as *client.APIError.
func (s *Service) post(ctx context.Context, endpoint, operation string, payload interface{}, fallback string) (gjson.Result, error) {
	resp, err := s.client.Send(ctx, endpoint, client.RequestOptions{
		Method:    http.MethodPost,
		Body:      payload,
		Operation: operation,
	})
	if err != nil {
		return gjson.Result{}, err
	}
	return checked(resp, fallback)
}
