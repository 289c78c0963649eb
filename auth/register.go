package auth

import (
	"context"
	"net/http"

	"github.com/octabyte/campus-portal/client"
	"github.com/octabyte/campus-portal/enums"
	"github.com/octabyte/campus-portal/notify"
)

type RegistrationRequest struct {
	Email     string     `json:"email"`
	Password  string     `json:"password"`
	Password2 string     `json:"password2"`
	Name      string     `json:"name"`
	Role      enums.Role `json:"role"`
}

func (r RegistrationRequest) withDefaults() RegistrationRequest {
	if r.Password2 == "" {
		r.Password2 = r.Password
	}
	if r.Role == "" {
		r.Role = enums.RoleStudent
	}
	return r
}

// Register creates an account. It never signs the user in.
func (s *Service) Register(ctx context.Context, req RegistrationRequest) client.Result {
	resp, err := s.client.Send(ctx, client.EndpointRegister, client.RequestOptions{
		Method:    http.MethodPost,
		Body:      req.withDefaults(),
		Operation: "auth.register",
	})
	if err != nil {
		return s.networkFailure(ctx, err)
	}

	body, err := client.ParseBody(resp)
	if err != nil {
		return s.networkFailure(ctx, err)
	}

	if !resp.IsSuccess() {
		apiErr := client.NewAPIError(resp, "")
		notify.Error(ctx, s.notifier, "Registration failed: "+apiErr.Message)
		return client.Failure(apiErr)
	}

	notify.Success(ctx, s.notifier, "Registration successful! Please login.")
	return client.Result{
		Success: true,
		Message: "Registration successful! Please login.",
		Data:    body,
	}
}
