package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/octabyte/campus-portal/client"
	"github.com/octabyte/campus-portal/models"
	"github.com/octabyte/campus-portal/notify"
	"github.com/octabyte/campus-portal/utils"
)

// SetupRequest is the first-login profile completion form. Only the fields
// relevant to the user's role need to be set.
type SetupRequest struct {
	Phone          string `json:"phone,omitempty"`
	Department     string `json:"department,omitempty"`
	Program        string `json:"program,omitempty"`
	Year           int    `json:"year,omitempty"`
	Designation    string `json:"designation,omitempty"`
	Specialization string `json:"specialization,omitempty"`
}

// CompleteSetup submits the first-login profile form as a protected call.
func (s *Service) CompleteSetup(ctx context.Context, req SetupRequest) client.Result {
	resp, err := s.client.AuthenticatedCall(ctx, client.EndpointSetup, client.RequestOptions{
		Method:    http.MethodPost,
		Body:      req,
		Operation: "auth.setup",
	})
	if err != nil {
		return s.fail(ctx, "Setup failed: ", err)
	}
	body, err := checked(resp, "Failed to complete setup")
	if err != nil {
		return s.fail(ctx, "Setup failed: ", err)
	}

	msg := body.Get("message").String()
	if msg == "" {
		msg = "Profile setup completed!"
	}
	notify.Success(ctx, s.notifier, msg)
	return client.Result{Success: true, Message: msg, Data: body}
}

// FetchProfile asks the server for the signed-in user's profile. Unlike
// VerifySession this is an ordinary protected call and renews an expired
// access token.
func (s *Service) FetchProfile(ctx context.Context) (*models.User, error) {
	resp, err := s.client.AuthenticatedCall(ctx, client.EndpointVerify, client.RequestOptions{
		Method:    http.MethodGet,
		Operation: "auth.profile",
	})
	if err != nil {
		return nil, err
	}
	body, err := checked(resp, "Failed to load profile")
	if err != nil {
		return nil, err
	}

	raw := body.Get("user")
	if !raw.IsObject() {
		return nil, fmt.Errorf("profile payload has no user: %w", client.ErrMalformedResponse)
	}
	var user models.User
	if err := utils.StringToStruct(raw.Raw, &user); err != nil {
		return nil, fmt.Errorf("profile user: %v: %w", err, client.ErrMalformedResponse)
	}
	return &user, nil
}

// checked parses resp and turns a non-2xx answer into *client.APIError.
func checked(resp *resty.Response, fallback string) (gjson.Result, error) {
	body, err := client.ParseBody(resp)
	if err != nil {
		return gjson.Result{}, err
	}
	if !resp.IsSuccess() {
		return body, client.NewAPIError(resp, fallback)
	}
	return body, nil
}

// fail notifies and reports err. A destroyed session has already redirected,
// so it is reported without a notification.
func (s *Service) fail(ctx context.Context, prefix string, err error) client.Result {
	if isNetworkError(err) {
		return s.networkFailure(ctx, err)
	}
	r := client.Failure(err)
	if r.Kind != client.KindSessionInvalid {
		notify.Error(ctx, s.notifier, prefix+r.Error)
	}
	return r
}
