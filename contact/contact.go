// Package contact submits the public contact form.
package contact

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/octabyte/campus-portal/client"
	"github.com/octabyte/campus-portal/notify"
	"github.com/octabyte/campus-portal/otel/logger"
)

// ErrMissingFields is reported when any form field is blank.
var ErrMissingFields = errors.New("Missing fields")

type Submission struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type Service struct {
	client   *client.Client
	notifier notify.Notifier
	validate *validator.Validate
}

func NewService(c *client.Client, notifier notify.Notifier) *Service {
	return &Service{
		client:   c,
		notifier: notifier,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Submit sends the form without authentication. Blank fields are rejected
// locally and never reach the server.
func (s *Service) Submit(ctx context.Context, sub Submission) client.Result {
	if err := s.validate.Struct(sub); err != nil {
		logger.DebugfCtx(ctx, "contact form rejected: %v", err)
		notify.Error(ctx, s.notifier, "Please fill all fields")
		return client.Result{Error: ErrMissingFields.Error(), Kind: client.KindValidation}
	}

	resp, err := s.client.Send(ctx, client.EndpointContactSubmit, client.RequestOptions{
		Method:    http.MethodPost,
		Body:      sub,
		Operation: "contact.submit",
	})
	if err != nil {
		return s.networkFailure(ctx, err)
	}

	body, err := client.ParseBody(resp)
	if err != nil {
		return s.networkFailure(ctx, err)
	}

	if !resp.IsSuccess() {
		apiErr := client.NewAPIError(resp, "Failed to send message")
		notify.Error(ctx, s.notifier, "Error: "+apiErr.Message)
		return client.Failure(apiErr)
	}

	const msg = "Message sent successfully! We will contact you soon."
	notify.Success(ctx, s.notifier, msg)
	return client.Result{Success: true, Message: msg, Data: body}
}

func (s *Service) networkFailure(ctx context.Context, err error) client.Result {
	r := client.Failure(err)
	r.Kind = client.KindTransport
	notify.Error(ctx, s.notifier, "Network error: "+r.Error)
	return r
}
