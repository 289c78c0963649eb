package client

import (
	"errors"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/octabyte/campus-portal/models"
	"github.com/octabyte/campus-portal/navigation"
)

// Result is what every page flow reports back to its caller.
type Result struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message,omitempty"`
	Error      string             `json:"error,omitempty"`
	Kind       ErrorKind          `json:"kind,omitempty"`
	StatusCode int                `json:"status_code,omitempty"`
	User       *models.User       `json:"user,omitempty"`
	Intent     *navigation.Intent `json:"intent,omitempty"`
	Data       gjson.Result       `json:"-"`
}

// Failure builds the result for err.
func Failure(err error) Result {
	r := Result{Error: err.Error(), Kind: KindOf(err)}
	var ae *APIError
	if errors.As(err, &ae) {
		r.Error = ae.Message
		r.StatusCode = ae.StatusCode
	}
	var te *TransportError
	if errors.As(err, &te) {
		r.Error = te.Err.Error()
	}
	return r
}

// messagePaths are tried in order to find a server-supplied error message.
var messagePaths = []string{"error.message", "message", "detail", "non_field_errors.0"}

// ErrorMessage extracts the server's message from an error body. An empty
// fallback falls back to the raw body.
func ErrorMessage(body []byte, fallback string) string {
	for _, path := range messagePaths {
		if v := gjson.GetBytes(body, path); v.Exists() && v.Type == gjson.String && v.String() != "" {
			return v.String()
		}
	}
	if fallback == "" {
		return string(body)
	}
	return fallback
}

// ParseBody returns the JSON body of resp, or ErrMalformedResponse.
func ParseBody(resp *resty.Response) (gjson.Result, error) {
	body := resp.Body()
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, ErrMalformedResponse
	}
	return gjson.ParseBytes(body), nil
}

// NewAPIError builds the error for a non-2xx response.
func NewAPIError(resp *resty.Response, fallback string) *APIError {
	return &APIError{
		StatusCode: resp.StatusCode(),
		Message:    ErrorMessage(resp.Body(), fallback),
	}
}
