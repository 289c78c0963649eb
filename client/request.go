package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"

	"github.com/octabyte/campus-portal/otel"
	"github.com/octabyte/campus-portal/otel/metrics"
)

const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	contentTypeJSON     = "application/json"
)

// RequestOptions describes an outbound call. Body may be nil, []byte,
// string, an io.Reader or any value encodable as JSON; it is buffered once
// so a replayed request carries identical bytes.
type RequestOptions struct {
	Method      string
	Body        interface{}
	Headers     map[string]string
	QueryParams map[string]string
	// Operation names the call in traces and metrics. Derived from the
	// endpoint when empty.
	Operation string
}

func (o RequestOptions) method() string {
	if o.Method == "" {
		return http.MethodGet
	}
	return strings.ToUpper(o.Method)
}

func (o RequestOptions) operation(endpoint string) string {
	if o.Operation != "" {
		return o.Operation
	}
	trimmed := endpoint
	if i := strings.Index(trimmed, "?"); i >= 0 {
		trimmed = trimmed[:i]
	}
	trimmed = strings.Trim(trimmed, "/")
	if trimmed == "" {
		return "root"
	}
	return strings.ReplaceAll(trimmed, "/", ".")
}

func bufferBody(body interface{}) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	case io.Reader:
		return io.ReadAll(b)
	default:
		return json.Marshal(b)
	}
}

// Bearer formats an Authorization header value.
func Bearer(token string) string {
	return "Bearer " + token
}

// Send issues one request without touching the session. Headers from opts
// are sent as given; Content-Type defaults to JSON.
func (c *Client) Send(ctx context.Context, endpoint string, opts RequestOptions) (*resty.Response, error) {
	body, err := bufferBody(opts.Body)
	if err != nil {
		return nil, fmt.Errorf("client: encode request body: %w", err)
	}
	return c.execute(ctx, endpoint, opts, body, nil)
}

// execute runs a single HTTP exchange. When bearer is non-nil the
// Authorization and Content-Type headers are forced over the caller's.
func (c *Client) execute(ctx context.Context, endpoint string, opts RequestOptions, body []byte, bearer *string) (*resty.Response, error) {
	method := opts.method()
	operation := opts.operation(endpoint)

	ctx, finish := otel.StartHTTPSpan(ctx, c.serviceName, operation, method, c.baseURL, endpoint)
	start := time.Now()

	req := c.http.R().SetContext(ctx)
	for k, v := range opts.Headers {
		req.SetHeader(k, v)
	}
	if len(opts.QueryParams) > 0 {
		req.SetQueryParams(opts.QueryParams)
	}
	if body != nil {
		req.SetBody(body)
	}
	if bearer != nil {
		req.SetHeader(headerContentType, contentTypeJSON)
		req.SetHeader(headerAuthorization, Bearer(*bearer))
	} else if req.Header.Get(headerContentType) == "" {
		req.SetHeader(headerContentType, contentTypeJSON)
	}

	resp, err := req.Execute(method, endpoint)

	status := 0
	if err == nil {
		status = resp.StatusCode()
	}
	finish(status, err)
	metrics.RecordAPICall(ctx, operation, method, status, time.Since(start))

	if err != nil {
		return nil, &TransportError{Method: method, Endpoint: endpoint, Err: err}
	}
	return resp, nil
}
