package client

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	transport := &TransportError{Method: "GET", Endpoint: "/courses/", Err: errors.New("connection refused")}
	tests := []struct {
		name string
		err  error
		kind ErrorKind
	}{
		{"nil", nil, ""},
		{"session invalid", ErrSessionInvalid, KindSessionInvalid},
		{"wrapped session invalid", fmt.Errorf("courses: %w", ErrSessionInvalid), KindSessionInvalid},
		{"transport", transport, KindTransport},
		{"malformed", ErrMalformedResponse, KindTransport},
		{"unauthorized", &APIError{StatusCode: http.StatusUnauthorized}, KindAuthDenied},
		{"forbidden", &APIError{StatusCode: http.StatusForbidden}, KindAuthDenied},
		{"bad request", &APIError{StatusCode: http.StatusBadRequest}, KindValidation},
		{"unknown", errors.New("boom"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		fallback string
		want     string
	}{
		{"nested error message", `{"error":{"message":"Account disabled"}}`, "x", "Account disabled"},
		{"exception handler shape", `{"error":true,"message":"Not authenticated"}`, "x", "Not authenticated"},
		{"drf detail", `{"detail":"Given token not valid"}`, "x", "Given token not valid"},
		{"serializer non field errors", `{"non_field_errors":["Invalid email or password."]}`, "Invalid credentials", "Invalid email or password."},
		{"field errors use fallback", `{"email":["Enter a valid email address."]}`, "Failed to send message", "Failed to send message"},
		{"empty fallback uses body", `{"email":["taken"]}`, "", `{"email":["taken"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage([]byte(tt.body), tt.fallback))
		})
	}
}

func TestFailure(t *testing.T) {
	r := Failure(&APIError{StatusCode: http.StatusBadRequest, Message: "Invalid credentials"})
	assert.False(t, r.Success)
	assert.Equal(t, "Invalid credentials", r.Error)
	assert.Equal(t, KindValidation, r.Kind)
	assert.Equal(t, http.StatusBadRequest, r.StatusCode)

	r = Failure(&TransportError{Method: "POST", Endpoint: "/auth/login/", Err: errors.New("dial tcp: connection refused")})
	assert.Equal(t, "dial tcp: connection refused", r.Error)
	assert.Equal(t, KindTransport, r.Kind)
}

func TestConfigValidate(t *testing.T) {
	_, err := New(Config{BaseURL: "not a url", ServiceName: "x"}, nil)
	assert.Error(t, err)
	_, err = New(Config{BaseURL: "http://localhost:8000/api"}, nil)
	assert.Error(t, err)
}

func TestOperationName(t *testing.T) {
	assert.Equal(t, "auth.login", RequestOptions{}.operation("/auth/login/"))
	assert.Equal(t, "courses", RequestOptions{}.operation("/courses/?page=2"))
	assert.Equal(t, "custom", RequestOptions{Operation: "custom"}.operation("/x/"))
}
