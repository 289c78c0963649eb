// Package client is the authenticated-request layer. Every call to the
// remote API goes through a Client, which attaches the bearer access token,
// renews it once on 401 and replays the original request.
package client

import (
	"fmt"
	"net/http/cookiejar"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"golang.org/x/net/publicsuffix"

	"github.com/octabyte/campus-portal/navigation"
	"github.com/octabyte/campus-portal/otel"
	"github.com/octabyte/campus-portal/session"
)

// API endpoints, relative to the base URL.
const (
	EndpointLogin          = "/auth/login/"
	EndpointRegister       = "/auth/register/"
	EndpointRefresh        = "/auth/refresh-token/"
	EndpointVerify         = "/auth/verify-token/"
	EndpointLogout         = "/auth/logout/"
	EndpointForgotPassword = "/auth/forgot-password/"
	EndpointResetPassword  = "/auth/reset-password/"
	EndpointSetup          = "/auth/setup/"
	EndpointContactSubmit  = "/contact/submit/"
)

type Config struct {
	BaseURL     string `validate:"required,url"`
	ServiceName string `validate:"required"`
	Routes      navigation.Routes
}

func (cfg *Config) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(cfg)
}

type Client struct {
	http        *resty.Client
	sessions    *session.Manager
	navigator   navigation.Navigator
	routes      navigation.Routes
	baseURL     string
	serviceName string
}

type Option func(*Client)

// WithNavigator sets where re-authentication intents are sent. The default
// discards them.
func WithNavigator(n navigation.Navigator) Option {
	return func(c *Client) { c.navigator = n }
}

// WithRestyClient replaces the underlying HTTP client. Its base URL is
// overwritten with Config.BaseURL.
func WithRestyClient(r *resty.Client) Option {
	return func(c *Client) { c.http = r }
}

func New(cfg Config, sessions *session.Manager, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("client: invalid configuration: %w", err)
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	routes := cfg.Routes
	if routes == (navigation.Routes{}) {
		routes = navigation.DefaultRoutes()
	}

	c := &Client{
		sessions:    sessions,
		navigator:   navigation.Discard,
		routes:      routes,
		baseURL:     baseURL,
		serviceName: cfg.ServiceName,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("client: cookie jar: %w", err)
		}
		c.http = otel.NewTracedRestyClient(baseURL).SetCookieJar(jar)
	}
	c.http.SetBaseURL(baseURL).
		SetRetryCount(0).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)

	return c, nil
}

// Sessions returns the session manager the client reads credentials from.
func (c *Client) Sessions() *session.Manager { return c.sessions }

func (c *Client) Routes() navigation.Routes { return c.routes }

func (c *Client) Navigator() navigation.Navigator { return c.navigator }
