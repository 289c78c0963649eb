// Package config loads runtime settings from the environment, optionally
// seeded from .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/octabyte/campus-portal/client"
	"github.com/octabyte/campus-portal/enums"
	"github.com/octabyte/campus-portal/navigation"
	"github.com/octabyte/campus-portal/otel"
	"github.com/octabyte/campus-portal/utils/logger"
)

// Session store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"campus-portal" validate:"required"`
	APIBaseURL  string `env:"API_BASE_URL" envDefault:"http://localhost:8000/api" validate:"required,url"`

	// LoginRedirectDelay is how long a login success notification shows
	// before the portal redirect.
	LoginRedirectDelay time.Duration `env:"LOGIN_REDIRECT_DELAY" envDefault:"500ms" validate:"gte=0"`

	Routes  RoutesConfig
	Session SessionConfig `envPrefix:"SESSION_"`
	Redis   RedisConfig   `envPrefix:"REDIS_"`
	Log     LogConfig     `envPrefix:"LOG_"`
	Otel    OtelConfig    `envPrefix:"OTEL_"`
	Audit   AuditConfig   `envPrefix:"AUDIT_"`

	// The portal shell serves one shared session, so it binds to loopback
	// and refuses remote callers unless PortalAllowRemote is set.
	PortalAddr        string `env:"PORTAL_ADDR" envDefault:"127.0.0.1:8080"`
	PortalAllowRemote bool   `env:"PORTAL_ALLOW_REMOTE" envDefault:"false"`
}

type RoutesConfig struct {
	AnonymousEntry string `env:"ANONYMOUS_ENTRY_URL" envDefault:"index.html" validate:"required"`
	StudentPortal  string `env:"STUDENT_PORTAL_URL" envDefault:"student-portal.html" validate:"required"`
	FacultyPortal  string `env:"FACULTY_PORTAL_URL" envDefault:"faculty-portal.html" validate:"required"`
	AdminConsole   string `env:"ADMIN_CONSOLE_URL" envDefault:"http://localhost:8000/admin/" validate:"required"`
}

type SessionConfig struct {
	Store string `env:"STORE" envDefault:"file" validate:"oneof=memory file redis"`
	File  string `env:"FILE" envDefault:".campus-portal/session.json"`
}

type RedisConfig struct {
	Addr      string `env:"ADDR" envDefault:"localhost:6379"`
	Password  string `env:"PASSWORD"`
	DB        int    `env:"DB" envDefault:"0" validate:"gte=0"`
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"campus-portal:"`
}

type LogConfig struct {
	Level string `env:"LEVEL" envDefault:"info"`
	Env   string `env:"ENV" envDefault:"development"`
}

type OtelConfig struct {
	Enabled    bool              `env:"ENABLED" envDefault:"false"`
	Endpoint   string            `env:"ENDPOINT"`
	Headers    map[string]string `env:"HEADERS"`
	SampleRate float64           `env:"SAMPLE_RATE" envDefault:"1" validate:"gte=0,lte=1"`
}

// AuditConfig enables publishing of session events to RabbitMQ when
// AMQPURL is set.
type AuditConfig struct {
	AMQPURL    string `env:"AMQP_URL"`
	Exchange   string `env:"EXCHANGE" envDefault:"campus-portal.audit"`
	RoutingKey string `env:"ROUTING_KEY" envDefault:"session.navigation"`
}

// Load reads the given .env files (".env" when none are named), then the
// process environment. Variables already set in the environment win over
// the files, and missing files are skipped.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: failed to load %s: %w", f, err)
		}
	}
	return parse(env.Options{})
}

// FromMap parses cfg from vars alone, ignoring the process environment.
func FromMap(vars map[string]string) (*Config, error) {
	if vars == nil {
		vars = map[string]string{}
	}
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := v.Var(c.Log.Level, "oneof="+enums.LogLevels); err != nil {
		return fmt.Errorf("config: LOG_LEVEL %q: %w", c.Log.Level, err)
	}
	if c.Session.Store == StoreFile && c.Session.File == "" {
		return errors.New("config: SESSION_FILE is required for the file session store")
	}
	if c.Session.Store == StoreRedis && c.Redis.Addr == "" {
		return errors.New("config: REDIS_ADDR is required for the redis session store")
	}
	if c.Otel.Enabled && c.Otel.Endpoint == "" {
		return errors.New("config: OTEL_ENDPOINT is required when OTEL_ENABLED is set")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Log.Env == "development"
}

func (c *Config) NavigationRoutes() navigation.Routes {
	return navigation.Routes{
		AnonymousEntry: c.Routes.AnonymousEntry,
		StudentPortal:  c.Routes.StudentPortal,
		FacultyPortal:  c.Routes.FacultyPortal,
		AdminConsole:   c.Routes.AdminConsole,
	}
}

func (c *Config) ClientConfig() client.Config {
	return client.Config{
		BaseURL:     c.APIBaseURL,
		ServiceName: c.ServiceName,
		Routes:      c.NavigationRoutes(),
	}
}

func (c *Config) LoggerConfig() *logger.Config {
	return &logger.Config{
		Level:       c.Log.Level,
		Env:         c.Log.Env,
		ServiceName: c.ServiceName,
	}
}

func (c *Config) OtelConfig() otel.OtelConfig {
	return otel.OtelConfig{
		Enabled:     c.Otel.Enabled,
		Endpoint:    c.Otel.Endpoint,
		ServiceName: c.ServiceName,
		Headers:     c.Otel.Headers,
		Environment: c.Log.Env,
		SampleRate:  c.Otel.SampleRate,
	}
}
