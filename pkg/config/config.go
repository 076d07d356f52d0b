package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/packfinderz-insights/pkg/enums"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/multierr"
)

type Config struct {
	App        AppConfig
	Redis      RedisConfig
	RateLimit  RateLimitConfig
	Projection ProjectionConfig
	CORS       CORSConfig
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express. Every problem is
// reported, not only the first.
func (c *Config) Validate() error {
	var err error
	if strings.TrimSpace(c.App.Port) == "" {
		err = multierr.Append(err, fmt.Errorf("%s is required", EnvPort))
	}
	err = multierr.Append(err, c.RateLimit.validate())
	err = multierr.Append(err, c.Projection.validate())
	return err
}

type AppConfig struct {
	Env               string        `envconfig:"INSIGHTS_APP_ENV" required:"true"`
	Port              string        `envconfig:"INSIGHTS_APP_PORT" default:"8080"`
	LogLevel          string        `envconfig:"INSIGHTS_LOG_LEVEL" default:"info"`
	LogWarnStack      bool          `envconfig:"INSIGHTS_LOG_WARN_STACK" default:"false"`
	ShutdownTimeout   time.Duration `envconfig:"INSIGHTS_SHUTDOWN_TIMEOUT" default:"15s"`
	ReadHeaderTimeout time.Duration `envconfig:"INSIGHTS_READ_HEADER_TIMEOUT" default:"5s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// RedisConfig is optional. Without a URL or address the service runs without rate limiting.
type RedisConfig struct {
	URL          string        `envconfig:"INSIGHTS_REDIS_URL"`
	Address      string        `envconfig:"INSIGHTS_REDIS_ADDR"`
	Password     string        `envconfig:"INSIGHTS_REDIS_PASSWORD"`
	DB           int           `envconfig:"INSIGHTS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"INSIGHTS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"INSIGHTS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"INSIGHTS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"INSIGHTS_REDIS_READ_TIMEOUT" default:"2s"`
	WriteTimeout time.Duration `envconfig:"INSIGHTS_REDIS_WRITE_TIMEOUT" default:"2s"`
}

// Enabled reports whether a Redis endpoint is configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type RateLimitConfig struct {
	Enabled bool          `envconfig:"INSIGHTS_RATE_LIMIT_ENABLED" default:"true"`
	Window  time.Duration `envconfig:"INSIGHTS_RATE_LIMIT_WINDOW" default:"1m"`
	Limit   int           `envconfig:"INSIGHTS_RATE_LIMIT_LIMIT" default:"120"`
}

func (r RateLimitConfig) validate() error {
	if !r.Enabled {
		return nil
	}
	var err error
	if r.Window <= 0 {
		err = multierr.Append(err, fmt.Errorf("%s must be positive", EnvRateLimitWindow))
	}
	if r.Limit <= 0 {
		err = multierr.Append(err, fmt.Errorf("%s must be positive", EnvRateLimitLimit))
	}
	return err
}

type ProjectionConfig struct {
	DefaultCurrentWindow int    `envconfig:"INSIGHTS_PROJECTION_CURRENT_WINDOW" default:"7"`
	DefaultForecastDays  int    `envconfig:"INSIGHTS_PROJECTION_FORECAST_DAYS" default:"30"`
	MaxWindow            int    `envconfig:"INSIGHTS_PROJECTION_MAX_WINDOW" default:"365"`
	MaxBodyBytes         int64  `envconfig:"INSIGHTS_PROJECTION_MAX_BODY_BYTES" default:"1048576"`
	DefaultPolicy        string `envconfig:"INSIGHTS_PROJECTION_DEFAULT_POLICY" default:"keep_with_defaults"`
}

// Policy returns the configured default filter policy.
func (p ProjectionConfig) Policy() enums.FilterPolicy {
	policy, err := enums.ParseFilterPolicy(p.DefaultPolicy)
	if err != nil {
		return enums.FilterPolicyKeepWithDefaults
	}
	return policy
}

func (p ProjectionConfig) validate() error {
	var err error
	if p.MaxWindow <= 0 {
		err = multierr.Append(err, fmt.Errorf("%s must be positive", EnvMaxWindow))
	}
	if p.DefaultCurrentWindow <= 0 || p.DefaultCurrentWindow > p.MaxWindow {
		err = multierr.Append(err, fmt.Errorf("%s must be between 1 and %d", EnvDefaultCurrentWindow, p.MaxWindow))
	}
	if p.DefaultForecastDays <= 0 || p.DefaultForecastDays > p.MaxWindow {
		err = multierr.Append(err, fmt.Errorf("%s must be between 1 and %d", EnvDefaultForecastDays, p.MaxWindow))
	}
	if p.MaxBodyBytes <= 0 {
		err = multierr.Append(err, fmt.Errorf("%s must be positive", EnvMaxBodyBytes))
	}
	if _, parseErr := enums.ParseFilterPolicy(p.DefaultPolicy); parseErr != nil {
		err = multierr.Append(err, fmt.Errorf("%s: %w", EnvDefaultPolicy, parseErr))
	}
	return err
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"INSIGHTS_CORS_ALLOWED_ORIGINS" default:"*"`
}
