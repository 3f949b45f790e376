package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App      AppConfig
	Upstream UpstreamConfig
	Cart     CartConfig
	Health   HealthConfig
	Redis    RedisConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Upstream.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"INVISIMART_APP_ENV" default:"development"`
	Port         string `envconfig:"INVISIMART_APP_PORT" default:"3000"`
	LogLevel     string `envconfig:"INVISIMART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"INVISIMART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// UpstreamConfig locates the backend API this service proxies to.
type UpstreamConfig struct {
	BaseURL        string        `envconfig:"INVISIMART_UPSTREAM_URL" default:"http://api:8080"`
	RequestTimeout time.Duration `envconfig:"INVISIMART_UPSTREAM_REQUEST_TIMEOUT" default:"30s"`
	ProbeTimeout   time.Duration `envconfig:"INVISIMART_UPSTREAM_PROBE_TIMEOUT" default:"5s"`
}

func (u UpstreamConfig) validate() error {
	parsed, err := url.Parse(u.BaseURL)
	if err != nil {
		return fmt.Errorf("parsing upstream url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("upstream url must include scheme and host, got %q", u.BaseURL)
	}
	return nil
}

type CartConfig struct {
	CookieName string        `envconfig:"INVISIMART_CART_COOKIE" default:"invisimart_session"`
	TTL        time.Duration `envconfig:"INVISIMART_CART_TTL" default:"30m"`
	Backend    string        `envconfig:"INVISIMART_CART_BACKEND" default:"memory"`
}

type HealthConfig struct {
	PollInterval time.Duration `envconfig:"INVISIMART_HEALTH_POLL_INTERVAL" default:"30s"`
}

type RedisConfig struct {
	URL          string        `envconfig:"INVISIMART_REDIS_URL"`
	Address      string        `envconfig:"INVISIMART_REDIS_ADDR"`
	Password     string        `envconfig:"INVISIMART_REDIS_PASSWORD"`
	DB           int           `envconfig:"INVISIMART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"INVISIMART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"INVISIMART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"INVISIMART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"INVISIMART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"INVISIMART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Configured reports whether a Redis connection was provided at all.
func (r RedisConfig) Configured() bool {
	return r.URL != "" || r.Address != ""
}
