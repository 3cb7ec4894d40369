package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	Environment string `toml:"environment"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// profiles
	ProfileCacheSizeMB     int `toml:"profile_cache_size_mb"`
	ProfileCacheTTLSeconds int `toml:"profile_cache_ttl_seconds"`
	ProfileLockTTLSeconds  int `toml:"profile_lock_ttl_seconds"`

	// gemini
	GeminiModel                 string `toml:"gemini_model"`
	GeminiRateLimitPerMin       int    `toml:"gemini_rate_limit_per_min"`
	GeminiRequestTimeoutSeconds int    `toml:"gemini_request_timeout_seconds"`
	MaxPhotoUploadSizeMB        int    `toml:"max_photo_upload_size_mb"`

	// calendar
	OAuthStateTTLSeconds int `toml:"oauth_state_ttl_seconds"`

	AllowedOrigins []string `toml:"allowed_origins"`
}

func (c *Config) ProfileLockTTL() time.Duration {
	return secondsOr(c.ProfileLockTTLSeconds, 10*time.Second)
}

func (c *Config) ProfileCacheTTL() time.Duration {
	return secondsOr(c.ProfileCacheTTLSeconds, 30*time.Second)
}

func (c *Config) GeminiRequestTimeout() time.Duration {
	return secondsOr(c.GeminiRequestTimeoutSeconds, 90*time.Second)
}

func (c *Config) GeminiRateLimit() int {
	if c.GeminiRateLimitPerMin <= 0 {
		return 10
	}
	return c.GeminiRateLimitPerMin
}

func (c *Config) MaxPhotoUploadBytes() int64 {
	if c.MaxPhotoUploadSizeMB <= 0 {
		return 10 << 20
	}
	return int64(c.MaxPhotoUploadSizeMB) << 20
}

func (c *Config) OAuthStateTTL() time.Duration {
	return secondsOr(c.OAuthStateTTLSeconds, 10*time.Minute)
}

func secondsOr(seconds int, fallback time.Duration) time.Duration {
	if seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}

	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	return cfg, nil
}

func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode toml config [%s]: %w", path, err)
	}
	return t.Get(env)
}

// Secrets are never kept in the TOML file.
type Secrets struct {
	GeminiAPIKey string `env:"GEMINI_API_KEY"`

	// GoogleClientConfigJSON holds either the OAuth client JSON itself or a path to it.
	GoogleClientConfigJSON string   `env:"GOOGLE_CLIENT_CONFIG_JSON"`
	GoogleRedirectURI      string   `env:"GOOGLE_REDIRECT_URI, default=http://localhost:5000/oauth2callback"`
	GoogleCalendarScopes   []string `env:"GOOGLE_CALENDAR_SCOPES, default=https://www.googleapis.com/auth/calendar"`

	// bcrypt hash of the secret clients send in X-HEALTHSTATS-TOKEN
	ClientSecretHash string `env:"HEALTHSTATS_CLIENT_SECRET_HASH"`
	RedisPassword    string `env:"HEALTHSTATS_REDIS_PASS"`

	SentryDSN        string `env:"SENTRY_DSN"`
	HoneycombEnabled bool   `env:"HONEYCOMB_ENABLED, default=false"`
	HoneycombAPIKey  string `env:"HONEYCOMB_API_KEY"`
	OtelServiceName  string `env:"OTEL_SERVICE_NAME"`
}

func LoadSecrets(ctx context.Context) (*Secrets, error) {
	return loadSecrets(ctx, envconfig.OsLookuper())
}

func loadSecrets(ctx context.Context, lookuper envconfig.Lookuper) (*Secrets, error) {
	var s Secrets
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &s,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("process env secrets: %w", err)
	}
	return &s, nil
}
