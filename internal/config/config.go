package config

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultTurnstileVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"
	DefaultGeocodeEndpoint    = "https://nominatim.openstreetmap.org/search"
	DefaultGeocodeUserAgent   = "realfoodfinder-app/1.0"
)

type Config struct {
	Env       string          `json:"env"`
	Http      HttpConfig      `json:"http"`
	Postgres  PostgresConfig  `json:"postgres"`
	Redis     RedisConfig     `json:"redis"`
	AdminKey  string          `json:"-"`
	Turnstile TurnstileConfig `json:"turnstile"`
	Geocode   GeocodeConfig   `json:"geocode"`
	Feedback  FeedbackConfig  `json:"feedback"`
}

type HttpConfig struct {
	Port            string        `json:"port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`

	// TrustProxyHeaders lets CF-Connecting-IP / X-Forwarded-For pick the
	// rate-limit bucket. Only safe behind a proxy that overwrites them.
	TrustProxyHeaders bool `json:"trust_proxy_headers"`
}

// PostgresConfig is empty (URL == "") when the in-memory store should be used.
type PostgresConfig struct {
	URL         string `json:"-"`
	AutoMigrate bool   `json:"auto_migrate"`

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type RedisConfig struct {
	Addr     string        `json:"addr"`
	Password string        `json:"password,omitempty"`
	DB       int           `json:"db"`
	TTL      time.Duration `json:"ttl"`
}

type TurnstileConfig struct {
	SiteKey       string        `json:"site_key"`
	SecretKey     string        `json:"-"`
	ExpectedHosts []string      `json:"expected_hosts"`
	VerifyURL     string        `json:"verify_url"`
	Timeout       time.Duration `json:"timeout"`
}

type GeocodeConfig struct {
	Provider  string        `json:"provider"`
	Endpoint  string        `json:"endpoint"`
	UserAgent string        `json:"user_agent"`
	Timeout   time.Duration `json:"timeout"`
	StaticLat float64       `json:"static_lat"`
	StaticLng float64       `json:"static_lng"`
}

type FeedbackConfig struct {
	Owner  string   `json:"owner"`
	Repo   string   `json:"repo"`
	Token  string   `json:"-"`
	Labels []string `json:"labels"`
}

// Enabled reports whether feedback can be forwarded to the issue tracker.
func (f FeedbackConfig) Enabled() bool {
	return f.Owner != "" && f.Repo != "" && f.Token != ""
}

func Load(ctx context.Context) (*Config, error) {

	stdLogger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLogger.Warn(".env load warning", slog.Any("error", err))
	}

	cfg := FromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stdLogger.Info("Config loaded successfully",
		slog.String("env", cfg.Env),
		slog.String("http_port", cfg.Http.Port),
		slog.Bool("postgres", cfg.Postgres.URL != ""),
		slog.String("redis_addr", cfg.Redis.Addr),
		slog.String("geocode_provider", cfg.Geocode.Provider),
		slog.Bool("feedback", cfg.Feedback.Enabled()))

	return cfg, nil
}

// FromEnv reads the process environment without touching .env files.
func FromEnv() *Config {
	return &Config{
		Env: getEnv("ENV", "local"),
		Http: HttpConfig{
			Port:            getEnv("HTTP_PORT", ":8080"),
			ReadTimeout:     getEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),

			TrustProxyHeaders: getEnvBool("TRUSTED_PROXY_HEADERS", false),
		},
		Postgres: PostgresConfig{
			URL:             getEnv("LOCAL_DATABASE_URL", getEnv("DATABASE_URL", "")),
			AutoMigrate:     getEnvBool("DB_AUTO_MIGRATE", false),
			MaxConns:        20,
			MinConns:        1,
			MaxConnLifetime: 1 * time.Hour,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      getEnvDuration("GEOCODE_CACHE_TTL", 24*time.Hour),
		},
		AdminKey: getEnv("ADMIN_DASHBOARD_KEY", ""),
		Turnstile: TurnstileConfig{
			SiteKey:       getEnv("TURNSTILE_SITE_KEY", ""),
			SecretKey:     getEnv("TURNSTILE_SECRET_KEY", ""),
			ExpectedHosts: getEnvList("TURNSTILE_EXPECTED_HOSTNAMES"),
			VerifyURL:     getEnv("TURNSTILE_VERIFY_URL", DefaultTurnstileVerifyURL),
			Timeout:       getEnvDuration("TURNSTILE_TIMEOUT", 10*time.Second),
		},
		Geocode: GeocodeConfig{
			Provider:  strings.ToLower(getEnv("GEOCODE_PROVIDER", "nominatim")),
			Endpoint:  getEnv("GEOCODE_ENDPOINT", DefaultGeocodeEndpoint),
			UserAgent: getEnv("GEOCODE_USER_AGENT", DefaultGeocodeUserAgent),
			Timeout:   getEnvDuration("GEOCODE_TIMEOUT", 10*time.Second),
			StaticLat: getEnvFloat("GEOCODE_STATIC_LAT", 0),
			StaticLng: getEnvFloat("GEOCODE_STATIC_LNG", 0),
		},
		Feedback: FeedbackConfig{
			Owner:  getEnv("GITHUB_FEEDBACK_OWNER", ""),
			Repo:   getEnv("GITHUB_FEEDBACK_REPO", ""),
			Token:  getEnv("GITHUB_FEEDBACK_TOKEN", ""),
			Labels: getEnvListDefault("GITHUB_FEEDBACK_LABELS", []string{"feedback"}),
		},
	}
}

// IsProduction is true for ENV=prod or ENV=production.
func (c *Config) IsProduction() bool {
	switch strings.ToLower(c.Env) {
	case "prod", "production":
		return true
	}
	return false
}

func (c *Config) Validate() error {

	if c.Http.Port == "" || (len(c.Http.Port) > 0 && c.Http.Port[0] != ':') {
		return errors.New("HTTP_PORT must start with ':' like ':8080'")
	}

	switch c.Geocode.Provider {
	case "nominatim", "static":
	default:
		return errors.New("GEOCODE_PROVIDER must be one of: nominatim, static")
	}

	if c.Geocode.StaticLat < -90 || c.Geocode.StaticLat > 90 ||
		c.Geocode.StaticLng < -180 || c.Geocode.StaticLng > 180 {
		return errors.New("GEOCODE_STATIC_LAT/GEOCODE_STATIC_LNG out of range")
	}

	return nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvList(key string) []string {
	return getEnvListDefault(key, nil)
}

// getEnvListDefault splits a comma separated variable, dropping blanks.
func getEnvListDefault(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
