package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Global singleton for the crontab and server bootstrap.
var globalConfig *Config

// Config holds all environment backed configuration for creator-api.
type Config struct {
	// HTTP Server
	HTTPPort    int `env:"HTTP_PORT" envDefault:"8080"`
	MetricsPort int `env:"METRICS_PORT" envDefault:"9091"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	// PostgreSQL
	DatabaseURL          string `env:"DATABASE_URL,notEmpty"`
	DBPostgresqlRead1DSN string `env:"DB_POSTGRESQL_READ1_DSN"`
	AutoMigrate          bool   `env:"AUTO_MIGRATE" envDefault:"true"`

	// Auth
	JWKSURL             string        `env:"JWKS_URL"`
	OIDCDiscoveryURL    string        `env:"OIDC_DISCOVERY_URL"`
	Issuer              string        `env:"ISSUER,notEmpty"`
	Audience            string        `env:"AUDIENCE"`
	AuthorizedParty     string        `env:"AUTHORIZED_PARTY"`
	RefreshJWKSInterval time.Duration `env:"JWKS_REFRESH_INTERVAL" envDefault:"5m"`
	AuthClockSkew       time.Duration `env:"AUTH_CLOCK_SKEW" envDefault:"30s"`

	// AI providers. A missing or empty key makes the provider unavailable.
	OpenAIAPIKey      string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL     string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	AnthropicAPIKey   string `env:"ANTHROPIC_API_KEY"`
	AnthropicBaseURL  string `env:"ANTHROPIC_BASE_URL" envDefault:"https://api.anthropic.com/v1"`
	GeminiAPIKey      string `env:"GEMINI_API_KEY"`
	GeminiBaseURL     string `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	PerplexityAPIKey  string `env:"PERPLEXITY_API_KEY"`
	PerplexityBaseURL string `env:"PERPLEXITY_BASE_URL" envDefault:"https://api.perplexity.ai"`

	ProviderTimeout     time.Duration    `env:"PROVIDER_TIMEOUT" envDefault:"45s"`
	CaptionMaxTokens    int              `env:"CAPTION_MAX_TOKENS" envDefault:"400"`
	HashtagMaxTokens    int              `env:"HASHTAG_MAX_TOKENS" envDefault:"800"`
	DefaultMaxTokens    int              `env:"DEFAULT_MAX_TOKENS" envDefault:"2000"`
	HashtagProvider     string           `env:"HASHTAG_PROVIDER" envDefault:"openai"`
	ProviderCatalogFile string           `env:"PROVIDER_CATALOG_FILE"`
	ProviderCatalog     *ProviderCatalog `env:"-"`

	// Quota
	FreeDailyGenerationLimit int    `env:"FREE_DAILY_GENERATION_LIMIT" envDefault:"10"`
	DailyResetEnabled        bool   `env:"DAILY_RESET_ENABLED" envDefault:"true"`
	DailyResetCron           string `env:"DAILY_RESET_CRON" envDefault:"0 0 * * *"`

	// Rate limiting
	RedisURL           string  `env:"REDIS_URL"`
	RateLimitPerMinute float64 `env:"RATE_LIMIT_PER_MINUTE" envDefault:"60"`

	// Observability / Logging
	OTLPEndpoint     string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPHeaders      string `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	ServiceName      string `env:"SERVICE_NAME" envDefault:"creator-api"`
	ServiceNamespace string `env:"SERVICE_NAMESPACE" envDefault:"creator"`
	Environment      string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat        string `env:"LOG_FORMAT" envDefault:"console"`

	// Features
	EnableSwagger bool `env:"ENABLE_SWAGGER" envDefault:"true"`

	// Internal
	EnvReloadedAt time.Time
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if path := strings.TrimSpace(cfg.ProviderCatalogFile); path != "" {
		catalog, err := LoadProviderCatalog(path)
		if err != nil {
			return nil, fmt.Errorf("load provider catalog: %w", err)
		}
		cfg.ProviderCatalog = catalog
	}

	cfg.HashtagProvider = strings.ToLower(strings.TrimSpace(cfg.HashtagProvider))
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.EnvReloadedAt = time.Now()

	globalConfig = cfg

	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWKSURL == "" && c.OIDCDiscoveryURL == "" {
		return errors.New("either JWKS_URL or OIDC_DISCOVERY_URL must be provided")
	}

	if c.JWKSURL != "" {
		if _, err := url.ParseRequestURI(c.JWKSURL); err != nil {
			return fmt.Errorf("invalid JWKS_URL: %w", err)
		}
	}

	if c.OIDCDiscoveryURL != "" {
		if _, err := url.ParseRequestURI(c.OIDCDiscoveryURL); err != nil {
			return fmt.Errorf("invalid OIDC_DISCOVERY_URL: %w", err)
		}
	}

	if c.ProviderTimeout <= 0 {
		return errors.New("PROVIDER_TIMEOUT must be positive")
	}

	if c.FreeDailyGenerationLimit < 0 {
		return errors.New("FREE_DAILY_GENERATION_LIMIT must not be negative")
	}

	return nil
}

// ResolveJWKSURL returns the JWKS endpoint using either the explicit JWKS_URL or the OIDC discovery document.
func (c *Config) ResolveJWKSURL(ctx context.Context) (string, error) {
	if c.JWKSURL != "" {
		return c.JWKSURL, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.OIDCDiscoveryURL, nil)
	if err != nil {
		return "", fmt.Errorf("oidc discovery request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch oidc discovery: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("oidc discovery unexpected status: %s", resp.Status)
	}

	var doc struct {
		JWKSURL string `json:"jwks_uri"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return "", fmt.Errorf("decode oidc discovery: %w", err)
	}

	if doc.JWKSURL == "" {
		return "", errors.New("jwks_uri not found in discovery document")
	}

	return doc.JWKSURL, nil
}

// GetGlobal returns the config loaded by the last successful Load.
func GetGlobal() *Config {
	return globalConfig
}

// GetEnvReloadedAt returns when the environment was last loaded.
func GetEnvReloadedAt() time.Time {
	if globalConfig != nil {
		return globalConfig.EnvReloadedAt
	}
	return time.Time{}
}

var Version = "dev"

func IsDev() bool {
	return strings.HasPrefix(Version, "dev")
}
