// Package llm implements provider.Adapter for each supported vendor.
package llm

import (
	"strings"

	"github.com/google/uuid"

	"creator-api/internal/config"
	"creator-api/internal/domain/provider"
	"creator-api/internal/infrastructure/metrics"
)

// Default model ids per provider.
const (
	DefaultOpenAIModel     = "gpt-4o"
	DefaultAnthropicModel  = "claude-3-5-sonnet-20241022"
	DefaultGeminiModel     = "gemini-2.0-flash-exp"
	DefaultPerplexityModel = "sonar-pro"
)

const defaultTemperature = 0.7

// Settings is the construction-time configuration of one adapter.
type Settings struct {
	APIKey  string
	BaseURL string
	Model   string
	Budget  provider.Budget
}

func (s Settings) available() bool {
	return strings.TrimSpace(s.APIKey) != ""
}

// SettingsFor derives the settings of p from the loaded config, applying any
// provider catalog override.
func SettingsFor(cfg *config.Config, p provider.Provider) Settings {
	s := Settings{
		Budget: provider.Budget{
			Caption:  cfg.CaptionMaxTokens,
			Hashtags: cfg.HashtagMaxTokens,
			Default:  cfg.DefaultMaxTokens,
		},
	}

	switch p {
	case provider.OpenAI:
		s.APIKey, s.BaseURL, s.Model = cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, DefaultOpenAIModel
	case provider.Anthropic:
		s.APIKey, s.BaseURL, s.Model = cfg.AnthropicAPIKey, cfg.AnthropicBaseURL, DefaultAnthropicModel
	case provider.Gemini:
		s.APIKey, s.BaseURL, s.Model = cfg.GeminiAPIKey, cfg.GeminiBaseURL, DefaultGeminiModel
	case provider.Perplexity:
		s.APIKey, s.BaseURL, s.Model = cfg.PerplexityAPIKey, cfg.PerplexityBaseURL, DefaultPerplexityModel
	}

	if o, ok := cfg.ProviderCatalog.Override(string(p)); ok {
		if o.Model != "" {
			s.Model = o.Model
		}
		if o.BaseURL != "" {
			s.BaseURL = o.BaseURL
		}
		if o.CaptionMaxTokens > 0 {
			s.Budget.Caption = o.CaptionMaxTokens
		}
		if o.HashtagMaxTokens > 0 {
			s.Budget.Hashtags = o.HashtagMaxTokens
		}
		if o.DefaultMaxTokens > 0 {
			s.Budget.Default = o.DefaultMaxTokens
		}
	}

	s.APIKey = strings.TrimSpace(s.APIKey)
	s.BaseURL = strings.TrimRight(strings.TrimSpace(s.BaseURL), "/")
	return s
}

// NewAdapters builds one adapter per known provider from the config. Adapters
// without a credential are still returned and report themselves unavailable.
func NewAdapters(cfg *config.Config) []provider.Adapter {
	adapters := []provider.Adapter{
		NewOpenAI(SettingsFor(cfg, provider.OpenAI)),
		NewAnthropic(SettingsFor(cfg, provider.Anthropic)),
		NewGemini(SettingsFor(cfg, provider.Gemini)),
		NewPerplexity(SettingsFor(cfg, provider.Perplexity)),
	}
	for _, a := range adapters {
		metrics.SetProviderAvailable(string(a.Provider()), a.Available())
	}
	return adapters
}

// newSessionID keeps vendors from stitching unrelated calls into one conversation.
func newSessionID() string {
	return uuid.NewString()
}
