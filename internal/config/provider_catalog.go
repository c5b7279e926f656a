package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProviderOverride replaces the compiled-in model id or token budgets of one provider.
// Zero values keep the defaults.
type ProviderOverride struct {
	Model            string
	BaseURL          string
	CaptionMaxTokens int
	HashtagMaxTokens int
	DefaultMaxTokens int
}

// ProviderCatalog holds per-provider overrides keyed by lower-case provider id.
type ProviderCatalog struct {
	overrides map[string]ProviderOverride
}

// Override returns the override for the provider, if one was configured.
func (c *ProviderCatalog) Override(provider string) (ProviderOverride, bool) {
	if c == nil {
		return ProviderOverride{}, false
	}
	o, ok := c.overrides[strings.ToLower(strings.TrimSpace(provider))]
	return o, ok
}

type providerCatalogDocument struct {
	Providers map[string]providerCatalogEntry `yaml:"providers"`
}

type providerCatalogEntry struct {
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	MaxTokens *struct {
		Caption int `yaml:"caption"`
		Hashtag int `yaml:"hashtag"`
		Default int `yaml:"default"`
	} `yaml:"max_tokens"`
}

// LoadProviderCatalog parses the yaml file at the provided path.
//
//	providers:
//	  openai:
//	    model: gpt-4o
//	    max_tokens: {caption: 400, hashtag: 800, default: 2000}
func LoadProviderCatalog(path string) (*ProviderCatalog, error) {
	cleanPath := filepath.Clean(strings.TrimSpace(path))
	if cleanPath == "" || cleanPath == "." {
		return nil, errors.New("provider catalog path is empty")
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("read provider catalog %q: %w", cleanPath, err)
	}

	return ParseProviderCatalog(data)
}

// ParseProviderCatalog decodes a provider catalog document.
func ParseProviderCatalog(data []byte) (*ProviderCatalog, error) {
	var doc providerCatalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse provider catalog: %w", err)
	}

	catalog := &ProviderCatalog{overrides: make(map[string]ProviderOverride, len(doc.Providers))}
	for rawName, entry := range doc.Providers {
		name := strings.ToLower(strings.TrimSpace(rawName))
		if name == "" {
			continue
		}
		override := ProviderOverride{
			Model:   strings.TrimSpace(os.ExpandEnv(entry.Model)),
			BaseURL: strings.TrimSpace(os.ExpandEnv(entry.BaseURL)),
		}
		if entry.MaxTokens != nil {
			if entry.MaxTokens.Caption < 0 || entry.MaxTokens.Hashtag < 0 || entry.MaxTokens.Default < 0 {
				return nil, fmt.Errorf("providers.%s.max_tokens: values must not be negative", name)
			}
			override.CaptionMaxTokens = entry.MaxTokens.Caption
			override.HashtagMaxTokens = entry.MaxTokens.Hashtag
			override.DefaultMaxTokens = entry.MaxTokens.Default
		}
		catalog.overrides[name] = override
	}

	return catalog, nil
}
