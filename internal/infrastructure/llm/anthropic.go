package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"resty.dev/v3"

	"creator-api/internal/domain/provider"
	"creator-api/internal/utils/httpclients"
)

const anthropicVersion = "2023-06-01"

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature float64            `json:"temperature"`
	Metadata    map[string]string  `json:"metadata,omitempty"`
}

type anthropicResponse struct {
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

type anthropicError struct {
	Type  string `json:"type"`
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// AnthropicAdapter calls the Anthropic messages API.
type AnthropicAdapter struct {
	settings Settings
	client   *resty.Client
}

// NewAnthropic returns the Anthropic adapter.
func NewAnthropic(settings Settings) *AnthropicAdapter {
	return &AnthropicAdapter{
		settings: settings,
		client:   httpclients.NewClient("AnthropicClient"),
	}
}

func (a *AnthropicAdapter) Provider() provider.Provider { return provider.Anthropic }
func (a *AnthropicAdapter) Model() string               { return a.settings.Model }
func (a *AnthropicAdapter) Available() bool             { return a.settings.available() }

func (a *AnthropicAdapter) Generate(ctx context.Context, req provider.Request) (*provider.Completion, error) {
	if !a.Available() {
		return nil, provider.NewFailure(provider.Anthropic, provider.ErrProviderUnavailable)
	}

	var (
		result  anthropicResponse
		errBody anthropicError
	)
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("x-api-key", a.settings.APIKey).
		SetHeader("anthropic-version", anthropicVersion).
		SetBody(anthropicRequest{
			Model:       a.settings.Model,
			MaxTokens:   a.settings.Budget.For(req.Purpose),
			System:      req.System,
			Messages:    []anthropicMessage{{Role: "user", Content: req.User}},
			Temperature: defaultTemperature,
			Metadata:    map[string]string{"user_id": newSessionID()},
		}).
		SetResult(&result).
		SetError(&errBody).
		Post(a.settings.BaseURL + "/messages")
	if err != nil {
		return nil, provider.NewFailure(provider.Anthropic, err)
	}
	if resp.IsError() {
		msg := errBody.Error.Message
		if msg == "" {
			msg = strings.TrimSpace(resp.String())
		}
		return nil, provider.NewFailure(provider.Anthropic, fmt.Errorf("status %d: %s", resp.StatusCode(), msg))
	}

	var text strings.Builder
	for _, block := range result.Content {
		if block.Type == "" || block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return nil, provider.NewFailure(provider.Anthropic, errors.New("no text content in response"))
	}

	model := result.Model
	if model == "" {
		model = a.settings.Model
	}
	return &provider.Completion{
		Text:  strings.TrimSpace(text.String()),
		Model: model,
		Usage: provider.Usage{
			PromptTokens:     result.Usage.InputTokens,
			CompletionTokens: result.Usage.OutputTokens,
		},
	}, nil
}
