package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"creator-api/internal/domain/prompt"
	"creator-api/internal/domain/provider"
)

// ChatCompletionAdapter talks to any OpenAI-compatible chat completions API.
// It backs both OpenAI and Perplexity.
type ChatCompletionAdapter struct {
	provider     provider.Provider
	settings     Settings
	client       *openai.Client
	systemSuffix string
}

// NewOpenAI returns the OpenAI adapter.
func NewOpenAI(settings Settings) *ChatCompletionAdapter {
	return newChatCompletionAdapter(provider.OpenAI, settings, "")
}

// NewPerplexity returns the Perplexity adapter. Every system message it sends
// is extended with web-data guidance.
func NewPerplexity(settings Settings) *ChatCompletionAdapter {
	return newChatCompletionAdapter(provider.Perplexity, settings, prompt.WebDataGuidance)
}

func newChatCompletionAdapter(p provider.Provider, settings Settings, systemSuffix string) *ChatCompletionAdapter {
	clientConfig := openai.DefaultConfig(settings.APIKey)
	if settings.BaseURL != "" {
		clientConfig.BaseURL = settings.BaseURL
	}
	return &ChatCompletionAdapter{
		provider:     p,
		settings:     settings,
		client:       openai.NewClientWithConfig(clientConfig),
		systemSuffix: systemSuffix,
	}
}

func (a *ChatCompletionAdapter) Provider() provider.Provider { return a.provider }
func (a *ChatCompletionAdapter) Model() string               { return a.settings.Model }
func (a *ChatCompletionAdapter) Available() bool             { return a.settings.available() }

// Generate sends one system/user pair and returns the first choice.
func (a *ChatCompletionAdapter) Generate(ctx context.Context, req provider.Request) (*provider.Completion, error) {
	if !a.Available() {
		return nil, provider.NewFailure(a.provider, provider.ErrProviderUnavailable)
	}

	system := req.System
	if a.systemSuffix != "" {
		system = strings.TrimSpace(system + " " + a.systemSuffix)
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.settings.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		MaxTokens:   a.settings.Budget.For(req.Purpose),
		Temperature: defaultTemperature,
		User:        newSessionID(),
	})
	if err != nil {
		return nil, provider.NewFailure(a.provider, describeOpenAIError(err))
	}
	if len(resp.Choices) == 0 {
		return nil, provider.NewFailure(a.provider, errors.New("no choices in response"))
	}

	model := resp.Model
	if model == "" {
		model = a.settings.Model
	}
	return &provider.Completion{
		Text:  strings.TrimSpace(resp.Choices[0].Message.Content),
		Model: model,
		Usage: provider.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
		},
	}, nil
}

func describeOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("status %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("status %d: %w", reqErr.HTTPStatusCode, reqErr.Err)
	}
	return err
}
