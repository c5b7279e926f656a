package llm

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"resty.dev/v3"

	"creator-api/internal/domain/provider"
	"creator-api/internal/utils/httpclients"
)

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  struct {
		MaxOutputTokens int     `json:"maxOutputTokens"`
		Temperature     float64 `json:"temperature"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
	} `json:"usageMetadata"`
	ModelVersion string `json:"modelVersion"`
}

type geminiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// GeminiAdapter calls the Gemini generateContent API.
type GeminiAdapter struct {
	settings Settings
	client   *resty.Client
}

// NewGemini returns the Gemini adapter.
func NewGemini(settings Settings) *GeminiAdapter {
	return &GeminiAdapter{
		settings: settings,
		client:   httpclients.NewClient("GeminiClient"),
	}
}

func (a *GeminiAdapter) Provider() provider.Provider { return provider.Gemini }
func (a *GeminiAdapter) Model() string               { return a.settings.Model }
func (a *GeminiAdapter) Available() bool             { return a.settings.available() }

func (a *GeminiAdapter) Generate(ctx context.Context, req provider.Request) (*provider.Completion, error) {
	if !a.Available() {
		return nil, provider.NewFailure(provider.Gemini, provider.ErrProviderUnavailable)
	}

	body := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: req.System}}},
		Contents:          []geminiContent{{Role: "user", Parts: []geminiPart{{Text: req.User}}}},
	}
	body.GenerationConfig.MaxOutputTokens = a.settings.Budget.For(req.Purpose)
	body.GenerationConfig.Temperature = defaultTemperature

	var (
		result  geminiResponse
		errBody geminiError
	)
	endpoint := fmt.Sprintf("%s/models/%s:generateContent", a.settings.BaseURL, url.PathEscape(a.settings.Model))
	resp, err := a.client.R().
		SetContext(ctx).
		SetQueryParam("key", a.settings.APIKey).
		SetHeader("X-Session-Id", newSessionID()).
		SetBody(body).
		SetResult(&result).
		SetError(&errBody).
		Post(endpoint)
	if err != nil {
		return nil, provider.NewFailure(provider.Gemini, redactKey(err, a.settings.APIKey))
	}
	if resp.IsError() {
		msg := errBody.Error.Message
		if msg == "" {
			msg = strings.TrimSpace(resp.String())
		}
		return nil, provider.NewFailure(provider.Gemini, fmt.Errorf("status %d: %s", resp.StatusCode(), msg))
	}

	if len(result.Candidates) == 0 {
		return nil, provider.NewFailure(provider.Gemini, errors.New("no candidates in response"))
	}
	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	if text.Len() == 0 {
		return nil, provider.NewFailure(provider.Gemini, fmt.Errorf("empty candidate (finish reason %q)", result.Candidates[0].FinishReason))
	}

	model := result.ModelVersion
	if model == "" {
		model = a.settings.Model
	}
	return &provider.Completion{
		Text:  strings.TrimSpace(text.String()),
		Model: model,
		Usage: provider.Usage{
			PromptTokens:     result.UsageMetadata.PromptTokenCount,
			CompletionTokens: result.UsageMetadata.CandidatesTokenCount,
		},
	}, nil
}

// redactKey strips the query-string credential from transport errors, which
// embed the full request URL.
func redactKey(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	return &redactedError{msg: strings.ReplaceAll(err.Error(), key, "REDACTED"), err: err}
}

type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }
