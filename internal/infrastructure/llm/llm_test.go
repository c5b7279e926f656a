package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creator-api/internal/config"
	"creator-api/internal/domain/prompt"
	"creator-api/internal/domain/provider"
)

func testSettings(baseURL string) Settings {
	return Settings{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Budget:  provider.Budget{Caption: 400, Hashtags: 800, Default: 2000},
	}
}

func captionRequest() provider.Request {
	return provider.Request{System: "You are a stylist.", User: "Write a caption.\n\nCaption:", Purpose: provider.PurposeCaption}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestSettingsForAppliesCatalog(t *testing.T) {
	catalog, err := config.ParseProviderCatalog([]byte(`
providers:
  anthropic:
    model: claude-3-5-haiku-latest
    max_tokens:
      caption: 300
`))
	require.NoError(t, err)

	cfg := &config.Config{
		AnthropicAPIKey:  " key ",
		AnthropicBaseURL: "https://api.anthropic.com/v1/",
		CaptionMaxTokens: 400,
		HashtagMaxTokens: 800,
		DefaultMaxTokens: 2000,
		ProviderCatalog:  catalog,
	}

	s := SettingsFor(cfg, provider.Anthropic)
	assert.Equal(t, "key", s.APIKey)
	assert.Equal(t, "https://api.anthropic.com/v1", s.BaseURL)
	assert.Equal(t, "claude-3-5-haiku-latest", s.Model)
	assert.Equal(t, provider.Budget{Caption: 300, Hashtags: 800, Default: 2000}, s.Budget)

	assert.Equal(t, DefaultGeminiModel, SettingsFor(cfg, provider.Gemini).Model)
}

func TestNewAdaptersAvailability(t *testing.T) {
	cfg := &config.Config{OpenAIAPIKey: "sk-test", GeminiAPIKey: "   "}

	adapters := NewAdapters(cfg)
	require.Len(t, adapters, 4)

	got := map[provider.Provider]bool{}
	for _, a := range adapters {
		got[a.Provider()] = a.Available()
	}
	assert.Equal(t, map[provider.Provider]bool{
		provider.OpenAI:     true,
		provider.Anthropic:  false,
		provider.Gemini:     false,
		provider.Perplexity: false,
	}, got)

	_, err := provider.NewRegistry(adapters)
	assert.NoError(t, err)
}

func TestOpenAIGenerate(t *testing.T) {
	var captured struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
		User      string `json:"user"`
		Messages  []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		writeJSON(w, http.StatusOK, map[string]any{
			"id":    "chatcmpl-1",
			"model": "gpt-4o-2024-08-06",
			"choices": []map[string]any{
				{"index": 0, "message": map[string]string{"role": "assistant", "content": "  Autumn layers done right.  "}},
			},
			"usage": map[string]int{"prompt_tokens": 42, "completion_tokens": 7, "total_tokens": 49},
		})
	}))
	defer srv.Close()

	settings := testSettings(srv.URL)
	settings.Model = DefaultOpenAIModel
	a := NewOpenAI(settings)

	c, err := a.Generate(context.Background(), captionRequest())
	require.NoError(t, err)

	assert.Equal(t, "Autumn layers done right.", c.Text)
	assert.Equal(t, "gpt-4o-2024-08-06", c.Model)
	assert.Equal(t, provider.Usage{PromptTokens: 42, CompletionTokens: 7}, c.Usage)

	assert.Equal(t, DefaultOpenAIModel, captured.Model)
	assert.Equal(t, 400, captured.MaxTokens)
	assert.NotEmpty(t, captured.User)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "You are a stylist.", captured.Messages[0].Content)
	assert.Equal(t, "user", captured.Messages[1].Role)
}

func TestOpenAIFreshSessionPerCall(t *testing.T) {
	var users []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			User string `json:"user"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		users = append(users, body.User)
		writeJSON(w, http.StatusOK, map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": "ok"}}},
		})
	}))
	defer srv.Close()

	a := NewOpenAI(testSettings(srv.URL))
	for i := 0; i < 2; i++ {
		_, err := a.Generate(context.Background(), captionRequest())
		require.NoError(t, err)
	}

	require.Len(t, users, 2)
	assert.NotEqual(t, users[0], users[1])
}

func TestPerplexityAppendsWebGuidance(t *testing.T) {
	var system string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		system = body.Messages[0].Content
		writeJSON(w, http.StatusOK, map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": "Trending now"}}},
		})
	}))
	defer srv.Close()

	a := NewPerplexity(testSettings(srv.URL))
	_, err := a.Generate(context.Background(), captionRequest())
	require.NoError(t, err)

	assert.Equal(t, "You are a stylist. "+prompt.WebDataGuidance, system)
	assert.Equal(t, provider.Perplexity, a.Provider())
}

func TestOpenAIErrorBecomesFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusTooManyRequests, map[string]any{
			"error": map[string]string{"message": "Rate limit reached", "type": "rate_limit_error"},
		})
	}))
	defer srv.Close()

	_, err := NewOpenAI(testSettings(srv.URL)).Generate(context.Background(), captionRequest())
	require.Error(t, err)

	var failure *provider.Failure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, provider.OpenAI, failure.Provider)
	assert.Contains(t, failure.Message, "429")
	assert.Contains(t, failure.Message, "Rate limit reached")
}

func TestAnthropicGenerate(t *testing.T) {
	var captured anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		writeJSON(w, http.StatusOK, map[string]any{
			"model":   "claude-3-5-sonnet-20241022",
			"content": []map[string]string{{"type": "text", "text": "Sweater weather is here.\n"}},
			"usage":   map[string]int{"input_tokens": 30, "output_tokens": 9},
		})
	}))
	defer srv.Close()

	settings := testSettings(srv.URL)
	settings.Model = DefaultAnthropicModel
	c, err := NewAnthropic(settings).Generate(context.Background(), provider.Request{
		System: "sys", User: "user", Purpose: provider.PurposeHashtags,
	})
	require.NoError(t, err)

	assert.Equal(t, "Sweater weather is here.", c.Text)
	assert.Equal(t, provider.Usage{PromptTokens: 30, CompletionTokens: 9}, c.Usage)
	assert.Equal(t, DefaultAnthropicModel, captured.Model)
	assert.Equal(t, 800, captured.MaxTokens)
	assert.Equal(t, "sys", captured.System)
	assert.NotEmpty(t, captured.Metadata["user_id"])
	require.Len(t, captured.Messages, 1)
	assert.Equal(t, "user", captured.Messages[0].Content)
}

func TestAnthropicErrorBecomesFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"type":  "error",
			"error": map[string]string{"type": "overloaded_error", "message": "Overloaded"},
		})
	}))
	defer srv.Close()

	_, err := NewAnthropic(testSettings(srv.URL)).Generate(context.Background(), captionRequest())

	var failure *provider.Failure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, "anthropic: status 503: Overloaded", failure.Error())
}

func TestGeminiGenerate(t *testing.T) {
	var captured geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.0-flash-exp:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.NotEmpty(t, r.Header.Get("X-Session-Id"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		writeJSON(w, http.StatusOK, map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"role": "model", "parts": []map[string]string{{"text": "Cozy "}, {"text": "season."}}}},
			},
			"usageMetadata": map[string]int{"promptTokenCount": 20, "candidatesTokenCount": 4},
		})
	}))
	defer srv.Close()

	settings := testSettings(srv.URL)
	settings.Model = DefaultGeminiModel
	c, err := NewGemini(settings).Generate(context.Background(), captionRequest())
	require.NoError(t, err)

	assert.Equal(t, "Cozy season.", c.Text)
	assert.Equal(t, DefaultGeminiModel, c.Model)
	assert.Equal(t, provider.Usage{PromptTokens: 20, CompletionTokens: 4}, c.Usage)
	assert.Equal(t, 400, captured.GenerationConfig.MaxOutputTokens)
	require.NotNil(t, captured.SystemInstruction)
	assert.Equal(t, "You are a stylist.", captured.SystemInstruction.Parts[0].Text)
}

func TestGeminiNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"candidates": []any{}})
	}))
	defer srv.Close()

	_, err := NewGemini(testSettings(srv.URL)).Generate(context.Background(), captionRequest())
	assert.ErrorContains(t, err, "no candidates")
}

func TestUnavailableAdaptersDoNotCallOut(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	settings := testSettings(srv.URL)
	settings.APIKey = ""
	adapters := []provider.Adapter{NewOpenAI(settings), NewAnthropic(settings), NewGemini(settings), NewPerplexity(settings)}

	for _, a := range adapters {
		assert.False(t, a.Available())
		_, err := a.Generate(context.Background(), captionRequest())
		assert.ErrorIs(t, err, provider.ErrProviderUnavailable, a.Provider())
	}
	assert.False(t, called)
}

func TestRedactKey(t *testing.T) {
	err := redactKey(errors.New(`Post "https://x/models/m:generateContent?key=secret": dial tcp`), "secret")
	assert.NotContains(t, err.Error(), "secret")
	assert.Contains(t, err.Error(), "REDACTED")
}
