package requests

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creator-api/internal/domain/content"
	"creator-api/internal/domain/provider"
)

func TestGenerateRequestValidation(t *testing.T) {
	v := NewValidator()

	req := GenerateRequest{
		Category:           " Fashion ",
		Platform:           "TIKTOK",
		ContentDescription: "New drop",
		AIProviders:        []string{"OpenAI", " gemini"},
	}
	req.Normalize()
	require.NoError(t, v.Struct(&req))

	domainReq := req.ToDomain("user-1")
	assert.Equal(t, content.CategoryFashion, domainReq.Category)
	assert.Equal(t, content.PlatformTikTok, domainReq.Platform)
	assert.Equal(t, []provider.Provider{provider.OpenAI, provider.Gemini}, domainReq.Providers)
	assert.NoError(t, domainReq.Validate())

	req.AIProviders = nil
	assert.Equal(t, provider.DefaultSelection(), req.ToDomain("user-1").Providers)
}

func TestFieldErrors(t *testing.T) {
	v := NewValidator()

	req := GenerateRequest{
		Category:    "cooking",
		AIProviders: []string{"openai", "openai", "bard"},
	}
	fields := FieldErrors(v.Struct(&req))
	assert.Contains(t, fields["category"], "event_space")
	assert.Equal(t, "is required", fields["platform"])
	assert.Equal(t, "is required", fields["content_description"])
	assert.Equal(t, "must not contain duplicates", fields["ai_providers"])

	req = GenerateRequest{Category: "music", Platform: "facebook", ContentDescription: "Live set", AIProviders: []string{"openai", "bard"}}
	fields = FieldErrors(v.Struct(&req))
	assert.Contains(t, fields["ai_providers[1]"], "perplexity")
	assert.NotContains(t, fields, "ai_providers[0]")

	req.AIProviders = []string{}
	assert.Contains(t, FieldErrors(v.Struct(&req))["ai_providers"], "at least 1")

	tier := UpdateTierRequest{Tier: "gold"}
	assert.Contains(t, FieldErrors(v.Struct(&tier))["tier"], "premium")

	assert.Equal(t, map[string]string{"body": "unexpected EOF"}, FieldErrors(errors.New("unexpected EOF")))
}

func TestDescriptionLengthIsBounded(t *testing.T) {
	v := NewValidator()
	long := make([]rune, MaxDescriptionLength+1)
	for i := range long {
		long[i] = 'é'
	}

	req := GenerateRequest{Category: "food", Platform: "youtube", ContentDescription: string(long)}
	fields := FieldErrors(v.Struct(&req))
	assert.Contains(t, fields, "content_description")

	req.ContentDescription = string(long[:MaxDescriptionLength])
	assert.NoError(t, v.Struct(&req))
}
