package requests

import (
	"strings"

	"creator-api/internal/domain/content"
	"creator-api/internal/domain/generation"
	"creator-api/internal/domain/provider"
)

// MaxDescriptionLength bounds content_description in runes.
const MaxDescriptionLength = 4000

// GenerateRequest is the body of POST /api/generate.
type GenerateRequest struct {
	UserID             string   `json:"user_id,omitempty"`
	Category           string   `json:"category" validate:"required,category" jsonschema:"enum=fashion,enum=fitness,enum=food,enum=travel,enum=business,enum=gaming,enum=music,enum=ideas,enum=event_space"`
	Platform           string   `json:"platform" validate:"required,platform" jsonschema:"enum=tiktok,enum=instagram,enum=youtube,enum=facebook"`
	ContentDescription string   `json:"content_description" validate:"notblank,max=4000" jsonschema:"minLength=1,maxLength=4000"`
	AIProviders        []string `json:"ai_providers,omitempty" validate:"omitempty,min=1,unique,dive,provider" jsonschema:"uniqueItems=true"`
}

// Normalize lower-cases the enum fields so "TikTok" and "tiktok" are equal.
func (r *GenerateRequest) Normalize() {
	r.UserID = strings.TrimSpace(r.UserID)
	r.Category = strings.ToLower(strings.TrimSpace(r.Category))
	r.Platform = strings.ToLower(strings.TrimSpace(r.Platform))
	for i, p := range r.AIProviders {
		r.AIProviders[i] = strings.ToLower(strings.TrimSpace(p))
	}
}

// ToDomain builds the domain request for userID. A nil provider list selects
// the default providers.
func (r *GenerateRequest) ToDomain(userID string) generation.Request {
	providers := provider.DefaultSelection()
	if r.AIProviders != nil {
		providers = make([]provider.Provider, len(r.AIProviders))
		for i, p := range r.AIProviders {
			providers[i] = provider.Provider(p)
		}
	}
	return generation.Request{
		UserID:      userID,
		Category:    content.Category(r.Category),
		Platform:    content.Platform(r.Platform),
		Description: r.ContentDescription,
		Providers:   providers,
	}
}

// UpdateTierRequest is the body of PATCH /v1/admin/users/:id/tier.
type UpdateTierRequest struct {
	Tier string `json:"tier" validate:"required,tier"`
}
