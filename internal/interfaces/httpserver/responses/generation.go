// Package responses shapes domain results into the HTTP wire format.
package responses

import (
	"time"

	"creator-api/internal/domain/generation"
	"creator-api/internal/domain/provider"
)

// AIResponse is one provider attempt, in requested order.
type AIResponse struct {
	Provider       string  `json:"provider"`
	Model          string  `json:"model,omitempty"`
	Response       string  `json:"response"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	Success        bool    `json:"success"`
	Error          *string `json:"error"`
}

// GenerationResponse is the body returned by the generation endpoint.
type GenerationResponse struct {
	ID                 string            `json:"id"`
	Category           string            `json:"category"`
	Platform           string            `json:"platform"`
	ContentDescription string            `json:"content_description"`
	Captions           map[string]string `json:"captions"`
	Hashtags           []string          `json:"hashtags"`
	CombinedResult     string            `json:"combined_result"`
	AIResponses        []AIResponse      `json:"ai_responses"`
	CreatedAt          string            `json:"created_at"`
}

// GenerationListResponse pages through a user's generations.
type GenerationListResponse struct {
	Data   []GenerationResponse `json:"data"`
	Total  int64                `json:"total"`
	Limit  int                  `json:"limit"`
	Offset int                  `json:"offset"`
}

// NewGenerationResponse converts a persisted record.
func NewGenerationResponse(record *generation.Record) GenerationResponse {
	aiResponses := make([]AIResponse, 0, len(record.Outcomes))
	for _, o := range record.Outcomes {
		resp := AIResponse{
			Provider:       string(o.Provider),
			Model:          o.Model,
			Response:       o.Text,
			ElapsedSeconds: o.ElapsedSeconds,
			Success:        o.Success,
		}
		if !o.Success {
			msg := o.ErrorMessage
			resp.Error = &msg
		}
		aiResponses = append(aiResponses, resp)
	}

	hashtags := record.Hashtags
	if hashtags == nil {
		hashtags = []string{}
	}

	return GenerationResponse{
		ID:                 record.ID,
		Category:           string(record.Category),
		Platform:           string(record.Platform),
		ContentDescription: record.Description,
		Captions:           captions(record.Captions()),
		Hashtags:           hashtags,
		CombinedResult:     record.CombinedResult,
		AIResponses:        aiResponses,
		CreatedAt:          record.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func captions(in map[provider.Provider]string) map[string]string {
	out := make(map[string]string, len(in))
	for p, text := range in {
		out[string(p)] = text
	}
	return out
}
