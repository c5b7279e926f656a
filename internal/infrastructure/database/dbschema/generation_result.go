package dbschema

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"creator-api/internal/domain/content"
	"creator-api/internal/domain/generation"
	"creator-api/internal/domain/provider"
)

// GenerationResult stores one completed generation. Rows are never updated.
type GenerationResult struct {
	ID                 string         `gorm:"type:uuid;primaryKey"`
	UserID             string         `gorm:"type:varchar(255);not null;index:idx_generation_results_user_created,priority:1"`
	Category           string         `gorm:"type:varchar(32);not null"`
	Platform           string         `gorm:"type:varchar(32);not null"`
	ContentDescription string         `gorm:"type:text;not null"`
	AIResponses        datatypes.JSON `gorm:"column:ai_responses;type:jsonb;not null"`
	Hashtags           datatypes.JSON `gorm:"type:jsonb;not null"`
	CombinedResult     string         `gorm:"type:text;not null"`
	CreatedAt          time.Time      `gorm:"index:idx_generation_results_user_created,priority:2,sort:desc"`
}

// aiResponse is the jsonb element of ai_responses, one per requested provider.
type aiResponse struct {
	Provider         string  `json:"provider"`
	Model            string  `json:"model,omitempty"`
	Response         string  `json:"response"`
	ElapsedSeconds   float64 `json:"elapsed_seconds"`
	Success          bool    `json:"success"`
	Error            string  `json:"error,omitempty"`
	PromptTokens     int     `json:"prompt_tokens,omitempty"`
	CompletionTokens int     `json:"completion_tokens,omitempty"`
}

// NewSchemaGenerationResult converts a domain record into a schema instance.
func NewSchemaGenerationResult(r *generation.Record) (*GenerationResult, error) {
	responses := make([]aiResponse, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		responses = append(responses, aiResponse{
			Provider:         string(o.Provider),
			Model:            o.Model,
			Response:         o.Text,
			ElapsedSeconds:   o.ElapsedSeconds,
			Success:          o.Success,
			Error:            o.ErrorMessage,
			PromptTokens:     o.Usage.PromptTokens,
			CompletionTokens: o.Usage.CompletionTokens,
		})
	}
	responsesJSON, err := json.Marshal(responses)
	if err != nil {
		return nil, fmt.Errorf("encode ai_responses: %w", err)
	}

	hashtags := r.Hashtags
	if hashtags == nil {
		hashtags = []string{}
	}
	hashtagsJSON, err := json.Marshal(hashtags)
	if err != nil {
		return nil, fmt.Errorf("encode hashtags: %w", err)
	}

	return &GenerationResult{
		ID:                 r.ID,
		UserID:             r.UserID,
		Category:           string(r.Category),
		Platform:           string(r.Platform),
		ContentDescription: r.Description,
		AIResponses:        datatypes.JSON(responsesJSON),
		Hashtags:           datatypes.JSON(hashtagsJSON),
		CombinedResult:     r.CombinedResult,
		CreatedAt:          r.CreatedAt,
	}, nil
}

// EtoD converts a schema row back to the domain representation.
func (g *GenerationResult) EtoD() (*generation.Record, error) {
	var responses []aiResponse
	if len(g.AIResponses) > 0 {
		if err := json.Unmarshal(g.AIResponses, &responses); err != nil {
			return nil, fmt.Errorf("decode ai_responses of %s: %w", g.ID, err)
		}
	}
	hashtags := []string{}
	if len(g.Hashtags) > 0 {
		if err := json.Unmarshal(g.Hashtags, &hashtags); err != nil {
			return nil, fmt.Errorf("decode hashtags of %s: %w", g.ID, err)
		}
	}

	outcomes := make([]generation.Outcome, 0, len(responses))
	for _, resp := range responses {
		outcomes = append(outcomes, generation.Outcome{
			Provider:       provider.Provider(resp.Provider),
			Model:          resp.Model,
			Text:           resp.Response,
			ElapsedSeconds: resp.ElapsedSeconds,
			Success:        resp.Success,
			ErrorMessage:   resp.Error,
			Usage: provider.Usage{
				PromptTokens:     resp.PromptTokens,
				CompletionTokens: resp.CompletionTokens,
			},
		})
	}

	return &generation.Record{
		ID:             g.ID,
		UserID:         g.UserID,
		Category:       content.Category(g.Category),
		Platform:       content.Platform(g.Platform),
		Description:    g.ContentDescription,
		Outcomes:       outcomes,
		Hashtags:       hashtags,
		CombinedResult: g.CombinedResult,
		CreatedAt:      g.CreatedAt.UTC(),
	}, nil
}
