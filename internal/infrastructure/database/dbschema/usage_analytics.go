package dbschema

import (
	"time"

	"github.com/shopspring/decimal"

	"creator-api/internal/domain/usage"
)

// UsageAnalytics is one provider attempt.
type UsageAnalytics struct {
	ID               string          `gorm:"type:uuid;primaryKey"`
	UserID           string          `gorm:"type:varchar(255);not null;index:idx_usage_analytics_user_created,priority:1"`
	GenerationID     *string         `gorm:"type:uuid"`
	Category         string          `gorm:"type:varchar(32);not null"`
	Platform         string          `gorm:"type:varchar(32);not null"`
	Provider         string          `gorm:"type:varchar(32);not null;index"`
	Model            string          `gorm:"type:varchar(128);not null;default:''"`
	ElapsedSeconds   float64         `gorm:"not null;default:0"`
	Success          bool            `gorm:"not null"`
	PromptTokens     int             `gorm:"not null;default:0"`
	CompletionTokens int             `gorm:"not null;default:0"`
	EstimatedCostUSD decimal.Decimal `gorm:"column:estimated_cost_usd;type:numeric(14,8);not null;default:0"`
	CreatedAt        time.Time       `gorm:"index:idx_usage_analytics_user_created,priority:2"`
}

// TableName overrides the pluralized default.
func (UsageAnalytics) TableName() string {
	return "creator_api.usage_analytics"
}

// NewSchemaUsageAnalytics converts a domain row into a schema instance.
func NewSchemaUsageAnalytics(row *usage.AnalyticsRow) *UsageAnalytics {
	var generationID *string
	if row.GenerationID != "" {
		id := row.GenerationID
		generationID = &id
	}
	return &UsageAnalytics{
		ID:               row.ID,
		UserID:           row.UserID,
		GenerationID:     generationID,
		Category:         row.Category,
		Platform:         row.Platform,
		Provider:         row.Provider,
		Model:            row.Model,
		ElapsedSeconds:   row.ElapsedSeconds,
		Success:          row.Success,
		PromptTokens:     row.PromptTokens,
		CompletionTokens: row.CompletionTokens,
		EstimatedCostUSD: row.EstimatedCostUSD,
		CreatedAt:        row.CreatedAt,
	}
}

// EtoD converts a schema row back to the domain representation.
func (u *UsageAnalytics) EtoD() *usage.AnalyticsRow {
	row := &usage.AnalyticsRow{
		ID:               u.ID,
		UserID:           u.UserID,
		Category:         u.Category,
		Platform:         u.Platform,
		Provider:         u.Provider,
		Model:            u.Model,
		ElapsedSeconds:   u.ElapsedSeconds,
		Success:          u.Success,
		PromptTokens:     u.PromptTokens,
		CompletionTokens: u.CompletionTokens,
		EstimatedCostUSD: u.EstimatedCostUSD,
		CreatedAt:        u.CreatedAt,
	}
	if u.GenerationID != nil {
		row.GenerationID = *u.GenerationID
	}
	return row
}
