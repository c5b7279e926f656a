// Package usage records one analytics row per provider attempt and summarizes them.
package usage

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AnalyticsRow is the advisory record of a single provider attempt.
type AnalyticsRow struct {
	ID               string
	UserID           string
	GenerationID     string
	Category         string
	Platform         string
	Provider         string
	Model            string
	ElapsedSeconds   float64
	Success          bool
	PromptTokens     int
	CompletionTokens int
	EstimatedCostUSD decimal.Decimal
	CreatedAt        time.Time
}

// ProviderSummary aggregates the rows of one provider.
type ProviderSummary struct {
	Provider              string          `json:"provider"`
	Attempts              int64           `json:"attempts"`
	Successes             int64           `json:"successes"`
	AvgElapsedSeconds     float64         `json:"avg_elapsed_seconds"`
	TotalPromptTokens     int64           `json:"total_prompt_tokens"`
	TotalCompletionTokens int64           `json:"total_completion_tokens"`
	EstimatedCostUSD      decimal.Decimal `json:"estimated_cost_usd"`
}

// Repository defines the interface for analytics data access
type Repository interface {
	// CreateBatch inserts all rows. A partial failure may leave some rows written.
	CreateBatch(ctx context.Context, rows []*AnalyticsRow) error

	// SummarizeByProvider aggregates a user's rows within [start, end].
	SummarizeByProvider(ctx context.Context, userID string, start, end time.Time) ([]ProviderSummary, error)
}

// Per-token prices in USD, keyed by model id.
var ModelPricing = map[string]struct {
	PromptPrice     decimal.Decimal
	CompletionPrice decimal.Decimal
}{
	"gpt-4o":                     {decimal.NewFromFloat(0.0000025), decimal.NewFromFloat(0.00001)},
	"gpt-4o-mini":                {decimal.NewFromFloat(0.00000015), decimal.NewFromFloat(0.0000006)},
	"claude-3-5-sonnet-20241022": {decimal.NewFromFloat(0.000003), decimal.NewFromFloat(0.000015)},
	"gemini-2.0-flash-exp":       {decimal.NewFromFloat(0.0000001), decimal.NewFromFloat(0.0000004)},
	"sonar-pro":                  {decimal.NewFromFloat(0.000003), decimal.NewFromFloat(0.000015)},
}

// CalculateCost estimates the cost of a call. Unknown models use a flat default.
func CalculateCost(model string, promptTokens, completionTokens int) decimal.Decimal {
	pricing, ok := ModelPricing[model]
	if !ok {
		pricing.PromptPrice = decimal.NewFromFloat(0.000003)
		pricing.CompletionPrice = decimal.NewFromFloat(0.000006)
	}

	promptCost := pricing.PromptPrice.Mul(decimal.NewFromInt(int64(promptTokens)))
	completionCost := pricing.CompletionPrice.Mul(decimal.NewFromInt(int64(completionTokens)))
	return promptCost.Add(completionCost)
}
