package usage

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Service provides usage analytics business logic
type Service struct {
	repo Repository
}

// NewService creates a new usage service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RecordAttempts prices and stores the rows of one generation.
func (s *Service) RecordAttempts(ctx context.Context, rows []*AnalyticsRow) error {
	if len(rows) == 0 {
		return nil
	}
	for _, row := range rows {
		if row.EstimatedCostUSD.IsZero() {
			row.EstimatedCostUSD = CalculateCost(row.Model, row.PromptTokens, row.CompletionTokens)
		}
	}
	return s.repo.CreateBatch(ctx, rows)
}

// GetMyUsage retrieves the per-provider summary for a user within a date range.
func (s *Service) GetMyUsage(ctx context.Context, userID string, start, end time.Time) (*Report, error) {
	summaries, err := s.repo.SummarizeByProvider(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Period:     Period{StartDate: start, EndDate: end},
		ByProvider: make([]ProviderSummary, 0, len(summaries)),
		Total:      Totals{EstimatedCostUSD: decimal.Zero},
	}

	weightedElapsed := 0.0
	for _, summary := range summaries {
		report.Total.Attempts += summary.Attempts
		report.Total.Successes += summary.Successes
		report.Total.EstimatedCostUSD = report.Total.EstimatedCostUSD.Add(summary.EstimatedCostUSD)
		weightedElapsed += summary.AvgElapsedSeconds * float64(summary.Attempts)
		report.ByProvider = append(report.ByProvider, summary)
	}
	if report.Total.Attempts > 0 {
		report.Total.AvgElapsedSeconds = weightedElapsed / float64(report.Total.Attempts)
	}

	return report, nil
}

// Report represents the API response for usage queries
type Report struct {
	Period     Period            `json:"period"`
	Total      Totals            `json:"total"`
	ByProvider []ProviderSummary `json:"by_provider"`
}

// Totals sums every provider of a report.
type Totals struct {
	Attempts          int64           `json:"attempts"`
	Successes         int64           `json:"successes"`
	AvgElapsedSeconds float64         `json:"avg_elapsed_seconds"`
	EstimatedCostUSD  decimal.Decimal `json:"estimated_cost_usd"`
}

// Period represents a date range for usage queries
type Period struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}
