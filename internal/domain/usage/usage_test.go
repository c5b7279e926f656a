package usage_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creator-api/internal/domain/usage"
	"creator-api/internal/testhelpers"
)

func TestCalculateCost(t *testing.T) {
	cost := usage.CalculateCost("gpt-4o", 1000, 100)
	assert.True(t, decimal.RequireFromString("0.0035").Equal(cost), cost.String())

	assert.True(t, usage.CalculateCost("unknown-model", 0, 0).IsZero())
}

func TestRecordAttemptsPricesRows(t *testing.T) {
	repo := testhelpers.NewAnalyticsRepo()
	svc := usage.NewService(repo)

	rows := []*usage.AnalyticsRow{
		{UserID: "u1", Provider: "openai", Model: "gpt-4o", PromptTokens: 1000, CompletionTokens: 100, Success: true},
		{UserID: "u1", Provider: "anthropic", Model: "claude-3-5-sonnet-20241022"},
	}
	require.NoError(t, svc.RecordAttempts(context.Background(), rows))

	require.Equal(t, 2, repo.Count())
	assert.False(t, repo.Rows[0].EstimatedCostUSD.IsZero())
	assert.True(t, repo.Rows[1].EstimatedCostUSD.IsZero())
	assert.NoError(t, svc.RecordAttempts(context.Background(), nil))
}

func TestGetMyUsage(t *testing.T) {
	repo := testhelpers.NewAnalyticsRepo()
	svc := usage.NewService(repo)
	now := time.Now().UTC()

	require.NoError(t, svc.RecordAttempts(context.Background(), []*usage.AnalyticsRow{
		{UserID: "u1", Provider: "openai", Model: "gpt-4o", ElapsedSeconds: 2, Success: true, CreatedAt: now},
		{UserID: "u1", Provider: "openai", Model: "gpt-4o", ElapsedSeconds: 4, Success: false, CreatedAt: now},
		{UserID: "u1", Provider: "gemini", Model: "gemini-2.0-flash-exp", ElapsedSeconds: 3, Success: true, CreatedAt: now},
		{UserID: "u2", Provider: "gemini", Model: "gemini-2.0-flash-exp", ElapsedSeconds: 9, Success: true, CreatedAt: now},
	}))

	report, err := svc.GetMyUsage(context.Background(), "u1", now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, int64(3), report.Total.Attempts)
	assert.Equal(t, int64(2), report.Total.Successes)
	assert.InDelta(t, 3.0, report.Total.AvgElapsedSeconds, 1e-9)
	require.Len(t, report.ByProvider, 2)
	assert.Equal(t, "gemini", report.ByProvider[0].Provider)
	assert.InDelta(t, 3.0, report.ByProvider[1].AvgElapsedSeconds, 1e-9)
}
