package usagerepo

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"creator-api/internal/domain/usage"
	"creator-api/internal/infrastructure/database/dbschema"
	"creator-api/internal/utils/platformerrors"
)

const batchSize = 100

type UsageGormRepository struct {
	db *gorm.DB
}

var _ usage.Repository = (*UsageGormRepository)(nil)

func NewUsageGormRepository(db *gorm.DB) usage.Repository {
	return &UsageGormRepository{db: db}
}

func (repo *UsageGormRepository) CreateBatch(ctx context.Context, rows []*usage.AnalyticsRow) error {
	if len(rows) == 0 {
		return nil
	}
	entities := make([]*dbschema.UsageAnalytics, 0, len(rows))
	for _, row := range rows {
		entities = append(entities, dbschema.NewSchemaUsageAnalytics(row))
	}
	if err := repo.db.WithContext(ctx).CreateInBatches(entities, batchSize).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to write usage analytics",
			err,
			"3d8b6f1e-c27a-4905-8e4d-b1f7a2c9e063",
		)
	}
	return nil
}

type providerSummaryRow struct {
	Provider              string          `gorm:"column:provider"`
	Attempts              int64           `gorm:"column:attempts"`
	Successes             int64           `gorm:"column:successes"`
	AvgElapsedSeconds     float64         `gorm:"column:avg_elapsed_seconds"`
	TotalPromptTokens     int64           `gorm:"column:total_prompt_tokens"`
	TotalCompletionTokens int64           `gorm:"column:total_completion_tokens"`
	EstimatedCostUSD      decimal.Decimal `gorm:"column:estimated_cost_usd"`
}

func (repo *UsageGormRepository) SummarizeByProvider(ctx context.Context, userID string, start, end time.Time) ([]usage.ProviderSummary, error) {
	var rows []providerSummaryRow
	err := repo.db.WithContext(ctx).
		Model(&dbschema.UsageAnalytics{}).
		Select(`
			provider,
			COUNT(*) as attempts,
			SUM(CASE WHEN success THEN 1 ELSE 0 END) as successes,
			COALESCE(AVG(elapsed_seconds), 0) as avg_elapsed_seconds,
			COALESCE(SUM(prompt_tokens), 0) as total_prompt_tokens,
			COALESCE(SUM(completion_tokens), 0) as total_completion_tokens,
			COALESCE(SUM(estimated_cost_usd), 0) as estimated_cost_usd
		`).
		Where("user_id = ? AND created_at >= ? AND created_at <= ?", userID, start, end).
		Group("provider").
		Order("provider").
		Scan(&rows).Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to summarize usage analytics",
			err,
			"c9e25a7b-14f3-4d86-a2b0-8e6f3d1c7a94",
		)
	}

	out := make([]usage.ProviderSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, usage.ProviderSummary{
			Provider:              r.Provider,
			Attempts:              r.Attempts,
			Successes:             r.Successes,
			AvgElapsedSeconds:     r.AvgElapsedSeconds,
			TotalPromptTokens:     r.TotalPromptTokens,
			TotalCompletionTokens: r.TotalCompletionTokens,
			EstimatedCostUSD:      r.EstimatedCostUSD,
		})
	}
	return out, nil
}
