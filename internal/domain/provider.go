package domain

import (
	"github.com/google/wire"

	"creator-api/internal/config"
	"creator-api/internal/domain/generation"
	"creator-api/internal/domain/provider"
	"creator-api/internal/domain/quota"
	"creator-api/internal/domain/usage"
	"creator-api/internal/domain/user"
	"creator-api/internal/infrastructure/logger"
)

// ServiceProvider provides all domain services
var ServiceProvider = wire.NewSet(
	// User domain
	user.NewService,

	// Quota
	ProvideQuotaGate,

	// Usage analytics
	usage.NewService,

	// Generation
	provider.NewRegistry,
	ProvideOrchestratorConfig,
	generation.NewOrchestrator,
	generation.NewService,
)

func ProvideQuotaGate(cfg *config.Config, users user.Repository) *quota.Gate {
	return quota.NewGate(users, cfg.FreeDailyGenerationLimit)
}

func ProvideOrchestratorConfig(cfg *config.Config) generation.OrchestratorConfig {
	hashtagProvider, err := provider.Parse(cfg.HashtagProvider)
	if err != nil {
		log := logger.GetLogger()
		log.Warn().
			Str("hashtag_provider", cfg.HashtagProvider).
			Msg("unknown hashtag provider, falling back to openai")
		hashtagProvider = provider.OpenAI
	}
	return generation.OrchestratorConfig{
		HashtagProvider: hashtagProvider,
		ProviderTimeout: cfg.ProviderTimeout,
	}
}
