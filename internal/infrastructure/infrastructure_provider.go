package infrastructure

import (
	"context"
	"time"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"creator-api/internal/config"
	"creator-api/internal/infrastructure/auth"
	"creator-api/internal/infrastructure/crontab"
	"creator-api/internal/infrastructure/database"
	"creator-api/internal/infrastructure/database/repository"
	"creator-api/internal/infrastructure/llm"
	"creator-api/internal/infrastructure/logger"
	"creator-api/internal/infrastructure/ratelimit"
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	if cfg := config.GetGlobal(); cfg != nil {
		return cfg, nil
	}
	return config.Load()
}

// ProvideLogger installs the configured level and format as the global logger.
func ProvideLogger(cfg *config.Config) (zerolog.Logger, error) {
	return logger.New(cfg.LogLevel, cfg.LogFormat)
}

// ProvideJWTValidator resolves the JWKS endpoint and loads the key set.
func ProvideJWTValidator(cfg *config.Config, log zerolog.Logger) (auth.Validator, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	jwksURL, err := cfg.ResolveJWKSURL(ctx)
	if err != nil {
		return nil, err
	}
	return auth.NewJWKSValidator(context.Background(), auth.Options{
		JWKSURL:         jwksURL,
		Issuer:          cfg.Issuer,
		Audience:        cfg.Audience,
		AuthorizedParty: cfg.AuthorizedParty,
		RefreshEvery:    cfg.RefreshJWKSInterval,
		ClockSkew:       cfg.AuthClockSkew,
	}, log)
}

// ProvideDatabase provides a database connection
func ProvideDatabase(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.NewDB(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		log.Info().Msg("running database migrations")
		if err := database.AutoMigrate(context.Background(), db); err != nil {
			log.Error().Err(err).Msg("failed to run database migrations")
			return nil, err
		}
	}

	return db, nil
}

// ProvideRedisClient returns nil when REDIS_URL is unset.
func ProvideRedisClient(cfg *config.Config) (*redis.Client, error) {
	return ratelimit.NewRedisClient(cfg)
}

// ProvideRateLimiter picks the redis or in-memory limiter.
func ProvideRateLimiter(cfg *config.Config, client *redis.Client, log zerolog.Logger) ratelimit.Limiter {
	return ratelimit.New(context.Background(), cfg, client, log)
}

// Infrastructure holds all infrastructure dependencies
type Infrastructure struct {
	DB           *gorm.DB
	Redis        *redis.Client
	JWTValidator auth.Validator
	RateLimiter  ratelimit.Limiter
	Logger       zerolog.Logger
}

// NewInfrastructure creates a new infrastructure instance
func NewInfrastructure(
	db *gorm.DB,
	redisClient *redis.Client,
	jwtValidator auth.Validator,
	rateLimiter ratelimit.Limiter,
	logger zerolog.Logger,
) *Infrastructure {
	return &Infrastructure{
		DB:           db,
		Redis:        redisClient,
		JWTValidator: jwtValidator,
		RateLimiter:  rateLimiter,
		Logger:       logger,
	}
}

// Close releases the connections held by the infrastructure.
func (i *Infrastructure) Close() {
	if closer, ok := i.JWTValidator.(interface{ Close() }); ok {
		closer.Close()
	}
	if i.Redis != nil {
		if err := i.Redis.Close(); err != nil {
			i.Logger.Warn().Err(err).Msg("failed to close redis client")
		}
	}
	if i.DB != nil {
		if sqlDB, err := i.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				i.Logger.Warn().Err(err).Msg("failed to close database")
			}
		}
	}
}

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,
	ProvideLogger,

	// Database
	ProvideDatabase,

	// Repositories
	repository.RepositoryProvider,

	// LLM adapters
	llm.NewAdapters,

	// Auth
	ProvideJWTValidator,

	// Rate limiting
	ProvideRedisClient,
	ProvideRateLimiter,

	// Crontab for the daily quota reset
	crontab.NewCrontab,

	// Infrastructure struct
	NewInfrastructure,
)
