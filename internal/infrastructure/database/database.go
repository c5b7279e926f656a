package database

import (
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"

	"creator-api/internal/config"
	"creator-api/internal/infrastructure/logger"
)

// SchemaName is the postgres schema every table of the service lives in.
const SchemaName = "creator_api"

// Config holds database configuration
type Config struct {
	DatabaseURL string
	// ReplicaURLs are routed read-only queries through dbresolver.
	ReplicaURLs []string
	MaxIdle     int
	MaxOpen     int
	MaxLifetime time.Duration
	LogLevel    gormlogger.LogLevel
}

// Connect creates a new database connection with the given configuration
func Connect(cfg Config) (*gorm.DB, error) {
	log := logger.GetLogger()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   SchemaName + ".",
			SingularTable: false,
		},
		Logger:  gormlogger.Default.LogMode(cfg.LogLevel),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		log.Error().
			Str("error_code", "0b6f2d1e-3c8a-4f57-9e21-7a4d5c6b8e90").
			Err(err).
			Msg("unable to connect to database")
		return nil, err
	}

	if replicas := replicaDialectors(cfg.ReplicaURLs); len(replicas) > 0 {
		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		}).
			SetMaxIdleConns(cfg.MaxIdle).
			SetMaxOpenConns(cfg.MaxOpen).
			SetConnMaxLifetime(cfg.MaxLifetime)
		if err := db.Use(resolver); err != nil {
			log.Error().
				Str("error_code", "6e1c9a42-8d73-4b0f-a5e6-2f9b1d3c7a58").
				Err(err).
				Msg("unable to register read replicas")
			return nil, err
		}
		log.Info().Int("replicas", len(replicas)).Msg("read replicas registered")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	sqlDB.SetMaxOpenConns(cfg.MaxOpen)
	sqlDB.SetConnMaxLifetime(cfg.MaxLifetime)

	log.Info().Msg("Successfully connected to database")
	return db, nil
}

// NewDB opens the primary database and any configured read replica.
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	var replicas []string
	if dsn := strings.TrimSpace(cfg.DBPostgresqlRead1DSN); dsn != "" {
		replicas = append(replicas, dsn)
	}
	return Connect(Config{
		DatabaseURL: cfg.DatabaseURL,
		ReplicaURLs: replicas,
		MaxIdle:     10,
		MaxOpen:     25,
		MaxLifetime: 1 * time.Hour,
		LogLevel:    gormlogger.Silent,
	})
}

func replicaDialectors(urls []string) []gorm.Dialector {
	var out []gorm.Dialector
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, postgres.Open(u))
		}
	}
	return out
}
