package userrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"

	"creator-api/internal/domain/user"
	"creator-api/internal/infrastructure/database/dbschema"
	"creator-api/internal/utils/platformerrors"
)

type UserGormRepository struct {
	db *gorm.DB
}

var _ user.Repository = (*UserGormRepository)(nil)

func NewUserGormRepository(db *gorm.DB) user.Repository {
	return &UserGormRepository{db: db}
}

// FindByID always reads from the primary; quota checks must see the latest counters.
func (repo *UserGormRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	var entity dbschema.User
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where("id = ?", id).
		First(&entity).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound,
			"user not found",
			user.ErrNotFound,
			"4f0c7a1e-92b3-4d68-8e15-c3a7b9d2f041",
		)
	}
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find user by ID",
			err,
			"a9d3f8e4-21c7-4f5b-9a2e-6d8f9e1a2b3c",
		)
	}
	return entity.EtoD(), nil
}

func (repo *UserGormRepository) Upsert(ctx context.Context, usr *user.User) (*user.User, error) {
	schemaUser := dbschema.NewSchemaUser(usr)

	// Tier and counters belong to the quota gate and the admin surface.
	assignments := map[string]any{
		"email":      gorm.Expr("COALESCE(EXCLUDED.email, users.email)"),
		"name":       gorm.Expr("COALESCE(EXCLUDED.name, users.name)"),
		"updated_at": gorm.Expr("NOW()"),
	}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(assignments),
		}).
		Create(schemaUser).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to upsert user",
			err,
			"3b31d2bd-3260-4233-b0c8-09909fa0f154",
		)
	}

	var persisted dbschema.User
	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where("id = ?", schemaUser.ID).
		First(&persisted).Error; err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to reload upserted user",
			err,
			"f71f98cb-3154-4ad2-9076-7e58628a4098",
		)
	}

	return persisted.EtoD(), nil
}

// IncrementGenerations bumps both counters in a single UPDATE so concurrent
// generations of one user never lose an increment.
func (repo *UserGormRepository) IncrementGenerations(ctx context.Context, id string, delta int) error {
	result := repo.db.WithContext(ctx).
		Model(&dbschema.User{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"daily_generations_used": gorm.Expr("daily_generations_used + ?", delta),
			"total_generations":      gorm.Expr("total_generations + ?", delta),
			"updated_at":             gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to increment generation counters",
			result.Error,
			"c58e2b17-6a0d-4f93-b1e4-7d92a3c6f5b8",
		)
	}
	if result.RowsAffected == 0 {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound,
			"user not found",
			user.ErrNotFound,
			"0d4a8f63-1e7b-4c25-9a86-e2b5f7c1d394",
		)
	}
	return nil
}

func (repo *UserGormRepository) ResetDailyGenerations(ctx context.Context) (int64, error) {
	result := repo.db.WithContext(ctx).
		Model(&dbschema.User{}).
		Where("daily_generations_used > 0").
		UpdateColumns(map[string]any{
			"daily_generations_used": 0,
			"updated_at":             gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to reset daily generation counters",
			result.Error,
			"7b19e4c2-d36a-4f80-85b1-a2c9e0f6d713",
		)
	}
	return result.RowsAffected, nil
}

func (repo *UserGormRepository) UpdateTier(ctx context.Context, id string, tier user.Tier) (*user.User, error) {
	result := repo.db.WithContext(ctx).
		Model(&dbschema.User{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"tier":       string(tier),
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to update user tier",
			result.Error,
			"e2a6c90d-4b17-4f3e-9d58-1c7f8b3a6e25",
		)
	}
	if result.RowsAffected == 0 {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound,
			"user not found",
			user.ErrNotFound,
			"91c3f5a8-7e2d-4b06-a4f1-6d8e2c9b0a57",
		)
	}
	return repo.FindByID(ctx, id)
}
