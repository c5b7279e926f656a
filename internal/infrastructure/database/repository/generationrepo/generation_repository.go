package generationrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	"creator-api/internal/domain/generation"
	"creator-api/internal/infrastructure/database/dbschema"
	"creator-api/internal/utils/platformerrors"
)

type GenerationGormRepository struct {
	db *gorm.DB
}

var _ generation.Repository = (*GenerationGormRepository)(nil)

func NewGenerationGormRepository(db *gorm.DB) generation.Repository {
	return &GenerationGormRepository{db: db}
}

func (repo *GenerationGormRepository) Create(ctx context.Context, record *generation.Record) error {
	entity, err := dbschema.NewSchemaGenerationResult(record)
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeInternal,
			"failed to encode generation record",
			err,
			"5a2d7e91-0c4b-4f38-b6e2-93f1a8c7d046",
		)
	}
	if err := repo.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create generation record",
			err,
			"d81f4c3a-6b29-4e07-a5d8-2c9e7b1f0a63",
		)
	}
	return nil
}

// FindByID reads from the primary so a record is visible right after Create.
func (repo *GenerationGormRepository) FindByID(ctx context.Context, id string) (*generation.Record, error) {
	var entity dbschema.GenerationResult
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
			"generation not found",
			generation.ErrNotFound,
			"2e7c9b14-f05a-4d83-8c61-b4a3d9e2f715",
		)
	}
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find generation by ID",
			err,
			"b3f08a6d-2c51-4e97-9d14-7a6e5c8b2f30",
		)
	}
	record, err := entity.EtoD()
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeInternal,
			"failed to decode generation record",
			err,
			"6c4e1f92-a8d7-4b35-b0e6-1f3d9a7c5e28",
		)
	}
	return record, nil
}

func (repo *GenerationGormRepository) List(ctx context.Context, filter generation.ListFilter) ([]*generation.Record, int64, error) {
	query := repo.db.WithContext(ctx).
		Model(&dbschema.GenerationResult{}).
		Where("user_id = ?", filter.UserID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to count generations",
			err,
			"8f1a3d5c-7e29-4b64-a0c8-e5d2b9f17a43",
		)
	}

	var entities []dbschema.GenerationResult
	if err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&entities).Error; err != nil {
		return nil, 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list generations",
			err,
			"a47d2e08-93c1-4f5b-b8e6-0d1c7f4a9b52",
		)
	}

	records := make([]*generation.Record, 0, len(entities))
	for i := range entities {
		record, err := entities[i].EtoD()
		if err != nil {
			return nil, 0, platformerrors.NewError(
				ctx,
				platformerrors.LayerRepository,
				platformerrors.ErrorTypeInternal,
				"failed to decode generation record",
				err,
				"f2b9c7e4-5a16-4d08-93e1-c6a8d0b3f759",
			)
		}
		records = append(records, record)
	}
	return records, total, nil
}
