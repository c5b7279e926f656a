package repository

import (
	"creator-api/internal/infrastructure/database/repository/generationrepo"
	"creator-api/internal/infrastructure/database/repository/usagerepo"
	"creator-api/internal/infrastructure/database/repository/userrepo"

	"github.com/google/wire"
)

var RepositoryProvider = wire.NewSet(
	userrepo.NewUserGormRepository,
	generationrepo.NewGenerationGormRepository,
	usagerepo.NewUsageGormRepository,
)
