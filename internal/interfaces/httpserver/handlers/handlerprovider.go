package handlers

import (
	"github.com/google/wire"

	"creator-api/internal/interfaces/httpserver/handlers/adminhandler"
	"creator-api/internal/interfaces/httpserver/handlers/generationhandler"
	"creator-api/internal/interfaces/httpserver/handlers/providerhandler"
	"creator-api/internal/interfaces/httpserver/handlers/usagehandler"
	"creator-api/internal/interfaces/httpserver/handlers/userhandler"
)

var HandlerProvider = wire.NewSet(
	generationhandler.NewGenerationHandler,
	providerhandler.NewProviderHandler,
	userhandler.NewUserHandler,
	usagehandler.NewUsageHandler,
	adminhandler.NewAdminUserHandler,
)
