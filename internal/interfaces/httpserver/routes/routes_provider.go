package routes

import (
	"github.com/google/wire"

	v1 "creator-api/internal/interfaces/httpserver/routes/v1"
	"creator-api/internal/interfaces/httpserver/routes/v1/admin"
	"creator-api/internal/interfaces/httpserver/routes/v1/generation"
	"creator-api/internal/interfaces/httpserver/routes/v1/provider"
	"creator-api/internal/interfaces/httpserver/routes/v1/usage"
	"creator-api/internal/interfaces/httpserver/routes/v1/users"
)

var RouteProvider = wire.NewSet(
	v1.NewV1Route,
	admin.NewAdminRoute,
	generation.NewGenerationRoute,
	provider.NewProviderRoute,
	usage.NewUsageRoute,
	users.NewUsersRoute,
)
