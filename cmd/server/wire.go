//go:build wireinject

package main

import (
	"github.com/google/wire"

	"creator-api/internal/domain"
	"creator-api/internal/infrastructure"
	"creator-api/internal/interfaces"
	"creator-api/internal/interfaces/httpserver/routes"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		routes.RouteProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
