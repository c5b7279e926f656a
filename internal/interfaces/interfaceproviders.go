package interfaces

import (
	"github.com/google/wire"

	"creator-api/internal/interfaces/httpserver"
	"creator-api/internal/interfaces/httpserver/handlers"
)

var InterfacesProvider = wire.NewSet(
	handlers.HandlerProvider,
	httpserver.NewHttpServer,
)
