package provider

import (
	"github.com/gin-gonic/gin"

	"creator-api/internal/interfaces/httpserver/handlers/providerhandler"
)

type ProviderRoute struct {
	handler *providerhandler.ProviderHandler
}

func NewProviderRoute(handler *providerhandler.ProviderHandler) *ProviderRoute {
	return &ProviderRoute{handler: handler}
}

func (r *ProviderRoute) RegisterRouter(router gin.IRouter) {
	providers := router.Group("/providers")
	providers.GET("", r.handler.ListProviders)
	providers.GET("/:provider", r.handler.GetProvider)
}
