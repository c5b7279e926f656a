package usage

import (
	"github.com/gin-gonic/gin"

	"creator-api/internal/interfaces/httpserver/handlers/usagehandler"
)

// UsageRoute handles usage-related routes
type UsageRoute struct {
	handler *usagehandler.UsageHandler
}

// NewUsageRoute creates a new UsageRoute
func NewUsageRoute(handler *usagehandler.UsageHandler) *UsageRoute {
	return &UsageRoute{handler: handler}
}

// RegisterRouter registers usage routes on the given router
func (r *UsageRoute) RegisterRouter(router gin.IRouter) {
	usageGroup := router.Group("/usage")
	{
		// User's own usage
		usageGroup.GET("/me", r.handler.GetMyUsage)
	}
}
