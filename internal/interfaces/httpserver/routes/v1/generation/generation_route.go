package generation

import (
	"github.com/gin-gonic/gin"

	"creator-api/internal/interfaces/httpserver/handlers/generationhandler"
)

// GenerationRoute registers the generate endpoint and stored generations.
type GenerationRoute struct {
	handler *generationhandler.GenerationHandler
}

// NewGenerationRoute creates a new GenerationRoute
func NewGenerationRoute(handler *generationhandler.GenerationHandler) *GenerationRoute {
	return &GenerationRoute{handler: handler}
}

// RegisterRouter registers the authenticated generation routes under router.
func (r *GenerationRoute) RegisterRouter(router gin.IRouter) {
	router.POST("/generate", r.handler.Generate)

	generations := router.Group("/generations")
	{
		generations.GET("", r.handler.List)
		generations.GET("/:id", r.handler.Get)
	}
}

// RegisterPublicRouter registers the request schema, which needs no token.
func (r *GenerationRoute) RegisterPublicRouter(router gin.IRouter) {
	router.GET("/generate/schema", r.handler.Schema)
}

// RegisterAPIRouter serves POST /api/generate for existing clients.
func (r *GenerationRoute) RegisterAPIRouter(router gin.IRouter) {
	router.Group("/api").POST("/generate", r.handler.Generate)
}
