package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"creator-api/internal/config"
	"creator-api/internal/interfaces/httpserver/routes/v1/admin"
	"creator-api/internal/interfaces/httpserver/routes/v1/generation"
	"creator-api/internal/interfaces/httpserver/routes/v1/provider"
	"creator-api/internal/interfaces/httpserver/routes/v1/usage"
	"creator-api/internal/interfaces/httpserver/routes/v1/users"
)

type V1Route struct {
	generation *generation.GenerationRoute
	provider   *provider.ProviderRoute
	users      *users.UsersRoute
	usage      *usage.UsageRoute
	adminRoute *admin.AdminRoute
}

func NewV1Route(
	generation *generation.GenerationRoute,
	provider *provider.ProviderRoute,
	users *users.UsersRoute,
	usage *usage.UsageRoute,
	adminRoute *admin.AdminRoute,
) *V1Route {
	return &V1Route{
		generation,
		provider,
		users,
		usage,
		adminRoute,
	}
}

// RegisterRouter registers the endpoints that need an authenticated principal.
// router is expected to carry the auth middleware.
func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")

	v1Route.generation.RegisterRouter(v1Router)
	v1Route.users.RegisterRouter(v1Router)
	v1Route.usage.RegisterRouter(v1Router)
	v1Route.adminRoute.RegisterRouter(v1Router)

	v1Route.generation.RegisterAPIRouter(router)
}

// RegisterPublicRouter registers endpoints that do not require authentication
func (v1Route *V1Route) RegisterPublicRouter(router gin.IRouter, readyz gin.HandlerFunc) {
	v1Router := router.Group("/v1")
	v1Router.GET("/version", GetVersion)
	v1Router.GET("/healthz", GetHealthz)
	v1Router.GET("/readyz", readyz)

	v1Route.provider.RegisterRouter(v1Router)
	v1Route.generation.RegisterPublicRouter(v1Router)
}

// GetVersion godoc
// @Summary Get API build version
// @Description Returns the current build version of the API server and environment reload timestamp.
// @Tags Server API
// @Produce json
// @Success 200 {object} map[string]string "Version information including version number and environment reload timestamp"
// @Router /v1/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":         config.Version,
		"env_reloaded_at": config.GetEnvReloadedAt().Format("2006-01-02T15:04:05Z07:00"),
	})
}

// GetHealthz godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API server. Used by orchestrators and monitoring systems.
// @Tags Server API
// @Produce json
// @Success 200 {object} map[string]string "Health status OK"
// @Router /v1/healthz [get]
func GetHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
