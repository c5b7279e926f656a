package admin

import (
	"github.com/gin-gonic/gin"

	"creator-api/internal/interfaces/httpserver/handlers/adminhandler"
	"creator-api/internal/interfaces/httpserver/middlewares"
)

// AdminRoute groups the admin-only endpoints behind RequireAdmin.
type AdminRoute struct {
	userHandler *adminhandler.AdminUserHandler
}

func NewAdminRoute(userHandler *adminhandler.AdminUserHandler) *AdminRoute {
	return &AdminRoute{userHandler: userHandler}
}

func (r *AdminRoute) RegisterRouter(router gin.IRouter) {
	adminGroup := router.Group("/admin", middlewares.RequireAdmin())
	adminGroup.PATCH("/users/:id/tier", r.userHandler.UpdateTier)
}
