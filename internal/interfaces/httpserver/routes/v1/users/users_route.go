package users

import (
	"github.com/gin-gonic/gin"

	"creator-api/internal/interfaces/httpserver/handlers/userhandler"
)

// UsersRoute registers the caller's profile routes.
type UsersRoute struct {
	handler *userhandler.UserHandler
}

func NewUsersRoute(handler *userhandler.UserHandler) *UsersRoute {
	return &UsersRoute{handler: handler}
}

func (r *UsersRoute) RegisterRouter(router gin.IRouter) {
	router.Group("/users").GET("/me", r.handler.GetMe)
}
