package userhandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"creator-api/internal/domain/quota"
	"creator-api/internal/interfaces/httpserver/middlewares"
	"creator-api/internal/interfaces/httpserver/responses"
	"creator-api/internal/utils/platformerrors"
)

// UserHandler serves the caller's own profile.
type UserHandler struct {
	gate *quota.Gate
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(gate *quota.Gate) *UserHandler {
	return &UserHandler{gate: gate}
}

// GetMe godoc
// @Summary Get current user
// @Description Tier, counters and the generations left today (null when unlimited)
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} responses.UserResponse
// @Failure 401 {object} platformerrors.HTTPErrorResponse
// @Router /v1/users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	u, ok := middlewares.UserFromContext(c)
	if !ok {
		platformerrors.WriteUnauthorized(c, "authentication required")
		return
	}
	c.JSON(http.StatusOK, responses.NewUserResponse(u, h.gate))
}
