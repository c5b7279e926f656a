package adminhandler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"creator-api/internal/domain/quota"
	"creator-api/internal/domain/user"
	"creator-api/internal/interfaces/httpserver/middlewares"
	"creator-api/internal/interfaces/httpserver/requests"
	"creator-api/internal/interfaces/httpserver/responses"
	"creator-api/internal/utils/platformerrors"
)

// AdminUserHandler manages user tiers.
type AdminUserHandler struct {
	users    *user.Service
	gate     *quota.Gate
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewAdminUserHandler creates a new AdminUserHandler
func NewAdminUserHandler(users *user.Service, gate *quota.Gate, logger zerolog.Logger) *AdminUserHandler {
	return &AdminUserHandler{
		users:    users,
		gate:     gate,
		validate: requests.NewValidator(),
		logger:   logger.With().Str("handler", "admin_user").Logger(),
	}
}

// UpdateTier godoc
// @Summary Change a user's tier
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body requests.UpdateTierRequest true "New tier"
// @Success 200 {object} responses.UserResponse
// @Failure 401 {object} platformerrors.HTTPErrorResponse
// @Failure 403 {object} platformerrors.HTTPErrorResponse
// @Failure 404 {object} platformerrors.HTTPErrorResponse
// @Failure 422 {object} platformerrors.HTTPErrorResponse
// @Router /v1/admin/users/{id}/tier [patch]
func (h *AdminUserHandler) UpdateTier(c *gin.Context) {
	var req requests.UpdateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		platformerrors.WriteValidationError(c, "invalid request body", requests.FieldErrors(err))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		platformerrors.WriteValidationError(c, "request validation failed", requests.FieldErrors(err))
		return
	}

	u, err := h.users.SetTier(c.Request.Context(), c.Param("id"), user.Tier(req.Tier))
	if err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			platformerrors.WriteNotFound(c, "user not found")
		case errors.Is(err, user.ErrInvalidTier):
			platformerrors.WriteValidationError(c, "request validation failed", map[string]string{"tier": err.Error()})
		default:
			platformerrors.WriteError(c, platformerrors.AsError(c.Request.Context(), platformerrors.LayerHandler, err, "failed to update tier"), h.logger)
		}
		return
	}

	h.logger.Info().
		Str("admin_id", middlewares.GetUserIDFromContext(c)).
		Str("user_id", u.ID).
		Str("tier", string(u.Tier)).
		Msg("user tier updated")

	c.JSON(http.StatusOK, responses.NewUserResponse(u, h.gate))
}
