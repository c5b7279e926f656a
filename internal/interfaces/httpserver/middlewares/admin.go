package middlewares

import (
	"github.com/gin-gonic/gin"

	"creator-api/internal/domain/user"
	"creator-api/internal/utils/platformerrors"
)

var adminRoles = []string{"admin", "super_admin"}

// RequireAdmin lets through principals with an admin realm role or an admin tier.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.ID == "" {
			platformerrors.WriteUnauthorized(c, "authentication required")
			return
		}

		if principal.HasRole(adminRoles...) {
			c.Next()
			return
		}
		if u, ok := UserFromContext(c); ok && (u.Tier == user.TierAdmin || u.Tier == user.TierSuperAdmin) {
			c.Next()
			return
		}

		platformerrors.WriteForbidden(c, "admin access required")
	}
}
