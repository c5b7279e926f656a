package middlewares

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"creator-api/internal/domain"
	"creator-api/internal/domain/user"
	"creator-api/internal/infrastructure/auth"
	"creator-api/internal/utils/platformerrors"
)

const (
	principalContextKey = "principal"
	userContextKey      = "user"
	userIDContextKey    = "user_id"
)

// AuthMiddleware validates the bearer token and makes sure a user row exists
// for its subject before any handler runs.
func AuthMiddleware(validator auth.Validator, users *user.Service, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			platformerrors.WriteUnauthorized(c, "authentication required")
			return
		}

		claims, err := validator.Validate(c.Request.Context(), token)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("path", c.FullPath()).
				Str("request_id", RequestIDFromContext(c)).
				Msg("jwt validation failed")
			platformerrors.WriteUnauthorized(c, "invalid or expired token")
			return
		}

		principal := domain.Principal{
			ID:      claims.Subject,
			Subject: claims.Subject,
			Issuer:  claims.Issuer,
			Email:   claims.Email,
			Name:    claims.Name,
			Roles:   claims.Roles,
		}

		u, err := users.EnsureUser(c.Request.Context(), user.Identity{
			Subject: principal.Subject,
			Email:   optional(principal.Email),
			Name:    optional(principal.Name),
		})
		if err != nil {
			if errors.Is(err, user.ErrInvalidIdentity) {
				platformerrors.WriteUnauthorized(c, "token has no subject")
				return
			}
			platformerrors.WriteError(c, platformerrors.AsError(c.Request.Context(), platformerrors.LayerRoute, err, "failed to resolve user"), logger)
			return
		}

		setPrincipal(c, principal, u)
		c.Next()
	}
}

// PrincipalFromContext returns the authenticated principal, if any.
func PrincipalFromContext(c *gin.Context) (domain.Principal, bool) {
	val, ok := c.Get(principalContextKey)
	if !ok {
		return domain.Principal{}, false
	}
	principal, ok := val.(domain.Principal)
	return principal, ok
}

// UserFromContext returns the user row resolved for the principal.
func UserFromContext(c *gin.Context) (*user.User, bool) {
	val, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	u, ok := val.(*user.User)
	return u, ok && u != nil
}

// GetUserIDFromContext returns the authenticated user id or "".
func GetUserIDFromContext(c *gin.Context) string {
	return c.GetString(userIDContextKey)
}

func setPrincipal(c *gin.Context, principal domain.Principal, u *user.User) {
	c.Set(principalContextKey, principal)
	c.Set(userContextKey, u)
	c.Set(userIDContextKey, principal.ID)
	c.Writer.Header().Set("X-User-ID", principal.ID)
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
