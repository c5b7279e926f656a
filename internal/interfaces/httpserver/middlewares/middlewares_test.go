package middlewares_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creator-api/internal/domain/user"
	"creator-api/internal/infrastructure/auth"
	"creator-api/internal/infrastructure/ratelimit"
	"creator-api/internal/interfaces/httpserver/middlewares"
	"creator-api/internal/testhelpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	users := testhelpers.NewUserRepo()
	validator := testhelpers.NewValidator()
	validator.Add("good", auth.PrincipalClaims{Subject: "sub-1", Name: "Ana", Roles: []string{"creator"}})
	validator.Add("nosub", auth.PrincipalClaims{Subject: "  "})

	r := gin.New()
	r.Use(middlewares.RequestID())
	r.GET("/private", middlewares.AuthMiddleware(validator, user.NewService(users), zerolog.Nop()), func(c *gin.Context) {
		principal, ok := middlewares.PrincipalFromContext(c)
		require.True(t, ok)
		u, ok := middlewares.UserFromContext(c)
		require.True(t, ok)
		c.String(http.StatusOK, principal.ID+"/"+string(u.Tier)+"/"+middlewares.GetUserIDFromContext(c))
	})

	rec := serve(r, "Bearer good")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sub-1/free/sub-1", rec.Body.String())
	assert.Equal(t, "sub-1", rec.Header().Get("X-User-ID"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	stored := users.Get("sub-1")
	require.NotNil(t, stored)
	require.NotNil(t, stored.Name)
	assert.Equal(t, "Ana", *stored.Name)
	assert.Nil(t, stored.Email)

	for _, header := range []string{"", "good", "Basic good", "Bearer ", "Bearer bad"} {
		assert.Equal(t, http.StatusUnauthorized, serve(r, header).Code, header)
	}
	assert.Equal(t, http.StatusUnauthorized, serve(r, "Bearer nosub").Code)
}

func TestRequireAdmin(t *testing.T) {
	users := testhelpers.NewUserRepo(&user.User{ID: "tier-admin", Tier: user.TierSuperAdmin})
	validator := testhelpers.NewValidator()
	validator.Add("role", auth.PrincipalClaims{Subject: "role-admin", Roles: []string{"super_admin"}})
	validator.Add("tier", auth.PrincipalClaims{Subject: "tier-admin"})
	validator.Add("plain", auth.PrincipalClaims{Subject: "plain"})

	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }

	r := gin.New()
	r.GET("/private", middlewares.AuthMiddleware(validator, user.NewService(users), zerolog.Nop()), middlewares.RequireAdmin(), ok)
	unauthenticated := gin.New()
	unauthenticated.GET("/private", middlewares.RequireAdmin(), ok)

	assert.Equal(t, http.StatusNoContent, serve(r, "Bearer role").Code)
	assert.Equal(t, http.StatusNoContent, serve(r, "Bearer tier").Code)
	assert.Equal(t, http.StatusForbidden, serve(r, "Bearer plain").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(unauthenticated, "").Code)
}

type fixedLimiter struct {
	res ratelimit.Result
	err error
}

func (f fixedLimiter) Allow(context.Context, string) (ratelimit.Result, error) { return f.res, f.err }
func (f fixedLimiter) Backend() string                                         { return "test" }

func TestRateLimitMiddleware(t *testing.T) {
	handler := func(l ratelimit.Limiter) http.Handler {
		r := gin.New()
		r.GET("/private", middlewares.RateLimitMiddleware(l, zerolog.Nop()), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		return r
	}

	rec := serve(handler(nil), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = serve(handler(fixedLimiter{res: ratelimit.Result{Allowed: true, Limit: 60, Remaining: 59}}), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "59", rec.Header().Get("X-RateLimit-Remaining"))

	rec = serve(handler(fixedLimiter{res: ratelimit.Result{Allowed: false, Limit: 60, RetryAfter: 1500 * time.Millisecond}}), "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "rate_limited")

	rec = serve(handler(fixedLimiter{err: errors.New("redis down")}), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRateLimitMiddlewareWithMemoryLimiter(t *testing.T) {
	r := gin.New()
	r.GET("/private", middlewares.RateLimitMiddleware(ratelimit.NewMemoryLimiter(2), zerolog.Nop()), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	assert.Equal(t, http.StatusNoContent, serve(r, "").Code)
	assert.Equal(t, http.StatusNoContent, serve(r, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, "").Code)
}
