package adminhandler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creator-api/internal/domain/quota"
	"creator-api/internal/domain/user"
	"creator-api/internal/infrastructure/auth"
	"creator-api/internal/interfaces/httpserver/handlers/adminhandler"
	"creator-api/internal/interfaces/httpserver/middlewares"
	"creator-api/internal/interfaces/httpserver/responses"
	"creator-api/internal/testhelpers"
)

func setup(t *testing.T) (*gin.Engine, *testhelpers.UserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	users := testhelpers.NewUserRepo(
		&user.User{ID: "ops", Tier: user.TierFree},
		&user.User{ID: "creator", Tier: user.TierFree, DailyGenerationsUsed: 10},
	)
	validator := testhelpers.NewValidator()
	validator.Add("admin", auth.PrincipalClaims{Subject: "ops", Roles: []string{"admin"}})
	validator.Add("creator", auth.PrincipalClaims{Subject: "creator"})

	service := user.NewService(users)
	gate := quota.NewGate(users, 10)
	h := adminhandler.NewAdminUserHandler(service, gate, zerolog.Nop())

	r := gin.New()
	group := r.Group("/v1/admin",
		middlewares.AuthMiddleware(validator, service, zerolog.Nop()),
		middlewares.RequireAdmin(),
	)
	group.PATCH("/users/:id/tier", h.UpdateTier)
	return r, users
}

func patch(r http.Handler, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestUpdateTier(t *testing.T) {
	r, users := setup(t)

	rec := patch(r, "/v1/admin/users/creator/tier", "admin", `{"tier":"premium"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp responses.UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "premium", resp.Tier)
	assert.Nil(t, resp.RemainingToday)
	assert.Equal(t, user.TierPremium, users.Get("creator").Tier)
}

func TestUpdateTierErrors(t *testing.T) {
	r, users := setup(t)

	rec := patch(r, "/v1/admin/users/creator/tier", "creator", `{"tier":"premium"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, user.TierFree, users.Get("creator").Tier)

	rec = patch(r, "/v1/admin/users/creator/tier", "admin", `{"tier":"platinum"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = patch(r, "/v1/admin/users/creator/tier", "admin", `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = patch(r, "/v1/admin/users/ghost/tier", "admin", `{"tier":"premium"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
