package providerhandler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creator-api/internal/domain/provider"
	"creator-api/internal/interfaces/httpserver/handlers/providerhandler"
	"creator-api/internal/testhelpers"
)

func newRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	gemini := testhelpers.NewStubAdapter(provider.Gemini)
	gemini.Unavailable = true
	h := providerhandler.NewProviderHandler(testhelpers.NewRegistry(t,
		testhelpers.NewStubAdapter(provider.OpenAI),
		gemini,
	))

	r := gin.New()
	r.GET("/v1/providers", h.ListProviders)
	r.GET("/v1/providers/:provider", h.GetProvider)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestListProviders(t *testing.T) {
	rec := get(newRouter(t), "/v1/providers")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp providerhandler.ProviderListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "list", resp.Object)
	require.Len(t, resp.Data, len(provider.All()))

	byName := map[provider.Provider]provider.Descriptor{}
	for _, d := range resp.Data {
		byName[d.Provider] = d
	}
	assert.True(t, byName[provider.OpenAI].Available)
	assert.Equal(t, "openai-test", byName[provider.OpenAI].Model)
	assert.False(t, byName[provider.Gemini].Available)
	assert.False(t, byName[provider.Anthropic].Available)
	assert.NotEmpty(t, byName[provider.Perplexity].Strengths)
}

func TestGetProvider(t *testing.T) {
	r := newRouter(t)

	rec := get(r, "/v1/providers/OpenAI")
	require.Equal(t, http.StatusOK, rec.Code)
	var d provider.Descriptor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	assert.Equal(t, provider.OpenAI, d.Provider)
	assert.NotEmpty(t, d.BestFor)

	rec = get(r, "/v1/providers/mistral")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
