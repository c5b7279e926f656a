package providerhandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"creator-api/internal/domain/provider"
	"creator-api/internal/utils/platformerrors"
)

// ProviderHandler exposes the provider registry.
type ProviderHandler struct {
	registry *provider.Registry
}

// NewProviderHandler creates a new ProviderHandler
func NewProviderHandler(registry *provider.Registry) *ProviderHandler {
	return &ProviderHandler{registry: registry}
}

// ProviderListResponse wraps the registry listing.
type ProviderListResponse struct {
	Object string                `json:"object"`
	Data   []provider.Descriptor `json:"data"`
}

// ListProviders godoc
// @Summary List providers
// @Description Every known provider with its model and whether its credential is configured
// @Tags Providers
// @Produce json
// @Success 200 {object} ProviderListResponse
// @Router /v1/providers [get]
func (h *ProviderHandler) ListProviders(c *gin.Context) {
	c.JSON(http.StatusOK, ProviderListResponse{Object: "list", Data: h.registry.List()})
}

// GetProvider godoc
// @Summary Get a provider
// @Tags Providers
// @Produce json
// @Param provider path string true "Provider name"
// @Success 200 {object} provider.Descriptor
// @Failure 404 {object} platformerrors.HTTPErrorResponse
// @Router /v1/providers/{provider} [get]
func (h *ProviderHandler) GetProvider(c *gin.Context) {
	p, err := provider.Parse(c.Param("provider"))
	if err != nil {
		platformerrors.WriteNotFound(c, "provider not found")
		return
	}
	descriptor, ok := h.registry.Get(p)
	if !ok {
		platformerrors.WriteNotFound(c, "provider not found")
		return
	}
	c.JSON(http.StatusOK, descriptor)
}
