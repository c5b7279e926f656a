package generationhandler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/rs/zerolog"

	"creator-api/internal/domain/content"
	"creator-api/internal/domain/generation"
	"creator-api/internal/domain/provider"
	"creator-api/internal/domain/quota"
	"creator-api/internal/interfaces/httpserver/middlewares"
	"creator-api/internal/interfaces/httpserver/requests"
	"creator-api/internal/interfaces/httpserver/responses"
	"creator-api/internal/utils/platformerrors"
)

// StatusClientClosedRequest is written when the caller disconnects mid-generation.
const StatusClientClosedRequest = 499

// GenerationHandler serves the generate endpoint and the caller's stored generations.
type GenerationHandler struct {
	service  *generation.Service
	validate *validator.Validate
	logger   zerolog.Logger
	schema   *jsonschema.Schema
}

// NewGenerationHandler creates a new GenerationHandler
func NewGenerationHandler(service *generation.Service, logger zerolog.Logger) *GenerationHandler {
	reflector := jsonschema.Reflector{ExpandedStruct: true}
	return &GenerationHandler{
		service:  service,
		validate: requests.NewValidator(),
		logger:   logger.With().Str("handler", "generation").Logger(),
		schema:   reflector.Reflect(&requests.GenerateRequest{}),
	}
}

// Generate godoc
// @Summary Generate captions and hashtags
// @Description Fans the content description out to the selected providers, stores the result and counts it against the daily quota
// @Tags Generation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body requests.GenerateRequest true "Generation request"
// @Success 200 {object} responses.GenerationResponse
// @Failure 401 {object} platformerrors.HTTPErrorResponse
// @Failure 403 {object} platformerrors.HTTPErrorResponse
// @Failure 422 {object} platformerrors.HTTPErrorResponse
// @Failure 500 {object} platformerrors.HTTPErrorResponse
// @Router /api/generate [post]
// @Router /v1/generate [post]
func (h *GenerationHandler) Generate(c *gin.Context) {
	userID := middlewares.GetUserIDFromContext(c)
	if userID == "" {
		platformerrors.WriteUnauthorized(c, "authentication required")
		return
	}

	var req requests.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		platformerrors.WriteValidationError(c, "invalid request body", requests.FieldErrors(err))
		return
	}
	req.Normalize()
	if err := h.validate.Struct(&req); err != nil {
		platformerrors.WriteValidationError(c, "request validation failed", requests.FieldErrors(err))
		return
	}
	if req.UserID != "" && req.UserID != userID {
		platformerrors.WriteForbidden(c, "user_id does not match the authenticated user")
		return
	}

	result, err := h.service.Generate(c.Request.Context(), req.ToDomain(userID))
	if err != nil {
		h.writeGenerateError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.NewGenerationResponse(result.Record))
}

// Schema godoc
// @Summary Generation request JSON schema
// @Tags Generation
// @Produce json
// @Success 200 {object} map[string]any
// @Router /v1/generate/schema [get]
func (h *GenerationHandler) Schema(c *gin.Context) {
	c.JSON(http.StatusOK, h.schema)
}

// Get godoc
// @Summary Get a stored generation
// @Tags Generation
// @Produce json
// @Security BearerAuth
// @Param id path string true "Generation ID"
// @Success 200 {object} responses.GenerationResponse
// @Failure 401 {object} platformerrors.HTTPErrorResponse
// @Failure 404 {object} platformerrors.HTTPErrorResponse
// @Router /v1/generations/{id} [get]
func (h *GenerationHandler) Get(c *gin.Context) {
	userID := middlewares.GetUserIDFromContext(c)
	if userID == "" {
		platformerrors.WriteUnauthorized(c, "authentication required")
		return
	}

	record, err := h.service.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, generation.ErrNotFound) {
			platformerrors.WriteNotFound(c, "generation not found")
			return
		}
		platformerrors.WriteError(c, platformerrors.AsError(c.Request.Context(), platformerrors.LayerHandler, err, "failed to load generation"), h.logger)
		return
	}

	c.JSON(http.StatusOK, responses.NewGenerationResponse(record))
}

// List godoc
// @Summary List the caller's generations
// @Description Newest first
// @Tags Generation
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} responses.GenerationListResponse
// @Failure 401 {object} platformerrors.HTTPErrorResponse
// @Failure 422 {object} platformerrors.HTTPErrorResponse
// @Router /v1/generations [get]
func (h *GenerationHandler) List(c *gin.Context) {
	userID := middlewares.GetUserIDFromContext(c)
	if userID == "" {
		platformerrors.WriteUnauthorized(c, "authentication required")
		return
	}

	limit, err := queryInt(c, "limit")
	if err != nil {
		platformerrors.WriteValidationError(c, "invalid query", map[string]string{"limit": "must be an integer"})
		return
	}
	offset, err := queryInt(c, "offset")
	if err != nil {
		platformerrors.WriteValidationError(c, "invalid query", map[string]string{"offset": "must be an integer"})
		return
	}

	filter := generation.ListFilter{UserID: userID, Limit: limit, Offset: offset}.Normalized()
	records, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		platformerrors.WriteError(c, platformerrors.AsError(c.Request.Context(), platformerrors.LayerHandler, err, "failed to list generations"), h.logger)
		return
	}

	resp := responses.GenerationListResponse{
		Data:   make([]responses.GenerationResponse, 0, len(records)),
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}
	for _, record := range records {
		resp.Data = append(resp.Data, responses.NewGenerationResponse(record))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *GenerationHandler) writeGenerateError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var denied *quota.DeniedError
	switch {
	case errors.As(err, &denied):
		platformerrors.WriteHTTPError(c, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeQuotaExceeded, denied.Reason, err, "6c1f0a7e-3b5d-4e92-9f1a-2d8c7b4e5a10"), h.logger)
	case errors.Is(err, content.ErrUnknownCategory):
		platformerrors.WriteValidationError(c, "request validation failed", map[string]string{"category": err.Error()})
	case errors.Is(err, content.ErrUnknownPlatform):
		platformerrors.WriteValidationError(c, "request validation failed", map[string]string{"platform": err.Error()})
	case errors.Is(err, generation.ErrEmptyContent):
		platformerrors.WriteValidationError(c, "request validation failed", map[string]string{"content_description": err.Error()})
	case errors.Is(err, generation.ErrEmptyProviders), errors.Is(err, provider.ErrUnsupportedProvider):
		platformerrors.WriteValidationError(c, "request validation failed", map[string]string{"ai_providers": err.Error()})
	case errors.Is(err, generation.ErrPersistence):
		platformerrors.WriteHTTPError(c, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeDatabaseError, "failed to store generation", err, "b4e27d91-0c6a-4f38-8e5d-71a9c3f2d604"), h.logger)
	case errors.Is(err, context.Canceled):
		h.logger.Info().Str("request_id", middlewares.RequestIDFromContext(c)).Msg("client cancelled generation")
		c.AbortWithStatus(StatusClientClosedRequest)
	default:
		platformerrors.WriteError(c, platformerrors.AsError(ctx, platformerrors.LayerHandler, err, "generation failed"), h.logger)
	}
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
