package usagehandler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"creator-api/internal/domain/usage"
	"creator-api/internal/interfaces/httpserver/middlewares"
	"creator-api/internal/utils/platformerrors"
)

const dateLayout = "2006-01-02"

// UsageHandler handles usage analytics API requests
type UsageHandler struct {
	usageService *usage.Service
	logger       zerolog.Logger
	now          func() time.Time
}

// NewUsageHandler creates a new UsageHandler
func NewUsageHandler(usageService *usage.Service, logger zerolog.Logger) *UsageHandler {
	return &UsageHandler{
		usageService: usageService,
		logger:       logger.With().Str("handler", "usage").Logger(),
		now:          time.Now,
	}
}

// GetMyUsage godoc
// @Summary Get current user's provider usage
// @Description Returns per-provider attempts, successes, latency and estimated cost for the authenticated user within a date range
// @Tags Usage
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "Start date (YYYY-MM-DD), defaults to 30 days ago"
// @Param end_date query string false "End date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} usage.Report
// @Failure 401 {object} platformerrors.HTTPErrorResponse
// @Failure 422 {object} platformerrors.HTTPErrorResponse
// @Failure 500 {object} platformerrors.HTTPErrorResponse
// @Router /v1/usage/me [get]
func (h *UsageHandler) GetMyUsage(c *gin.Context) {
	userID := middlewares.GetUserIDFromContext(c)
	if userID == "" {
		platformerrors.WriteUnauthorized(c, "authentication required")
		return
	}

	startDate, endDate, fields := h.parseDateRange(c)
	if len(fields) > 0 {
		platformerrors.WriteValidationError(c, "invalid date range", fields)
		return
	}

	report, err := h.usageService.GetMyUsage(c.Request.Context(), userID, startDate, endDate)
	if err != nil {
		platformerrors.WriteError(c, platformerrors.AsError(c.Request.Context(), platformerrors.LayerHandler, err, "failed to get usage"), h.logger)
		return
	}

	c.JSON(http.StatusOK, report)
}

// parseDateRange extracts start and end dates from query parameters
func (h *UsageHandler) parseDateRange(c *gin.Context) (time.Time, time.Time, map[string]string) {
	now := h.now().UTC()
	endDate := now
	startDate := now.AddDate(0, 0, -30) // Default to last 30 days
	fields := map[string]string{}

	if startStr := c.Query("start_date"); startStr != "" {
		parsed, err := time.Parse(dateLayout, startStr)
		if err != nil {
			fields["start_date"] = "must be a date in YYYY-MM-DD format"
		} else {
			startDate = parsed
		}
	}

	if endStr := c.Query("end_date"); endStr != "" {
		parsed, err := time.Parse(dateLayout, endStr)
		if err != nil {
			fields["end_date"] = "must be a date in YYYY-MM-DD format"
		} else {
			endDate = parsed.Add(24*time.Hour - time.Second) // End of day
		}
	}

	if len(fields) == 0 && endDate.Before(startDate) {
		fields["end_date"] = "must not be before start_date"
	}

	return startDate, endDate, fields
}
