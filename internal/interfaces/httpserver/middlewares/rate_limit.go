package middlewares

import (
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"creator-api/internal/infrastructure/metrics"
	"creator-api/internal/infrastructure/ratelimit"
	"creator-api/internal/utils/platformerrors"
)

// RateLimitMiddleware throttles per principal, or per client IP before auth.
// Limiter errors fail open.
func RateLimitMiddleware(limiter ratelimit.Limiter, logger zerolog.Logger) gin.HandlerFunc {
	if limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		res, err := limiter.Allow(c.Request.Context(), rateKey(c))
		if err != nil {
			logger.Warn().Err(err).Str("backend", limiter.Backend()).Msg("rate limiter unavailable")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		if !res.Allowed {
			metrics.RecordRateLimited(limiter.Backend())
			retry := int(math.Ceil(res.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(max(1, retry)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, platformerrors.HTTPErrorResponse{
				Detail: "Too many requests",
				Error: &platformerrors.HTTPErrorDetail{
					Message:   "Too many requests",
					Type:      "rate_limited",
					RequestID: RequestIDFromContext(c),
				},
			})
			return
		}

		c.Next()
	}
}

func rateKey(c *gin.Context) string {
	if id := GetUserIDFromContext(c); id != "" {
		return "pid:" + id
	}
	if ip := clientIP(c.ClientIP()); ip != "" {
		return "ip:" + ip
	}
	return "anonymous"
}

// Normalize IPv6-mapped IPv4 etc.
func clientIP(raw string) string {
	if raw == "" {
		return ""
	}
	if ip := net.ParseIP(raw); ip != nil {
		return ip.String()
	}
	return raw
}
