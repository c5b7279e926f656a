package httpclients

import (
	"context"
	"time"

	"resty.dev/v3"

	"creator-api/internal/config"
	"creator-api/internal/infrastructure/logger"
	"creator-api/internal/utils/platformerrors"
)

type httpClientStartsAt struct{}

// NewClient returns a resty client that logs every outbound call at debug
// level. Bodies are never logged since they carry user content.
func NewClient(clientName string) *resty.Client {
	client := resty.New().
		SetHeader("User-Agent", "creator-api/"+config.Version).
		SetHeader("Content-Type", "application/json")

	client.AddRequestMiddleware(func(c *resty.Client, r *resty.Request) error {
		r.SetContext(context.WithValue(r.Context(), httpClientStartsAt{}, time.Now()))
		return nil
	})
	client.AddResponseMiddleware(func(c *resty.Client, r *resty.Response) error {
		log := logger.GetLogger()
		ctx := r.Request.Context()
		startTime, _ := ctx.Value(httpClientStartsAt{}).(time.Time)

		event := log.Debug()
		if r.IsError() {
			event = log.Warn()
		}
		event = event.
			Str("request_id", platformerrors.RequestIDFromContext(ctx)).
			Str("client", clientName).
			Int("status", r.StatusCode()).
			Dur("latency", time.Since(startTime))
		// the query string is left out since some vendors take the key there
		if raw := r.Request.RawRequest; raw != nil {
			event = event.Str("method", raw.Method).Str("path", raw.URL.Path)
		}
		event.Msg("HTTP client request")
		return nil
	})
	return client
}
