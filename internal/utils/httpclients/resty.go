package httpclients

import (
	"context"
	"time"

	"resty.dev/v3"

	"github.com/deikotec/socialflow/internal/infrastructure/logger"
	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

type httpClientStartsAt struct{}

// NewClient returns a resty client that logs every outbound call at debug level.
func NewClient(clientName string) *resty.Client {
	client := resty.New()
	client.AddRequestMiddleware(func(c *resty.Client, r *resty.Request) error {
		r.SetContext(context.WithValue(r.Context(), httpClientStartsAt{}, time.Now()))
		return nil
	})
	client.AddResponseMiddleware(func(c *resty.Client, r *resty.Response) error {
		log := logger.GetLogger()
		ctx := r.Request.Context()
		startTime, _ := ctx.Value(httpClientStartsAt{}).(time.Time)
		requestID, _ := ctx.Value(platformerrors.RequestIDKey{}).(string)

		event := log.Debug().
			Str("request_id", requestID).
			Str("client", clientName).
			Int("status", r.StatusCode()).
			Dur("latency", time.Since(startTime))
		if raw := r.Request.RawRequest; raw != nil {
			event = event.Str("method", raw.Method).Str("path", raw.URL.Path)
		}
		event.Msg("HTTP client request")
		return nil
	})
	return client
}
