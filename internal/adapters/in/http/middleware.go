package http

import (
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/logging"

	"github.com/labstack/echo/v4"
)

const (
	HeaderUserID    = "X-User-ID"
	HeaderShipperID = "X-Shipper-ID"
)

// RequestLogger stores a request-scoped logger in the context and logs one
// line per request. Handler errors are rendered here so the logged status is
// the one the client received.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			l := base.With(
				"method", req.Method,
				"path", c.Path(),
				"remote_ip", c.RealIP(),
			)
			if rid := c.Response().Header().Get(echo.HeaderXRequestID); rid != "" {
				l = l.With("request_id", rid)
			}
			ctx := logging.IntoContext(req.Context(), l)
			c.SetRequest(req.WithContext(ctx))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Echo().HTTPErrorHandler(err, c)
			}
			status := c.Response().Status
			dur := time.Since(start)

			switch {
			case status >= 500:
				l.ErrorContext(ctx, "request completed", "status", status, "duration_ms", dur.Milliseconds())
			case status >= 400:
				l.WarnContext(ctx, "request completed", "status", status, "duration_ms", dur.Milliseconds())
			default:
				l.InfoContext(ctx, "request completed", "status", status, "duration_ms", dur.Milliseconds())
			}
			return nil
		}
	}
}

func identity(c echo.Context, header string) (kernel.UUID, error) {
	raw := c.Request().Header.Get(header)
	if raw == "" {
		return kernel.UUID{}, fmt.Errorf("%w: %s", errMissingIdentity, header)
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, fmt.Errorf("%w: %s is not a UUID", errMissingIdentity, header)
	}
	return id, nil
}
