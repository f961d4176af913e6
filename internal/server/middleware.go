// internal/server/middleware.go
package server

import (
	"pixisphere/internal/common/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func requestID() echo.MiddlewareFunc {
	return middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	})
}

// requestLogger writes one access log line per request.
func requestLogger(log logger.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := map[string]interface{}{
				"method":    v.Method,
				"uri":       v.URI,
				"status":    v.Status,
				"latencyMs": v.Latency.Milliseconds(),
				"requestId": v.RequestID,
				"remoteIp":  v.RemoteIP,
			}
			if v.Error != nil {
				fields["error"] = v.Error.Error()
				log.Error("request failed", fields)
				return nil
			}
			log.Info("request", fields)
			return nil
		},
	})
}
