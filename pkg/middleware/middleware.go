package middleware

import (
	"github.com/Astemirdum/lending-service/pkg/actor"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"
)

const XUserNameHeader = "X-User-Name"

// ActorContext puts the X-User-Name header into the request context.
// Requests without it act as the system actor.
func ActorContext(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		if userName := req.Header.Get(XUserNameHeader); userName != "" {
			c.SetRequest(req.WithContext(actor.WithName(req.Context(), userName)))
		}
		return next(c)
	}
}

func NewRateLimiter(rps rate.Limit) echo.MiddlewareFunc {
	return middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rps))
}

func RequestLoggerConfig(log *zap.Logger) middleware.RequestLoggerConfig {
	log = log.Named("echo")
	c := middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		HandleError:  true,
		LogError:     true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := zapcore.InfoLevel
			if v.Error != nil {
				level = zapcore.ErrorLevel
			}
			log.Log(level, "request",
				zap.String("URI", v.URI),
				zap.String("Method", v.Method),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.Error(v.Error),
				zap.String("request_id", v.RequestID),
				zap.String("actor", actor.Name(c.Request().Context())),
			)
			return nil
		},
	}
	return c
}
