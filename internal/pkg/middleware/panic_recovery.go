package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/ordesk/ordesk/internal/pkg/logger"
)

// PanicRecoveryMiddleware recovers from panics in handlers, logs the stack
// trace, and returns a generic 500 response
func PanicRecoveryMiddleware(zapLogger *logger.ZapLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					requestID := c.Response().Header().Get("X-Request-ID")

					zapLogger.Error("Panic recovered during request processing",
						logger.Any("panic_value", r),
						logger.String("panic_type", fmt.Sprintf("%T", r)),
						logger.String("stack_trace", string(debug.Stack())),
						logger.String("method", c.Request().Method),
						logger.String("path", c.Request().URL.Path),
						logger.String("client_ip", c.RealIP()),
						logger.String("request_id", requestID),
					)

					if !c.Response().Committed {
						_ = c.JSON(http.StatusInternalServerError, map[string]interface{}{
							"error":      "Internal Server Error",
							"message":    "An unexpected error occurred while processing your request",
							"request_id": requestID,
						})
					}
				}
			}()

			return next(c)
		}
	}
}
