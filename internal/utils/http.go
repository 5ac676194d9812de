package utils

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response wraps every successful payload the accounts API returns.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse wraps every failure. Retryable distinguishes outages of a
// backing store from terminal rejections such as bad credentials, so
// clients know whether repeating the request can ever succeed.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Code      int    `json:"code"`
	Retryable bool   `json:"retryable"`
}

// SuccessResponse sends data inside the standard success envelope
func SuccessResponse(c echo.Context, statusCode int, message string, data interface{}) error {
	return c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func errorResponse(c echo.Context, statusCode int, errorMessage string, retryable bool) error {
	return c.JSON(statusCode, ErrorResponse{
		Success:   false,
		Error:     errorMessage,
		Code:      statusCode,
		Retryable: retryable,
	})
}

// BadRequestResponse rejects a malformed or incomplete request
func BadRequestResponse(c echo.Context, errorMessage string) error {
	return errorResponse(c, http.StatusBadRequest, errorMessage, false)
}

// UnauthorizedResponse rejects a request that lacks a valid session or
// presented wrong credentials
func UnauthorizedResponse(c echo.Context, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = "Unauthorized"
	}
	return errorResponse(c, http.StatusUnauthorized, errorMessage, false)
}

// ForbiddenResponse rejects an authenticated request whose role does not
// permit the operation
func ForbiddenResponse(c echo.Context, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = "Forbidden"
	}
	return errorResponse(c, http.StatusForbidden, errorMessage, false)
}

// NotFoundResponse reports a missing resource
func NotFoundResponse(c echo.Context, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = "Resource not found"
	}
	return errorResponse(c, http.StatusNotFound, errorMessage, false)
}

// TooManyRequestsResponse reports a tripped rate limit. The limit window
// expires on its own, so the failure is retryable.
func TooManyRequestsResponse(c echo.Context, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = "Too many requests"
	}
	return errorResponse(c, http.StatusTooManyRequests, errorMessage, true)
}

// InternalServerErrorResponse reports an unexpected failure inside the service
func InternalServerErrorResponse(c echo.Context, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = "Internal server error"
	}
	return errorResponse(c, http.StatusInternalServerError, errorMessage, false)
}

// ServiceUnavailableResponse reports a transient outage of a backing store.
// Clients should repeat the request after a short delay.
func ServiceUnavailableResponse(c echo.Context, errorMessage string) error {
	if errorMessage == "" {
		errorMessage = "Service unavailable"
	}
	return errorResponse(c, http.StatusServiceUnavailable, errorMessage, true)
}
