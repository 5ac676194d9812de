package handler

import (
	"errors"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/ordesk/ordesk/internal/pkg/database"
	"github.com/ordesk/ordesk/internal/pkg/logger"
	"github.com/ordesk/ordesk/internal/pkg/middleware"
	"github.com/ordesk/ordesk/internal/pkg/models"
	"github.com/ordesk/ordesk/internal/utils"
	"github.com/ordesk/ordesk/services/accounts"
	"github.com/ordesk/ordesk/services/accounts/handler/http"
	"github.com/ordesk/ordesk/services/accounts/handler/nats"
	"github.com/ordesk/ordesk/services/accounts/handler/websocket"
)

// Handler coordinates all protocol handlers for the accounts service
type Handler struct {
	authHandler         *http.AuthHandler
	notificationHandler *http.NotificationHandler
	echoWSHandler       *websocket.EchoWebSocketHandler
	natsHandler         *nats.NatsHandler
	accountUC           accounts.AccountUC
	redisClient         *database.RedisClient
	cfg                 *models.Config
}

// NewHandler creates and initializes all handlers
func NewHandler(
	authHandler *http.AuthHandler,
	notificationHandler *http.NotificationHandler,
	echoWSHandler *websocket.EchoWebSocketHandler,
	natsHandler *nats.NatsHandler,
	accountUC accounts.AccountUC,
	redisClient *database.RedisClient,
	cfg *models.Config,
) *Handler {
	return &Handler{
		authHandler:         authHandler,
		notificationHandler: notificationHandler,
		echoWSHandler:       echoWSHandler,
		natsHandler:         natsHandler,
		accountUC:           accountUC,
		redisClient:         redisClient,
		cfg:                 cfg,
	}
}

// SessionMiddleware resolves the session cookie to a user on every request.
// The cookie is an opaque token; identity is re-resolved from the session
// store each time, so revocation takes effect immediately.
func (h *Handler) SessionMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(h.cfg.Session.CookieName)
			if err != nil || cookie.Value == "" {
				return utils.UnauthorizedResponse(c, "Authentication required")
			}

			user, err := h.accountUC.Authenticate(c.Request().Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, accounts.ErrUnauthenticated) {
					return utils.UnauthorizedResponse(c, "Session is invalid or expired")
				}
				// A store outage is not the client's fault and must not
				// look like a revoked session.
				logger.Error("Failed to resolve session",
					logger.String("path", c.Request().URL.Path),
					logger.Err(err))
				return utils.ServiceUnavailableResponse(c, "Unable to verify session, please retry")
			}

			c.Set("user_id", user.ID.String())
			c.Set("role", user.Role)
			c.Set("user", user)
			return next(c)
		}
	}
}

// RequireRole gates a route group to one role
func (h *Handler) RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if r, _ := c.Get("role").(string); r != role {
				return utils.ForbiddenResponse(c, "Insufficient permissions")
			}
			return next(c)
		}
	}
}

// RegisterRoutes registers all protocol handlers and their routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	loginLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RedisClient: h.redisClient.Client,
		Key:         "rate:login",
		Limit:       10,
		Period:      time.Minute,
	})
	forgotLimiter := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RedisClient: h.redisClient.Client,
		Key:         "rate:forgot",
		Limit:       5,
		Period:      time.Minute,
	})

	// Public routes
	authGroup := e.Group("/auth")
	authGroup.POST("/login", h.authHandler.Login, loginLimiter)
	authGroup.POST("/logout", h.authHandler.Logout)
	authGroup.POST("/password/forgot", h.authHandler.ForgotPassword, forgotLimiter)
	authGroup.POST("/password/verify", h.authHandler.VerifyResetCode)
	authGroup.POST("/password/reset", h.authHandler.CompleteReset)

	// Session-protected routes
	protected := e.Group("", h.SessionMiddleware())
	protected.GET("/auth/me", h.authHandler.Me)
	protected.POST("/auth/password/change", h.authHandler.ChangePassword)

	notificationGroup := protected.Group("/notifications")
	notificationGroup.GET("", h.notificationHandler.ListNotifications)
	notificationGroup.POST("/:id/read", h.notificationHandler.MarkRead)

	// Internal provisioning, admin only
	internalGroup := protected.Group("/internal", h.RequireRole("admin"))
	internalGroup.POST("/users", h.authHandler.CreateUser)

	// WebSocket endpoint authenticates the session at handshake time
	wsGroup := e.Group("/ws", h.SessionMiddleware())
	wsGroup.GET("", h.echoWSHandler.HandleWebSocket)
}

// InitNATSConsumers starts the message bus consumers
func (h *Handler) InitNATSConsumers() error {
	return h.natsHandler.InitConsumers()
}

// Close shuts down the NATS consumers
func (h *Handler) Close() {
	h.natsHandler.Close()
}
