package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/ordesk/ordesk/internal/pkg/logger"
	"github.com/ordesk/ordesk/internal/utils"
	"github.com/ordesk/ordesk/services/accounts"
)

// NotificationHandler handles HTTP requests for the notification log
type NotificationHandler struct {
	accountUC accounts.AccountUC
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(accountUC accounts.AccountUC) *NotificationHandler {
	return &NotificationHandler{
		accountUC: accountUC,
	}
}

// ListNotifications returns the authenticated user's stored notifications
func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	notifications, err := h.accountUC.ListNotifications(c.Request().Context(), userID, limit)
	if err != nil {
		logger.Error("Failed to list notifications",
			logger.String("user_id", userID),
			logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to list notifications")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Notifications retrieved successfully", notifications)
}

// MarkRead flags one of the user's notifications as read
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}

	notificationID := c.Param("id")
	if notificationID == "" {
		return utils.BadRequestResponse(c, "Invalid notification ID")
	}

	err := h.accountUC.MarkNotificationRead(c.Request().Context(), userID, notificationID)
	if err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			return utils.NotFoundResponse(c, "Notification not found")
		}
		logger.Error("Failed to mark notification read",
			logger.String("user_id", userID),
			logger.String("notification_id", notificationID),
			logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to update notification")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Notification marked as read", nil)
}
