package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/ordesk/ordesk/internal/pkg/logger"
	"github.com/ordesk/ordesk/internal/pkg/models"
	"github.com/ordesk/ordesk/internal/utils"
	"github.com/ordesk/ordesk/services/accounts"
)

// AuthHandler handles HTTP requests for authentication operations
type AuthHandler struct {
	accountUC accounts.AccountUC
	cfg       *models.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(accountUC accounts.AccountUC, cfg *models.Config) *AuthHandler {
	return &AuthHandler{
		accountUC: accountUC,
		cfg:       cfg,
	}
}

func (h *AuthHandler) sessionCookie(token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     h.cfg.Session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Login handles credential verification and session creation
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if req.Username == "" || req.Password == "" {
		return utils.BadRequestResponse(c, "Username and password are required")
	}

	session, user, err := h.accountUC.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, accounts.ErrInvalidCredentials) {
			return utils.UnauthorizedResponse(c, "Invalid username or password")
		}
		logger.Error("Login failed",
			logger.String("username", req.Username),
			logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to log in")
	}

	maxAge := int((time.Duration(h.cfg.Session.TTLDays) * 24 * time.Hour).Seconds())
	c.SetCookie(h.sessionCookie(session.Token, maxAge))

	return utils.SuccessResponse(c, http.StatusOK, "Logged in successfully", user)
}

// Logout destroys the current session. It succeeds even when no valid
// session cookie is present.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cfg.Session.CookieName); err == nil {
		if err := h.accountUC.Logout(c.Request().Context(), cookie.Value); err != nil {
			logger.Warn("Failed to destroy session", logger.Err(err))
		}
	}

	c.SetCookie(h.sessionCookie("", -1))
	return utils.SuccessResponse(c, http.StatusOK, "Logged out successfully", nil)
}

// Me returns the profile of the authenticated user
func (h *AuthHandler) Me(c echo.Context) error {
	user, ok := c.Get("user").(*models.User)
	if !ok {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}
	return utils.SuccessResponse(c, http.StatusOK, "User retrieved successfully", user)
}

// ChangePassword rotates the password of the authenticated user
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}

	var req models.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if req.NewPassword == "" {
		return utils.BadRequestResponse(c, "New password is required")
	}

	err := h.accountUC.ChangePassword(c.Request().Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, accounts.ErrInvalidCredentials) {
			return utils.UnauthorizedResponse(c, "Current password is incorrect")
		}
		if errors.Is(err, accounts.ErrUnauthenticated) {
			return utils.UnauthorizedResponse(c, "Authentication required")
		}
		logger.Error("Password change failed",
			logger.String("user_id", userID),
			logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to change password")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Password changed successfully", nil)
}

// ForgotPassword issues a password reset code. The response is identical
// whether or not the email belongs to an account.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req models.ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if req.Email == "" {
		return utils.BadRequestResponse(c, "Email is required")
	}

	code, err := h.accountUC.RequestPasswordReset(c.Request().Context(), strings.ToLower(req.Email))
	if err != nil {
		logger.Error("Password reset request failed", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to process reset request")
	}

	var data interface{}
	if code != "" && h.revealCodes() {
		data = map[string]string{"code": code}
	}

	return utils.SuccessResponse(c, http.StatusAccepted,
		"If the email belongs to an account, a reset code has been sent", data)
}

// revealCodes reports whether reset codes may be echoed back to the client.
// Production never reveals.
func (h *AuthHandler) revealCodes() bool {
	return h.cfg.App.Environment != "production" && h.cfg.OTP.RevealInResponse
}

// VerifyResetCode checks a reset code without consuming it
func (h *AuthHandler) VerifyResetCode(c echo.Context) error {
	var req models.VerifyResetRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if req.Email == "" || req.Code == "" {
		return utils.BadRequestResponse(c, "Email and code are required")
	}

	valid, err := h.accountUC.VerifyResetCode(c.Request().Context(), strings.ToLower(req.Email), req.Code)
	if err != nil {
		logger.Error("Reset code verification failed", logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to verify code")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Code verified", map[string]bool{"valid": valid})
}

// CompleteReset consumes a reset code and installs a new password
func (h *AuthHandler) CompleteReset(c echo.Context) error {
	var req models.CompleteResetRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if req.Email == "" || req.Code == "" || req.NewPassword == "" {
		return utils.BadRequestResponse(c, "Email, code and new password are required")
	}

	err := h.accountUC.CompleteReset(c.Request().Context(), strings.ToLower(req.Email), req.Code, req.NewPassword)
	if err != nil {
		if errors.Is(err, accounts.ErrCodeInvalidOrExpired) {
			return utils.BadRequestResponse(c, "Code is invalid or expired")
		}
		logger.Error("Password reset completion failed", logger.Err(err))
		return utils.ServiceUnavailableResponse(c, "Failed to reset password, please try again")
	}

	return utils.SuccessResponse(c, http.StatusOK, "Password reset successfully", nil)
}

// CreateUser handles internal account provisioning
func (h *AuthHandler) CreateUser(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return utils.BadRequestResponse(c, "Username, email and password are required")
	}
	req.Email = strings.ToLower(req.Email)

	user, err := h.accountUC.Register(c.Request().Context(), &req)
	if err != nil {
		logger.Error("User provisioning failed",
			logger.String("username", req.Username),
			logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to create user")
	}

	return utils.SuccessResponse(c, http.StatusCreated, "User created successfully", user)
}
