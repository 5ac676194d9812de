package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/ordesk/ordesk/internal/pkg/models"
	"github.com/ordesk/ordesk/services/accounts"
	"github.com/ordesk/ordesk/services/accounts/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiddlewareTest(t *testing.T) (*Handler, *mocks.MockAccountUC) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockUC := mocks.NewMockAccountUC(ctrl)

	cfg := &models.Config{
		Session: models.SessionConfig{CookieName: "ordesk_session", TTLDays: 30},
	}
	h := NewHandler(nil, nil, nil, nil, mockUC, nil, cfg)
	return h, mockUC
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestSessionMiddleware_ResolvesUser(t *testing.T) {
	h, mockUC := newMiddlewareTest(t)

	user := &models.User{ID: uuid.New(), Username: "alice", Role: "member", IsActive: true}
	mockUC.EXPECT().Authenticate(gomock.Any(), "tok-123").Return(user, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "ordesk_session", Value: "tok-123"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		assert.Equal(t, user.ID.String(), c.Get("user_id"))
		assert.Equal(t, "member", c.Get("role"))
		assert.Equal(t, user, c.Get("user"))
		return okHandler(c)
	}

	require.NoError(t, h.SessionMiddleware()(next)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionMiddleware_MissingCookie(t *testing.T) {
	h, _ := newMiddlewareTest(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.SessionMiddleware()(okHandler)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionMiddleware_ExpiredSession(t *testing.T) {
	h, mockUC := newMiddlewareTest(t)

	mockUC.EXPECT().Authenticate(gomock.Any(), "stale").Return(nil, accounts.ErrUnauthenticated)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "ordesk_session", Value: "stale"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.SessionMiddleware()(okHandler)(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionMiddleware_StoreOutage(t *testing.T) {
	h, mockUC := newMiddlewareTest(t)

	// A session store failure must surface as a retryable outage,
	// not as a revoked session.
	mockUC.EXPECT().Authenticate(gomock.Any(), "tok-123").
		Return(nil, fmt.Errorf("failed to get session: %w", errors.New("redis: connection refused")))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "ordesk_session", Value: "tok-123"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.SessionMiddleware()(okHandler)(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "retry")
}

func TestRequireRole(t *testing.T) {
	h, _ := newMiddlewareTest(t)

	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/internal/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", "member")

	require.NoError(t, h.RequireRole("admin")(okHandler)(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/internal/users", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.Set("role", "admin")

	require.NoError(t, h.RequireRole("admin")(okHandler)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
