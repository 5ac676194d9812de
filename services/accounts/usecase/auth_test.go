package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/ordesk/ordesk/internal/pkg/models"
	"github.com/ordesk/ordesk/internal/pkg/password"
	"github.com/ordesk/ordesk/internal/pkg/websocket"
	"github.com/ordesk/ordesk/services/accounts"
	"github.com/ordesk/ordesk/services/accounts/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testMocks struct {
	userRepo         *mocks.MockUserRepo
	otpRepo          *mocks.MockOTPRepo
	sessionRepo      *mocks.MockSessionRepo
	notificationRepo *mocks.MockNotificationRepo
	accountGW        *mocks.MockAccountGW
}

func newTestUC(t *testing.T) (*AccountUC, *testMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := &testMocks{
		userRepo:         mocks.NewMockUserRepo(ctrl),
		otpRepo:          mocks.NewMockOTPRepo(ctrl),
		sessionRepo:      mocks.NewMockSessionRepo(ctrl),
		notificationRepo: mocks.NewMockNotificationRepo(ctrl),
		accountGW:        mocks.NewMockAccountGW(ctrl),
	}

	cfg := &models.Config{
		App: models.AppConfig{Environment: "test"},
		Session: models.SessionConfig{
			CookieName: "ordesk_session",
			TTLDays:    30,
		},
		OTP: models.OTPConfig{TTLMinutes: 10},
	}

	uc := NewAccountUC(m.userRepo, m.otpRepo, m.sessionRepo, m.notificationRepo, m.accountGW, websocket.NewRegistry(), cfg)
	return uc, m
}

func activeUser(t *testing.T, plaintext string) *models.User {
	verifier, err := password.Hash(plaintext)
	require.NoError(t, err)
	return &models.User{
		ID:               uuid.New(),
		Username:         "alice",
		Email:            "alice@example.com",
		FullName:         "Alice Tester",
		Role:             "member",
		PasswordVerifier: verifier,
		IsActive:         true,
	}
}

func TestLogin_Success(t *testing.T) {
	uc, m := newTestUC(t)
	user := activeUser(t, "s3cret-pass")

	m.userRepo.EXPECT().GetUserByUsername(gomock.Any(), "alice").Return(user, nil)
	m.sessionRepo.EXPECT().CreateSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, session *models.Session) error {
			assert.Equal(t, user.ID, session.UserID)
			assert.Len(t, session.Token, 64)
			return nil
		})

	session, got, err := uc.Login(context.Background(), "alice", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NotEmpty(t, session.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, m := newTestUC(t)
	user := activeUser(t, "s3cret-pass")

	m.userRepo.EXPECT().GetUserByUsername(gomock.Any(), "alice").Return(user, nil)

	_, _, err := uc.Login(context.Background(), "alice", "wrong-pass")
	assert.ErrorIs(t, err, accounts.ErrInvalidCredentials)
}

func TestLogin_UnknownUsername(t *testing.T) {
	uc, m := newTestUC(t)

	m.userRepo.EXPECT().GetUserByUsername(gomock.Any(), "nobody").Return(nil, accounts.ErrNotFound)

	// An unknown username and a wrong password are indistinguishable
	_, _, err := uc.Login(context.Background(), "nobody", "whatever")
	assert.ErrorIs(t, err, accounts.ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	uc, m := newTestUC(t)
	user := activeUser(t, "s3cret-pass")
	user.IsActive = false

	m.userRepo.EXPECT().GetUserByUsername(gomock.Any(), "alice").Return(user, nil)

	_, _, err := uc.Login(context.Background(), "alice", "s3cret-pass")
	assert.ErrorIs(t, err, accounts.ErrInvalidCredentials)
}

func TestAuthenticate_Success(t *testing.T) {
	uc, m := newTestUC(t)
	user := activeUser(t, "s3cret-pass")

	m.sessionRepo.EXPECT().GetSession(gomock.Any(), "tok-1").
		Return(&models.Session{Token: "tok-1", UserID: user.ID}, nil)
	m.userRepo.EXPECT().GetUserByID(gomock.Any(), user.ID.String()).Return(user, nil)

	got, err := uc.Authenticate(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestAuthenticate_UnknownToken(t *testing.T) {
	uc, m := newTestUC(t)

	m.sessionRepo.EXPECT().GetSession(gomock.Any(), "expired").Return(nil, accounts.ErrNotFound)

	_, err := uc.Authenticate(context.Background(), "expired")
	assert.ErrorIs(t, err, accounts.ErrUnauthenticated)
}

func TestAuthenticate_EmptyToken(t *testing.T) {
	uc, _ := newTestUC(t)

	_, err := uc.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, accounts.ErrUnauthenticated)
}

func TestAuthenticate_DeletedUser(t *testing.T) {
	uc, m := newTestUC(t)
	userID := uuid.New()

	m.sessionRepo.EXPECT().GetSession(gomock.Any(), "tok-1").
		Return(&models.Session{Token: "tok-1", UserID: userID}, nil)
	m.userRepo.EXPECT().GetUserByID(gomock.Any(), userID.String()).Return(nil, accounts.ErrNotFound)

	_, err := uc.Authenticate(context.Background(), "tok-1")
	assert.ErrorIs(t, err, accounts.ErrUnauthenticated)
}

func TestLogout_Idempotent(t *testing.T) {
	uc, m := newTestUC(t)

	m.sessionRepo.EXPECT().DeleteSession(gomock.Any(), "tok-1").Return(nil).Times(2)

	assert.NoError(t, uc.Logout(context.Background(), "tok-1"))
	assert.NoError(t, uc.Logout(context.Background(), "tok-1"))
	assert.NoError(t, uc.Logout(context.Background(), ""))
}

func TestRegister_Success(t *testing.T) {
	uc, m := newTestUC(t)

	m.userRepo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user *models.User) error {
			assert.Equal(t, "bob", user.Username)
			assert.Equal(t, "member", user.Role)
			assert.True(t, user.IsActive)
			// The stored verifier must validate the original password
			assert.True(t, password.Verify("initial-pass", user.PasswordVerifier))
			return nil
		})

	user, err := uc.Register(context.Background(), &models.RegisterRequest{
		Username: "bob",
		Email:    "bob@example.com",
		FullName: "Bob Tester",
		Password: "initial-pass",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
}

func TestChangePassword_Success(t *testing.T) {
	uc, m := newTestUC(t)
	user := activeUser(t, "old-pass")

	m.userRepo.EXPECT().GetUserByID(gomock.Any(), user.ID.String()).Return(user, nil)
	m.userRepo.EXPECT().UpdatePasswordVerifier(gomock.Any(), user.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, verifier string) error {
			assert.True(t, password.Verify("new-pass", verifier))
			return nil
		})
	m.accountGW.EXPECT().PublishPasswordChanged(gomock.Any()).Return(nil)

	err := uc.ChangePassword(context.Background(), user.ID.String(), "old-pass", "new-pass")
	assert.NoError(t, err)
}

func TestChangePassword_WrongCurrentPassword(t *testing.T) {
	uc, m := newTestUC(t)
	user := activeUser(t, "old-pass")

	m.userRepo.EXPECT().GetUserByID(gomock.Any(), user.ID.String()).Return(user, nil)

	err := uc.ChangePassword(context.Background(), user.ID.String(), "not-old-pass", "new-pass")
	assert.ErrorIs(t, err, accounts.ErrInvalidCredentials)
}

func TestChangePassword_PublishFailureIsNonFatal(t *testing.T) {
	uc, m := newTestUC(t)
	user := activeUser(t, "old-pass")

	m.userRepo.EXPECT().GetUserByID(gomock.Any(), user.ID.String()).Return(user, nil)
	m.userRepo.EXPECT().UpdatePasswordVerifier(gomock.Any(), user.ID, gomock.Any()).Return(nil)
	m.accountGW.EXPECT().PublishPasswordChanged(gomock.Any()).Return(errors.New("nats down"))

	err := uc.ChangePassword(context.Background(), user.ID.String(), "old-pass", "new-pass")
	assert.NoError(t, err)
}
