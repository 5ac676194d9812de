package usecase

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/ordesk/ordesk/internal/pkg/models"
	"github.com/ordesk/ordesk/internal/pkg/password"
	"github.com/ordesk/ordesk/services/accounts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sixDigits = regexp.MustCompile(`^\d{6}$`)

func TestRequestPasswordReset_Success(t *testing.T) {
	uc, m := newTestUC(t)
	user := activeUser(t, "whatever")

	var stored *models.OTP
	m.userRepo.EXPECT().GetUserByEmail(gomock.Any(), user.Email).Return(user, nil)
	m.otpRepo.EXPECT().CreateOTP(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, otp *models.OTP) error {
			stored = otp
			return nil
		})
	m.accountGW.EXPECT().SendResetCode(gomock.Any(), user.Email, gomock.Any()).Return(true, nil)

	code, err := uc.RequestPasswordReset(context.Background(), user.Email)
	require.NoError(t, err)
	assert.Regexp(t, sixDigits, code)

	require.NotNil(t, stored)
	assert.Equal(t, code, stored.Code)
	assert.Equal(t, user.Email, stored.Email)
	assert.False(t, stored.Used)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), stored.ExpiresAt, 5*time.Second)
}

func TestRequestPasswordReset_UnknownEmail(t *testing.T) {
	uc, m := newTestUC(t)

	m.userRepo.EXPECT().GetUserByEmail(gomock.Any(), "ghost@example.com").Return(nil, accounts.ErrNotFound)

	// No code, no error: the caller's response stays uniform
	code, err := uc.RequestPasswordReset(context.Background(), "ghost@example.com")
	assert.NoError(t, err)
	assert.Empty(t, code)
}

func TestRequestPasswordReset_DeliveryFailureStillIssuesCode(t *testing.T) {
	uc, m := newTestUC(t)
	user := activeUser(t, "whatever")

	m.userRepo.EXPECT().GetUserByEmail(gomock.Any(), user.Email).Return(user, nil)
	m.otpRepo.EXPECT().CreateOTP(gomock.Any(), gomock.Any()).Return(nil)
	m.accountGW.EXPECT().SendResetCode(gomock.Any(), user.Email, gomock.Any()).
		Return(false, errors.New("mailer unreachable"))

	code, err := uc.RequestPasswordReset(context.Background(), user.Email)
	assert.NoError(t, err)
	assert.Regexp(t, sixDigits, code)
}

func TestVerifyResetCode_Valid(t *testing.T) {
	uc, m := newTestUC(t)

	m.otpRepo.EXPECT().GetActiveOTP(gomock.Any(), "alice@example.com", "123456").
		Return(&models.OTP{Email: "alice@example.com", Code: "123456"}, nil)

	valid, err := uc.VerifyResetCode(context.Background(), "alice@example.com", "123456")
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestVerifyResetCode_InvalidOrExpired(t *testing.T) {
	uc, m := newTestUC(t)

	m.otpRepo.EXPECT().GetActiveOTP(gomock.Any(), "alice@example.com", "000000").
		Return(nil, accounts.ErrNotFound)

	valid, err := uc.VerifyResetCode(context.Background(), "alice@example.com", "000000")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestVerifyResetCode_DoesNotConsume(t *testing.T) {
	uc, m := newTestUC(t)

	// Two verifications of the same code both succeed; only CompleteReset
	// consumes.
	m.otpRepo.EXPECT().GetActiveOTP(gomock.Any(), "alice@example.com", "123456").
		Return(&models.OTP{Email: "alice@example.com", Code: "123456"}, nil).Times(2)

	for i := 0; i < 2; i++ {
		valid, err := uc.VerifyResetCode(context.Background(), "alice@example.com", "123456")
		require.NoError(t, err)
		assert.True(t, valid)
	}
}

func TestCompleteReset_Success(t *testing.T) {
	uc, m := newTestUC(t)
	user := activeUser(t, "old-pass")

	m.userRepo.EXPECT().GetUserByEmail(gomock.Any(), user.Email).Return(user, nil)
	m.otpRepo.EXPECT().ConsumeOTPAndSetVerifier(gomock.Any(), user.Email, "123456", user.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, _ uuid.UUID, verifier string) (bool, error) {
			assert.True(t, password.Verify("new-pass", verifier))
			return true, nil
		})
	m.accountGW.EXPECT().PublishPasswordChanged(gomock.Any()).Return(nil)

	err := uc.CompleteReset(context.Background(), user.Email, "123456", "new-pass")
	assert.NoError(t, err)
}

func TestCompleteReset_InvalidCode(t *testing.T) {
	uc, m := newTestUC(t)
	user := activeUser(t, "old-pass")

	m.userRepo.EXPECT().GetUserByEmail(gomock.Any(), user.Email).Return(user, nil)
	m.otpRepo.EXPECT().ConsumeOTPAndSetVerifier(gomock.Any(), user.Email, "999999", user.ID, gomock.Any()).
		Return(false, nil)

	err := uc.CompleteReset(context.Background(), user.Email, "999999", "new-pass")
	assert.ErrorIs(t, err, accounts.ErrCodeInvalidOrExpired)
}

func TestCompleteReset_UnknownEmail(t *testing.T) {
	uc, m := newTestUC(t)

	m.userRepo.EXPECT().GetUserByEmail(gomock.Any(), "ghost@example.com").Return(nil, accounts.ErrNotFound)

	err := uc.CompleteReset(context.Background(), "ghost@example.com", "123456", "new-pass")
	assert.ErrorIs(t, err, accounts.ErrCodeInvalidOrExpired)
}

func TestCompleteReset_TransientStorageError(t *testing.T) {
	uc, m := newTestUC(t)
	user := activeUser(t, "old-pass")

	m.userRepo.EXPECT().GetUserByEmail(gomock.Any(), user.Email).Return(user, nil)
	m.otpRepo.EXPECT().ConsumeOTPAndSetVerifier(gomock.Any(), user.Email, "123456", user.ID, gomock.Any()).
		Return(false, errors.New("db connection lost"))

	err := uc.CompleteReset(context.Background(), user.Email, "123456", "new-pass")
	require.Error(t, err)
	assert.NotErrorIs(t, err, accounts.ErrCodeInvalidOrExpired)
}

func TestGenerateResetCodeIsSixDigits(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := generateResetCode()
		require.NoError(t, err)
		assert.Regexp(t, sixDigits, code)
	}
}
