package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ordesk/ordesk/internal/pkg/logger"
	"github.com/ordesk/ordesk/internal/pkg/models"
	"github.com/ordesk/ordesk/internal/pkg/password"
	"github.com/ordesk/ordesk/services/accounts"
)

// sessionTokenBytes is the entropy of a session token before hex encoding
const sessionTokenBytes = 32

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Login verifies the credentials and opens a new session. A missing user
// and a wrong password both map to ErrInvalidCredentials so the response
// does not reveal which usernames exist.
func (u *AccountUC) Login(ctx context.Context, username, pass string) (*models.Session, *models.User, error) {
	user, err := u.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			return nil, nil, accounts.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.IsActive {
		return nil, nil, accounts.ErrInvalidCredentials
	}

	if !password.Verify(pass, user.PasswordVerifier) {
		return nil, nil, accounts.ErrInvalidCredentials
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, nil, err
	}

	session := &models.Session{
		Token:  token,
		UserID: user.ID,
	}
	if err := u.sessionRepo.CreateSession(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("failed to create session: %w", err)
	}

	logger.Info("User logged in",
		logger.String("user_id", user.ID.String()),
		logger.String("username", user.Username))

	return session, user, nil
}

// Authenticate resolves a session token to its user. Any failure along the
// chain collapses to ErrUnauthenticated.
func (u *AccountUC) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, accounts.ErrUnauthenticated
	}

	session, err := u.sessionRepo.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			return nil, accounts.ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	user, err := u.userRepo.GetUserByID(ctx, session.UserID.String())
	if err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			return nil, accounts.ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.IsActive {
		return nil, accounts.ErrUnauthenticated
	}

	return user, nil
}

// Logout destroys the session. Logging out an already expired or unknown
// token still succeeds.
func (u *AccountUC) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := u.sessionRepo.DeleteSession(ctx, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Register provisions a new account with a freshly derived verifier
func (u *AccountUC) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	verifier, err := password.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = "member"
	}

	user := &models.User{
		ID:               uuid.New(),
		Username:         req.Username,
		Email:            req.Email,
		FullName:         req.FullName,
		Role:             role,
		PasswordVerifier: verifier,
		IsActive:         true,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := u.userRepo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("User registered",
		logger.String("user_id", user.ID.String()),
		logger.String("username", user.Username))

	return user, nil
}

// ChangePassword rotates the verifier after re-checking the current password
func (u *AccountUC) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return accounts.ErrUnauthenticated
	}

	user, err := u.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			return accounts.ErrUnauthenticated
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !password.Verify(currentPassword, user.PasswordVerifier) {
		return accounts.ErrInvalidCredentials
	}

	verifier, err := password.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := u.userRepo.UpdatePasswordVerifier(ctx, user.ID, verifier); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	u.publishPasswordChanged(user.ID)
	return nil
}

func (u *AccountUC) publishPasswordChanged(userID uuid.UUID) {
	event := &models.PasswordChangedEvent{
		UserID:    userID.String(),
		ChangedAt: time.Now(),
	}
	if err := u.accountGW.PublishPasswordChanged(event); err != nil {
		logger.Warn("Failed to publish password changed event",
			logger.String("user_id", event.UserID),
			logger.Err(err))
	}
}
