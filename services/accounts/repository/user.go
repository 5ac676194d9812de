package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ordesk/ordesk/internal/pkg/models"
	"github.com/ordesk/ordesk/services/accounts"
)

// CreateUser inserts a new user. The caller assigns the ID and timestamps
// before handing the record over; they are stored as given.
func (r *AccountRepo) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, username, email, fullname, role,
			password_verifier, is_active, created_at, updated_at
		) VALUES (:id, :username, :email, :fullname, :role,
			:password_verifier, :is_active, :created_at, :updated_at)
	`
	_, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by ID
func (r *AccountRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.getUserByField(ctx, "id", id)
}

// GetUserByUsername retrieves a user by username
func (r *AccountRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getUserByField(ctx, "username", username)
}

// GetUserByEmail retrieves a user by email
func (r *AccountRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUserByField(ctx, "email", email)
}

// UpdatePasswordVerifier replaces the stored password verifier for a user
func (r *AccountRepo) UpdatePasswordVerifier(ctx context.Context, userID uuid.UUID, verifier string) error {
	query := `
		UPDATE users
		SET password_verifier = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := r.db.ExecContext(ctx, query, verifier, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("failed to update password verifier: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update password verifier: %w", err)
	}
	if rows == 0 {
		return accounts.ErrNotFound
	}

	return nil
}

// getUserByField is a helper function to get a user by a specific field
func (r *AccountRepo) getUserByField(ctx context.Context, field, value string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, username, email, fullname, role, password_verifier,
			is_active, created_at, updated_at
		FROM users WHERE %s = $1
	`, field)

	var user models.User
	err := r.db.GetContext(ctx, &user, query, value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accounts.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
