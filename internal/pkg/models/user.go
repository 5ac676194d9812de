package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account in the system. PasswordVerifier holds the salted
// scrypt verifier in "hash.salt" hex form and is never serialized.
type User struct {
	ID               uuid.UUID `json:"id" db:"id"`
	Username         string    `json:"username" db:"username"`
	Email            string    `json:"email" db:"email"`
	FullName         string    `json:"fullname" db:"fullname"`
	Role             string    `json:"role" db:"role"`
	PasswordVerifier string    `json:"-" db:"password_verifier"`
	IsActive         bool      `json:"is_active" db:"is_active"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// LoginRequest represents a request to login with username and password
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest represents an admin-provisioning request for a new account
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	FullName string `json:"fullname"`
	Role     string `json:"role"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest represents a password change for a logged-in user
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}
