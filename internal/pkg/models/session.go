package models

import "github.com/google/uuid"

// Session maps an opaque token handed to the client as a cookie value to the
// owning user's primary key. Only the key is stored server-side; the full
// identity is re-resolved on every request so role changes apply immediately.
type Session struct {
	Token  string    `json:"token"`
	UserID uuid.UUID `json:"user_id"`
}
