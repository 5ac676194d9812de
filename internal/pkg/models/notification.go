package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is the durable record written for every user-targeted event,
// independent of whether a live push succeeded.
type Notification struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Type      string    `json:"type" db:"type"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	Link      string    `json:"link,omitempty" db:"link"`
	Read      bool      `json:"read" db:"read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// UserEvent is the payload consumed from the notify.user subject
type UserEvent struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Type   string `json:"type"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	Link   string `json:"link,omitempty"`
}

// BroadcastEvent is the payload consumed from the notify.broadcast subject.
// Broadcasts are ephemeral operational signals and are never persisted.
type BroadcastEvent struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// PasswordChangedEvent is published after a successful reset or change so
// other subsystems can drop cached credentials.
type PasswordChangedEvent struct {
	UserID    string    `json:"user_id"`
	ChangedAt time.Time `json:"changed_at"`
}
