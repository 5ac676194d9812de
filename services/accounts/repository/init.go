package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/ordesk/ordesk/internal/pkg/models"
)

// AccountRepo implements the Postgres-backed persistence for credential
// records, one-time codes and the durable notification log
type AccountRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewAccountRepo creates a new accounts repository instance
func NewAccountRepo(cfg *models.Config, db *sqlx.DB) *AccountRepo {
	return &AccountRepo{
		cfg: cfg,
		db:  db,
	}
}
