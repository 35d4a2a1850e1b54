package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MohamadRiza/happytime/internal/model"
)

// PostgresAdminStore is the PostgreSQL-backed AdminStore.
type PostgresAdminStore struct {
	db *sql.DB
}

func NewPostgresAdminStore(db *sql.DB) *PostgresAdminStore {
	return &PostgresAdminStore{db: db}
}

// GetAdminByUsername returns an admin user by username, or model.ErrNotFound.
func (s *PostgresAdminStore) GetAdminByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	var a model.AdminUser
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, role, created_at
		 FROM admin_users WHERE username = $1`, username,
	).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Role, &a.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return &a, nil
}
