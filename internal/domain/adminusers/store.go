package adminusers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store interface {
	GetByEmail(ctx context.Context, email string) (*AdminUser, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*AdminUser, error) {
	var u AdminUser
	err := r.db.QueryRow(ctx, `
		SELECT id, email, password_hash, role, created_at
		FROM admin_users WHERE email = $1
	`, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin user: %w", err)
	}
	return &u, nil
}
