package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store interface {
	GetBySlug(ctx context.Context, slug string) (*Service, error)
	List(ctx context.Context) ([]Service, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

func (r *Repository) GetBySlug(ctx context.Context, slug string) (*Service, error) {
	var s Service
	err := r.db.QueryRow(ctx, `
		SELECT slug, name, price_cents, currency, service_type, duration_days, active, created_at
		FROM payment_config
		WHERE slug = $1 AND active
	`, slug).Scan(&s.Slug, &s.Name, &s.PriceCents, &s.Currency, &s.ServiceType, &s.DurationDays, &s.Active, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return &s, nil
}

func (r *Repository) List(ctx context.Context) ([]Service, error) {
	rows, err := r.db.Query(ctx, `
		SELECT slug, name, price_cents, currency, service_type, duration_days, active, created_at
		FROM payment_config
		WHERE active
		ORDER BY slug
	`)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var out []Service
	for rows.Next() {
		var s Service
		if err := rows.Scan(&s.Slug, &s.Name, &s.PriceCents, &s.Currency, &s.ServiceType, &s.DurationDays, &s.Active, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
