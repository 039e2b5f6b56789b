package accessgrants

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store interface {
	Upsert(ctx context.Context, grant *AccessGrant) error
	Get(ctx context.Context, wallet, slug string) (*AccessGrant, error)
	List(ctx context.Context, limit, offset int) ([]AccessGrant, error)
	Count(ctx context.Context) (int, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

// Upsert inserts or overwrites the grant for (wallet, service). Concurrent
// grants for the same key converge on the most recent payment id.
func (r *Repository) Upsert(ctx context.Context, grant *AccessGrant) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO user_service_access (wallet_address, service_slug, payment_id, service_type, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (wallet_address, service_slug) DO UPDATE
		SET payment_id = EXCLUDED.payment_id,
		    service_type = EXCLUDED.service_type,
		    expires_at = EXCLUDED.expires_at,
		    granted_at = now()
		RETURNING granted_at
	`, grant.WalletAddress, grant.ServiceSlug, grant.PaymentID, grant.ServiceType, grant.ExpiresAt).
		Scan(&grant.GrantedAt)
	if err != nil {
		return fmt.Errorf("upsert grant: %w", err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, wallet, slug string) (*AccessGrant, error) {
	var g AccessGrant
	err := r.db.QueryRow(ctx, `
		SELECT wallet_address, service_slug, payment_id, service_type, expires_at, granted_at
		FROM user_service_access
		WHERE wallet_address = $1 AND service_slug = $2
	`, wallet, slug).Scan(&g.WalletAddress, &g.ServiceSlug, &g.PaymentID, &g.ServiceType, &g.ExpiresAt, &g.GrantedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get grant: %w", err)
	}
	return &g, nil
}

func (r *Repository) List(ctx context.Context, limit, offset int) ([]AccessGrant, error) {
	rows, err := r.db.Query(ctx, `
		SELECT wallet_address, service_slug, payment_id, service_type, expires_at, granted_at
		FROM user_service_access
		ORDER BY granted_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list grants: %w", err)
	}
	defer rows.Close()

	var out []AccessGrant
	for rows.Next() {
		var g AccessGrant
		if err := rows.Scan(&g.WalletAddress, &g.ServiceSlug, &g.PaymentID, &g.ServiceType, &g.ExpiresAt, &g.GrantedAt); err != nil {
			return nil, fmt.Errorf("scan grant: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM user_service_access`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count grants: %w", err)
	}
	return n, nil
}
