package subscribers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrAlreadySubscribed = errors.New("email is already subscribed")
	ErrTokenNotFound     = errors.New("confirmation token not found")
)

type Store interface {
	Subscribe(ctx context.Context, email string, name *string, tier, confirmToken string) (*Subscriber, error)
	Confirm(ctx context.Context, token string) (*Subscriber, error)
	UpgradeTier(ctx context.Context, email, tier string) error
	Unsubscribe(ctx context.Context, email string) error
	ListActive(ctx context.Context) ([]Subscriber, error)
	RecordPlanInterest(ctx context.Context, interest *PlanInterest) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

// Subscribe creates a pending subscriber, or refreshes the confirmation token
// for an email that never confirmed. An already active email is a conflict.
func (r *Repository) Subscribe(ctx context.Context, email string, name *string, tier, confirmToken string) (*Subscriber, error) {
	var s Subscriber
	err := r.db.QueryRow(ctx, `
		INSERT INTO newsletter_subscribers (email, name, tier, confirm_token)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE
		SET confirm_token = EXCLUDED.confirm_token,
		    name = COALESCE(EXCLUDED.name, newsletter_subscribers.name),
		    tier = EXCLUDED.tier
		WHERE newsletter_subscribers.status = 'pending'
		RETURNING id, email, name, tier, status, created_at, confirmed_at
	`, email, name, tier, confirmToken).
		Scan(&s.ID, &s.Email, &s.Name, &s.Tier, &s.Status, &s.CreatedAt, &s.ConfirmedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Conflict row exists but is not pending: active or unsubscribed.
			return nil, ErrAlreadySubscribed
		}
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	return &s, nil
}

func (r *Repository) Confirm(ctx context.Context, token string) (*Subscriber, error) {
	var s Subscriber
	err := r.db.QueryRow(ctx, `
		UPDATE newsletter_subscribers
		   SET status = 'active', confirmed_at = now(), confirm_token = NULL
		 WHERE confirm_token = $1 AND status = 'pending'
		RETURNING id, email, name, tier, status, created_at, confirmed_at
	`, token).Scan(&s.ID, &s.Email, &s.Name, &s.Tier, &s.Status, &s.CreatedAt, &s.ConfirmedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("confirm subscriber: %w", err)
	}
	return &s, nil
}

func (r *Repository) UpgradeTier(ctx context.Context, email, tier string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE newsletter_subscribers SET tier = $2 WHERE email = $1 AND status = 'active'
	`, email, tier)
	if err != nil {
		return fmt.Errorf("upgrade tier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repository) Unsubscribe(ctx context.Context, email string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE newsletter_subscribers SET status = 'unsubscribed' WHERE email = $1
	`, email)
	if err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}
	return nil
}

func (r *Repository) ListActive(ctx context.Context) ([]Subscriber, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, email, name, tier, status, created_at, confirmed_at
		FROM newsletter_subscribers
		WHERE status = 'active'
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list active subscribers: %w", err)
	}
	defer rows.Close()

	var out []Subscriber
	for rows.Next() {
		var s Subscriber
		if err := rows.Scan(&s.ID, &s.Email, &s.Name, &s.Tier, &s.Status, &s.CreatedAt, &s.ConfirmedAt); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repository) RecordPlanInterest(ctx context.Context, interest *PlanInterest) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO plan_interest (email, tier, note)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, interest.Email, interest.Tier, interest.Note).Scan(&interest.ID, &interest.CreatedAt)
	if err != nil {
		return fmt.Errorf("record plan interest: %w", err)
	}
	return nil
}
