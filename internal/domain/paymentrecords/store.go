package paymentrecords

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrInvalidTransition is returned when a status update would leave the
// pending→confirmed / pending→failed lattice.
var ErrInvalidTransition = errors.New("payment record is not pending")

type Store interface {
	Create(ctx context.Context, record *PaymentRecord) error
	GetByID(ctx context.Context, id string) (*PaymentRecord, error)
	MarkConfirmed(ctx context.Context, id, chain, signature, receipt string) error
	MarkFailed(ctx context.Context, id string) error
	AttachWallet(ctx context.Context, id, wallet string) error
	List(ctx context.Context, limit, offset int) ([]PaymentRecord, error)
	Count(ctx context.Context) (int, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

// Create inserts the record and its chain references in one transaction so a
// challenge is never issued half-written.
func (r *Repository) Create(ctx context.Context, record *PaymentRecord) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO payment_transactions (id, service_slug, wallet_address, amount_cents, currency, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING seq, status, created_at
	`, record.ID, record.ServiceSlug, record.WalletAddress, record.AmountCents, record.Currency, record.ExpiresAt).
		Scan(&record.Seq, &record.Status, &record.CreatedAt)
	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}

	for i := range record.References {
		ref := &record.References[i]
		ref.PaymentID = record.ID
		_, err := tx.Exec(ctx, `
			INSERT INTO payment_references (payment_id, chain, reference, amount)
			VALUES ($1, $2, $3, $4)
		`, ref.PaymentID, ref.Chain, ref.Reference, ref.Amount)
		if err != nil {
			return fmt.Errorf("create payment reference: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*PaymentRecord, error) {
	var p PaymentRecord
	err := r.db.QueryRow(ctx, `
		SELECT id, seq, service_slug, wallet_address, amount_cents, currency, status,
		       chain, signature, receipt, created_at, confirmed_at, expires_at
		FROM payment_transactions WHERE id = $1
	`, id).Scan(
		&p.ID, &p.Seq, &p.ServiceSlug, &p.WalletAddress, &p.AmountCents, &p.Currency, &p.Status,
		&p.Chain, &p.Signature, &p.Receipt, &p.CreatedAt, &p.ConfirmedAt, &p.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT payment_id, chain, reference, amount
		FROM payment_references WHERE payment_id = $1 ORDER BY chain
	`, id)
	if err != nil {
		return nil, fmt.Errorf("get payment references: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ref ChainReference
		if err := rows.Scan(&ref.PaymentID, &ref.Chain, &ref.Reference, &ref.Amount); err != nil {
			return nil, fmt.Errorf("scan payment reference: %w", err)
		}
		p.References = append(p.References, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &p, nil
}

// MarkConfirmed transitions pending→confirmed. The WHERE clause enforces
// monotonicity: a record that is already confirmed or failed is not touched.
func (r *Repository) MarkConfirmed(ctx context.Context, id, chain, signature, receipt string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE payment_transactions
		   SET status = 'confirmed', chain = $2, signature = $3, receipt = $4, confirmed_at = now()
		 WHERE id = $1 AND status = 'pending'
	`, id, chain, signature, receipt)
	if err != nil {
		return fmt.Errorf("confirm payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidTransition
	}
	return nil
}

func (r *Repository) MarkFailed(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE payment_transactions SET status = 'failed' WHERE id = $1 AND status = 'pending'
	`, id)
	if err != nil {
		return fmt.Errorf("fail payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidTransition
	}
	return nil
}

func (r *Repository) AttachWallet(ctx context.Context, id, wallet string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE payment_transactions SET wallet_address = $2 WHERE id = $1 AND wallet_address IS NULL
	`, id, wallet)
	if err != nil {
		return fmt.Errorf("attach wallet: %w", err)
	}
	return nil
}

func (r *Repository) List(ctx context.Context, limit, offset int) ([]PaymentRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, seq, service_slug, wallet_address, amount_cents, currency, status,
		       chain, signature, receipt, created_at, confirmed_at, expires_at
		FROM payment_transactions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var out []PaymentRecord
	for rows.Next() {
		var p PaymentRecord
		if err := rows.Scan(
			&p.ID, &p.Seq, &p.ServiceSlug, &p.WalletAddress, &p.AmountCents, &p.Currency, &p.Status,
			&p.Chain, &p.Signature, &p.Receipt, &p.CreatedAt, &p.ConfirmedAt, &p.ExpiresAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM payment_transactions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count payments: %w", err)
	}
	return n, nil
}
