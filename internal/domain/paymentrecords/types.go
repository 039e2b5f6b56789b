package paymentrecords

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
)

// PaymentRecord is one payment attempt. It stays pending until exactly one of
// its chain references is matched on chain; the record then carries the
// winning chain and transaction signature. Records are never deleted.
type PaymentRecord struct {
	ID            string     `json:"id"`
	Seq           int64      `json:"-"`
	ServiceSlug   string     `json:"service_slug"`
	WalletAddress *string    `json:"wallet_address,omitempty"`
	AmountCents   int64      `json:"amount_cents"`
	Currency      string     `json:"currency"`
	Status        Status     `json:"status"`
	Chain         *string    `json:"chain,omitempty"`
	Signature     *string    `json:"signature,omitempty"`
	Receipt       *string    `json:"receipt,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	ConfirmedAt   *time.Time `json:"confirmed_at,omitempty"`
	ExpiresAt     time.Time  `json:"expires_at"`

	References []ChainReference `json:"references,omitempty"`
}

// ChainReference is the per-chain correlation id issued with a 402 challenge.
type ChainReference struct {
	PaymentID string `json:"-"`
	Chain     string `json:"chain"`
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
}
