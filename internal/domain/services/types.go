package services

import "time"

const (
	TypeOneTime      = "one_time"
	TypeSubscription = "subscription"
)

// Service is one row of payment_config: a priced resource a wallet can buy
// access to.
type Service struct {
	Slug         string    `json:"slug"`
	Name         string    `json:"name"`
	PriceCents   int64     `json:"price_cents"`
	Currency     string    `json:"currency"`
	ServiceType  string    `json:"service_type"`
	DurationDays *int      `json:"duration_days,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}
