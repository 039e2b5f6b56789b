package accessgrants

import "time"

// AccessGrant records that a wallet may use a priced service, forever
// (ExpiresAt nil) or until an expiry. Keyed by (wallet, service); re-grants
// overwrite.
type AccessGrant struct {
	WalletAddress string     `json:"wallet_address"`
	ServiceSlug   string     `json:"service_slug"`
	PaymentID     *string    `json:"payment_id,omitempty"`
	ServiceType   string     `json:"service_type"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	GrantedAt     time.Time  `json:"granted_at"`
}

// Valid reports whether the grant is usable at t. Expiry is checked at read
// time; expired rows are never deleted.
func (g *AccessGrant) Valid(t time.Time) bool {
	return g.ExpiresAt == nil || g.ExpiresAt.After(t)
}
