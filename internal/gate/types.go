package gate

import (
	"time"

	"paygate/internal/payments"
)

// Caller is what a request can prove about itself: an optional wallet address
// and/or an optional payment id, both supplied via headers.
type Caller struct {
	WalletAddress string
	PaymentID     string
}

// Challenge is the 402 payload: one option per supported chain, all tied to
// the same payment id so a retry can be correlated without minting new
// references.
type Challenge struct {
	PaymentID string                   `json:"paymentId"`
	Options   []payments.PaymentOption `json:"paymentOptions"`
	ExpiresAt time.Time                `json:"expiresAt"`
}

// Decision is the outcome of an authorization check. Exactly one of
// Authorized or Challenge is meaningful.
type Decision struct {
	Authorized bool
	Challenge  *Challenge
}
