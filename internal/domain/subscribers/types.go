package subscribers

import "time"

const (
	TierFree     = "free"
	TierPremium  = "premium"
	TierLifetime = "lifetime"

	StatusPending      = "pending"
	StatusActive       = "active"
	StatusUnsubscribed = "unsubscribed"
)

type Subscriber struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	Name         *string    `json:"name,omitempty"`
	Tier         string     `json:"tier"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	ConfirmedAt  *time.Time `json:"confirmed_at,omitempty"`
}

// PlanInterest captures a visitor expressing interest in a paid tier before
// it is purchasable.
type PlanInterest struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Tier      string    `json:"tier"`
	Note      *string   `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
