package domain

import "time"

// CreditTransaction is a single debit recorded against a user's balance.
// At most one transaction ever exists per content id; the content id acts as
// the idempotency key at the settlement boundary.
type CreditTransaction struct {
	ID          string
	UserID      string
	ContentID   string
	Amount      int
	Description string
	CreatedAt   time.Time
}
