package payments

import "context"

// SessionStatus is the provider's authoritative payment state for a
// checkout session.
type SessionStatus string

const (
	SessionStatusPaid   SessionStatus = "paid"
	SessionStatusUnpaid SessionStatus = "unpaid"
)

// IsPaid reports whether the provider considers the session settled.
func (s SessionStatus) IsPaid() bool {
	return s == SessionStatusPaid
}

// LineItem is the single purchasable row sent to the provider.
type LineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

// CreateSessionParams carries everything needed to open a hosted checkout
// session.
type CreateSessionParams struct {
	CustomerEmail string
	Currency      string
	SuccessURL    string
	CancelURL     string
	LineItem      LineItem
}

// Session is the provider's record of one purchase attempt.
type Session struct {
	ID            string
	PaymentStatus SessionStatus
}

// CheckoutClient is the capability boundary to the payment authority.
// CreateSession is not idempotent on the provider side: a repeated call
// opens a second, distinct session, so callers must never retry it blindly.
// GetSessionStatus is a read and safe to repeat.
type CheckoutClient interface {
	CreateSession(ctx context.Context, params CreateSessionParams) (*Session, error)
	GetSessionStatus(ctx context.Context, sessionID string) (SessionStatus, error)
}
