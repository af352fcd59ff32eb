package payment

import "context"

// ChargeRequest moves Amount (in cents) from the tenant's Source to the
// host's connected Destination account.
type ChargeRequest struct {
	Amount      int64
	Source      string
	Destination string
}

type ChargeResult struct {
	ID string
}

// Provider is the payment processor used for bookings and host payouts.
type Provider interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
	// ConnectAccount completes the host onboarding flow and returns the
	// connected account id.
	ConnectAccount(ctx context.Context, code string) (string, error)
	DisconnectAccount(ctx context.Context, accountID string) error
}
