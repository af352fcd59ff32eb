package identity

import "context"

// ExternalProfile is the identity returned by the provider after a
// successful code exchange.
type ExternalProfile struct {
	ID     string
	Name   string
	Avatar string
	Email  string
}

// Provider signs users in through a third party consent screen.
type Provider interface {
	// AuthURL is where the client sends the user to grant consent.
	AuthURL() string
	// ExchangeCode trades an authorization code for the user's profile.
	ExchangeCode(ctx context.Context, code string) (*ExternalProfile, error)
}
