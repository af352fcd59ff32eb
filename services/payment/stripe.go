package payment

import (
	"context"
	"fmt"
	"net/http"

	"homesweethome/config"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

// applicationFeePercent is the platform's cut of every booking.
const applicationFeePercent = 5

type chargeAPI interface {
	New(params *stripe.ChargeParams) (*stripe.Charge, error)
}

type oauthAPI interface {
	New(params *stripe.OAuthTokenParams) (*stripe.OAuthToken, error)
	Del(params *stripe.DeauthorizeParams) (*stripe.Deauthorize, error)
}

// StripeProvider implements Provider with Stripe Connect direct charges.
type StripeProvider struct {
	charges  chargeAPI
	oauth    oauthAPI
	clientID string
	logger   *zap.Logger
}

func NewStripeProvider(cfg *config.Config, logger *zap.Logger) *StripeProvider {
	backendConfig := &stripe.BackendConfig{
		HTTPClient:    &http.Client{Timeout: cfg.PaymentTimeout},
		LeveledLogger: logger.Sugar(),
	}
	backends := &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, backendConfig),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, backendConfig),
	}
	sc := client.New(cfg.StripeSecretKey, backends)

	return &StripeProvider{
		charges:  sc.Charges,
		oauth:    sc.OAuth,
		clientID: cfg.StripeClientID,
		logger:   logger,
	}
}

// Charge creates a direct charge on the host's connected account.
func (p *StripeProvider) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	params := &stripe.ChargeParams{
		Amount:               stripe.Int64(req.Amount),
		Currency:             stripe.String(string(stripe.CurrencyUSD)),
		ApplicationFeeAmount: stripe.Int64(ApplicationFee(req.Amount)),
	}
	if err := params.SetSource(req.Source); err != nil {
		return nil, fmt.Errorf("invalid payment source: %w", err)
	}
	params.SetStripeAccount(req.Destination)
	params.Context = ctx

	ch, err := p.charges.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe charge failed: %w", err)
	}
	if ch.Status != stripe.ChargeStatusSucceeded {
		p.logger.Warn("Stripe charge not successful",
			zap.String("chargeId", ch.ID),
			zap.String("status", string(ch.Status)),
		)
		return nil, ErrChargeNotSucceeded
	}
	return &ChargeResult{ID: ch.ID}, nil
}

func (p *StripeProvider) ConnectAccount(ctx context.Context, code string) (string, error) {
	params := &stripe.OAuthTokenParams{
		GrantType: stripe.String("authorization_code"),
		Code:      stripe.String(code),
	}
	params.Context = ctx

	tok, err := p.oauth.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe connect failed: %w", err)
	}
	if tok.StripeUserID == "" {
		return "", fmt.Errorf("stripe connect returned no account id")
	}
	return tok.StripeUserID, nil
}

func (p *StripeProvider) DisconnectAccount(ctx context.Context, accountID string) error {
	params := &stripe.DeauthorizeParams{
		ClientID:     stripe.String(p.clientID),
		StripeUserID: stripe.String(accountID),
	}
	params.Context = ctx

	if _, err := p.oauth.Del(params); err != nil {
		return fmt.Errorf("stripe disconnect failed: %w", err)
	}
	return nil
}

// ApplicationFee is the platform fee for amount, rounded down to the cent.
func ApplicationFee(amount int64) int64 {
	return amount * applicationFeePercent / 100
}
