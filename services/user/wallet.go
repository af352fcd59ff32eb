package user

import (
	"context"

	"homesweethome/models"
	"homesweethome/services/auth"
	"homesweethome/utils"

	"go.uber.org/zap"
)

// ConnectWallet links the viewer to the Stripe Connect account granted by
// code. The account id becomes the viewer's wallet.
func (s *DefaultUserService) ConnectWallet(ctx context.Context, creds auth.Credentials, code string) (*models.Viewer, error) {
	viewer, err := s.viewer(ctx, creds)
	if err != nil {
		return nil, err
	}
	if code == "" {
		return nil, utils.InvalidInput("stripe authorization code is required")
	}

	accountID, err := s.Payments.ConnectAccount(ctx, code)
	if err != nil {
		s.Logger.Warn("Stripe connect failed", zap.String("userId", viewer.ID), zap.Error(err))
		return nil, utils.Upstream("failed to connect with Stripe", err)
	}

	updated, err := s.Users.SetWallet(ctx, viewer.ID, accountID)
	if err != nil {
		return nil, utils.StoreFailure("failed to save wallet", err)
	}
	s.Logger.Info("Wallet connected", zap.String("userId", updated.ID))
	return models.ViewerFromUser(updated), nil
}

// DisconnectWallet revokes the platform's access to the viewer's Stripe
// account and clears the wallet.
func (s *DefaultUserService) DisconnectWallet(ctx context.Context, creds auth.Credentials) (*models.Viewer, error) {
	viewer, err := s.viewer(ctx, creds)
	if err != nil {
		return nil, err
	}
	if !viewer.HasWallet() {
		return nil, utils.InvalidOperation("viewer is not connected with Stripe")
	}

	if err := s.Payments.DisconnectAccount(ctx, viewer.WalletID); err != nil {
		s.Logger.Warn("Stripe disconnect failed", zap.String("userId", viewer.ID), zap.Error(err))
		return nil, utils.Upstream("failed to disconnect from Stripe", err)
	}

	updated, err := s.Users.ClearWallet(ctx, viewer.ID)
	if err != nil {
		return nil, utils.StoreFailure("failed to clear wallet", err)
	}
	s.Logger.Info("Wallet disconnected", zap.String("userId", updated.ID))
	return models.ViewerFromUser(updated), nil
}

func (s *DefaultUserService) viewer(ctx context.Context, creds auth.Credentials) (*models.User, error) {
	u, err := s.Auth.Authorize(ctx, creds)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, utils.Unauthenticated("viewer cannot be found")
	}
	return u, nil
}
