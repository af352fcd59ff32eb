package userRepo

import (
	"context"
	"errors"

	"homesweethome/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// ProfileUpdate carries the fields refreshed on every identity provider login.
type ProfileUpdate struct {
	ID      string
	Name    string
	Avatar  string
	Contact string
	Token   string
}

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetBySession retrieves the user owning both id and the session token.
	GetBySession(ctx context.Context, id, token string) (*models.User, error)
	// UpsertProfile refreshes profile fields and the session token, creating
	// the user on first login.
	UpsertProfile(ctx context.Context, p ProfileUpdate) (*models.User, error)
	// RotateToken replaces the session token of an existing user.
	RotateToken(ctx context.Context, id, token string) (*models.User, error)
	// SetWallet links a payout account.
	SetWallet(ctx context.Context, id, walletID string) (*models.User, error)
	// ClearWallet unlinks the payout account.
	ClearWallet(ctx context.Context, id string) (*models.User, error)
	// AddListing records a newly hosted listing.
	AddListing(ctx context.Context, id string, listingID primitive.ObjectID) error
	// RemoveListing drops a listing from the host's list.
	RemoveListing(ctx context.Context, id string, listingID primitive.ObjectID) error
}
