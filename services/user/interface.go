package user

import (
	"context"

	bookingRepo "homesweethome/database/repository/booking"
	listingRepo "homesweethome/database/repository/listing"
	userRepo "homesweethome/database/repository/user"
	"homesweethome/models"
	"homesweethome/services/auth"
	"homesweethome/services/payment"

	"go.uber.org/zap"
)

type UserService interface {
	// Profiles
	GetUser(ctx context.Context, id string) (*models.User, error)
	UserBookings(ctx context.Context, u *models.User, limit, page int64) (*models.BookingsPage, error)
	UserListings(ctx context.Context, u *models.User, limit, page int64) (*models.ListingsPage, error)

	// Payouts
	ConnectWallet(ctx context.Context, creds auth.Credentials, code string) (*models.Viewer, error)
	DisconnectWallet(ctx context.Context, creds auth.Credentials) (*models.Viewer, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Auth     auth.Authorizer
	Users    userRepo.UserRepository
	Listings listingRepo.ListingRepository
	Bookings bookingRepo.BookingRepository
	Payments payment.Provider
	Logger   *zap.Logger
}
