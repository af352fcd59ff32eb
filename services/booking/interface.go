package booking

import (
	"context"
	"time"

	bookingRepo "homesweethome/database/repository/booking"
	listingRepo "homesweethome/database/repository/listing"
	userRepo "homesweethome/database/repository/user"
	"homesweethome/models"
	"homesweethome/services/auth"
	"homesweethome/services/events"
	"homesweethome/services/payment"

	"go.uber.org/zap"
)

// CreateBookingInput is the raw request from the API.
type CreateBookingInput struct {
	ListingID string
	Source    string
	CheckIn   string
	CheckOut  string
}

// BookingService creates bookings.
type BookingService interface {
	CreateBooking(ctx context.Context, creds auth.Credentials, in CreateBookingInput) (*models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Auth     auth.Authorizer
	Listings listingRepo.ListingRepository
	Users    userRepo.UserRepository
	Bookings bookingRepo.BookingRepository
	Payments payment.Provider
	Events   events.Publisher
	Logger   *zap.Logger
	// PaymentTimeout bounds the charge call.
	PaymentTimeout time.Duration
	Now            func() time.Time
}
