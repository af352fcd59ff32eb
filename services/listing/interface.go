package listing

import (
	"context"

	bookingRepo "homesweethome/database/repository/booking"
	listingRepo "homesweethome/database/repository/listing"
	userRepo "homesweethome/database/repository/user"
	"homesweethome/models"
	"homesweethome/services/auth"
	"homesweethome/services/events"
	"homesweethome/services/geocoder"
	"homesweethome/services/storage"

	"go.uber.org/zap"
)

// Filter is the listings query filter.
type Filter string

const (
	FilterPriceLowToHigh Filter = "PRICE_LOW_TO_HIGH"
	FilterPriceHighToLow Filter = "PRICE_HIGH_TO_LOW"
	FilterNumOfGuests1   Filter = "NUM_OF_GUESTS_1"
	FilterNumOfGuests2   Filter = "NUM_OF_GUESTS_2"
	FilterNumOfGuestsGT2 Filter = "NUM_OF_GUESTS_GT_2"
)

// SearchInput drives ListListings. Location is free text and optional.
type SearchInput struct {
	Location string
	Filter   Filter
	Limit    int64
	Page     int64
}

// HostListingInput is a new listing as submitted by its host.
type HostListingInput struct {
	Title       string
	Description string
	Image       string // base64 data URI
	Type        models.ListingType
	Address     string
	Price       int64
	NumOfGuests int
}

type ListingService interface {
	GetListing(ctx context.Context, id string) (*models.Listing, error)
	ListListings(ctx context.Context, in SearchInput) (*models.ListingsPage, error)
	ListingBookings(ctx context.Context, l *models.Listing, limit, page int64) (*models.BookingsPage, error)
	HostListing(ctx context.Context, creds auth.Credentials, in HostListingInput) (*models.Listing, error)
	DeleteListing(ctx context.Context, creds auth.Credentials, id string) (*models.Listing, error)
}

// DefaultListingService is the production implementation.
type DefaultListingService struct {
	Auth     auth.Authorizer
	Listings listingRepo.ListingRepository
	Users    userRepo.UserRepository
	Bookings bookingRepo.BookingRepository
	Geocoder geocoder.Geocoder
	Images   storage.ImageUploader
	Events   events.Publisher
	Logger   *zap.Logger
}
