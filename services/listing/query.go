package listing

import (
	"context"
	"errors"
	"strings"

	listingRepo "homesweethome/database/repository/listing"
	"homesweethome/models"
	"homesweethome/services/geocoder"
	"homesweethome/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func (s *DefaultListingService) GetListing(ctx context.Context, id string) (*models.Listing, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, utils.InvalidInput("invalid listing id")
	}
	l, err := s.Listings.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, listingRepo.ErrListingNotFound) {
			return nil, utils.NotFound("listing can't be found")
		}
		return nil, utils.StoreFailure("failed to query listing", err)
	}
	return l, nil
}

// ListListings searches listings, optionally narrowed to the region a free
// text location geocodes to.
func (s *DefaultListingService) ListListings(ctx context.Context, in SearchInput) (*models.ListingsPage, error) {
	if appErr := utils.CheckPage(in.Limit, in.Page); appErr != nil {
		return nil, appErr
	}
	q := listingRepo.Query{Limit: in.Limit, Page: in.Page}
	if err := applyFilter(&q, in.Filter); err != nil {
		return nil, err
	}

	var region string
	if strings.TrimSpace(in.Location) != "" {
		loc, err := s.Geocoder.Geocode(ctx, in.Location)
		if err != nil && !errors.Is(err, geocoder.ErrNoResult) {
			s.Logger.Warn("Geocoding search location failed", zap.String("location", in.Location), zap.Error(err))
			return nil, utils.Upstream("failed to geocode location", err)
		}
		if loc == nil || loc.Country == "" {
			return nil, utils.InvalidInput("no country found")
		}
		q.City, q.Admin, q.Country = loc.City, loc.Admin, loc.Country
		region = regionOf(loc)
	}

	result, total, err := s.Listings.Find(ctx, q)
	if err != nil {
		return nil, utils.StoreFailure("failed to query listings", err)
	}
	return &models.ListingsPage{Region: region, Total: total, Result: result}, nil
}

// ListingBookings pages through the bookings made against l.
func (s *DefaultListingService) ListingBookings(ctx context.Context, l *models.Listing, limit, page int64) (*models.BookingsPage, error) {
	if appErr := utils.CheckPage(limit, page); appErr != nil {
		return nil, appErr
	}
	result, total, err := s.Bookings.FindByIDs(ctx, l.Bookings, limit, page)
	if err != nil {
		return nil, utils.StoreFailure("failed to query listing bookings", err)
	}
	return &models.BookingsPage{Total: total, Result: result}, nil
}

func applyFilter(q *listingRepo.Query, f Filter) error {
	one, two := 1, 2
	switch f {
	case "":
	case FilterPriceLowToHigh:
		q.PriceSort = listingRepo.SortPriceAsc
	case FilterPriceHighToLow:
		q.PriceSort = listingRepo.SortPriceDesc
	case FilterNumOfGuests1:
		q.NumOfGuests = &one
	case FilterNumOfGuests2:
		q.NumOfGuests = &two
	case FilterNumOfGuestsGT2:
		q.MinNumOfGuests = &two
	default:
		return utils.InvalidInput("unknown listings filter")
	}
	return nil
}

func regionOf(loc *geocoder.Location) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{loc.City, loc.Admin, loc.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
