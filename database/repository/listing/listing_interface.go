package listingRepo

import (
	"context"
	"errors"

	"homesweethome/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrListingNotFound is returned when no listing matches the lookup.
var ErrListingNotFound = errors.New("listing not found")

// Price orderings for Query.PriceSort.
const (
	SortNone      = 0
	SortPriceAsc  = 1
	SortPriceDesc = -1
)

// Query narrows a listing search. Zero values mean "no constraint".
type Query struct {
	City    string
	Admin   string
	Country string
	// NumOfGuests matches exactly; MinNumOfGuests is an exclusive lower bound.
	NumOfGuests    *int
	MinNumOfGuests *int
	PriceSort      int
	Limit          int64
	Page           int64
}

// ListingRepository defines methods for listing data access.
type ListingRepository interface {
	// GetByID retrieves a listing by its unique ID.
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Listing, error)
	// Find returns one page of matching listings and the total match count.
	Find(ctx context.Context, q Query) ([]models.Listing, int64, error)
	// FindByIDs returns one page of the given listings and their total count.
	FindByIDs(ctx context.Context, ids []primitive.ObjectID, limit, page int64) ([]models.Listing, int64, error)
	// Create inserts a new listing, assigning its ID when unset.
	Create(ctx context.Context, listing *models.Listing) error
	// DeleteByHost removes the listing only when hostID owns it.
	DeleteByHost(ctx context.Context, id primitive.ObjectID, hostID string) (*models.Listing, error)
}

// Skip converts a 1-based page into a document offset.
func Skip(limit, page int64) int64 {
	if page <= 0 || limit <= 0 {
		return 0
	}
	return (page - 1) * limit
}
