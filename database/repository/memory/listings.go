package memoryRepo

import (
	"context"

	listingRepo "homesweethome/database/repository/listing"
	"homesweethome/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListingRepo implements listingRepo.ListingRepository over a Store.
type ListingRepo struct{ s *Store }

func NewListingRepo(s *Store) *ListingRepo { return &ListingRepo{s: s} }

func (r *ListingRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Listing, error) {
	if l := r.s.Listing(id); l != nil {
		return l, nil
	}
	return nil, listingRepo.ErrListingNotFound
}

func (r *ListingRepo) Find(_ context.Context, q listingRepo.Query) ([]models.Listing, int64, error) {
	r.s.mu.RLock()
	var matches []models.Listing
	for _, id := range r.s.order {
		l, ok := r.s.listings[id]
		if !ok || !matchesQuery(l, q) {
			continue
		}
		matches = append(matches, *cloneListing(l))
	}
	r.s.mu.RUnlock()

	if q.PriceSort != listingRepo.SortNone {
		sortByPrice(matches, q.PriceSort)
	}
	return page(matches, q.Limit, q.Page), int64(len(matches)), nil
}

func (r *ListingRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID, limit, pg int64) ([]models.Listing, int64, error) {
	var matches []models.Listing
	for _, id := range ids {
		if l := r.s.Listing(id); l != nil {
			matches = append(matches, *l)
		}
	}
	return page(matches, limit, pg), int64(len(matches)), nil
}

func (r *ListingRepo) Create(_ context.Context, l *models.Listing) error {
	if l.ID.IsZero() {
		l.ID = primitive.NewObjectID()
	}
	if l.BookingsIndex == nil {
		l.BookingsIndex = models.BookingsIndex{}
	}
	r.s.PutListing(*l)
	return nil
}

func (r *ListingRepo) DeleteByHost(_ context.Context, id primitive.ObjectID, hostID string) (*models.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	l, ok := r.s.listings[id]
	if !ok || l.Host != hostID {
		return nil, listingRepo.ErrListingNotFound
	}
	delete(r.s.listings, id)
	for i, o := range r.s.order {
		if o == id {
			r.s.order = append(r.s.order[:i], r.s.order[i+1:]...)
			break
		}
	}
	return l, nil
}

func matchesQuery(l *models.Listing, q listingRepo.Query) bool {
	if q.City != "" && l.City != q.City {
		return false
	}
	if q.Admin != "" && l.Admin != q.Admin {
		return false
	}
	if q.Country != "" && l.Country != q.Country {
		return false
	}
	if q.NumOfGuests != nil && l.NumOfGuests != *q.NumOfGuests {
		return false
	}
	if q.NumOfGuests == nil && q.MinNumOfGuests != nil && l.NumOfGuests <= *q.MinNumOfGuests {
		return false
	}
	return true
}
