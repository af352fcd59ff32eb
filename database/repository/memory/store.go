// Package memoryRepo holds in-process implementations of the repository
// interfaces. Booking commits share one Store so they update users, listings
// and bookings together under a single lock.
package memoryRepo

import (
	"sort"
	"sync"

	"homesweethome/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the shared backing state.
type Store struct {
	mu       sync.RWMutex
	users    map[string]*models.User
	listings map[primitive.ObjectID]*models.Listing
	bookings map[primitive.ObjectID]*models.Booking
	// order keeps listing insertion order for stable pagination.
	order []primitive.ObjectID
}

func NewStore() *Store {
	return &Store{
		users:    map[string]*models.User{},
		listings: map[primitive.ObjectID]*models.Listing{},
		bookings: map[primitive.ObjectID]*models.Booking{},
	}
}

// PutUser seeds or overwrites a user.
func (s *Store) PutUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = cloneUser(&u)
}

// PutListing seeds or overwrites a listing.
func (s *Store) PutListing(l models.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.listings[l.ID]; !ok {
		s.order = append(s.order, l.ID)
	}
	s.listings[l.ID] = cloneListing(&l)
}

// User returns a copy of the stored user, or nil.
func (s *Store) User(id string) *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[id]; ok {
		return cloneUser(u)
	}
	return nil
}

// Listing returns a copy of the stored listing, or nil.
func (s *Store) Listing(id primitive.ObjectID) *models.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if l, ok := s.listings[id]; ok {
		return cloneListing(l)
	}
	return nil
}

// BookingCount reports how many bookings are stored.
func (s *Store) BookingCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bookings)
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Bookings = append([]primitive.ObjectID(nil), u.Bookings...)
	c.Listings = append([]primitive.ObjectID(nil), u.Listings...)
	return &c
}

func cloneListing(l *models.Listing) *models.Listing {
	c := *l
	c.Bookings = append([]primitive.ObjectID(nil), l.Bookings...)
	c.BookingsIndex = cloneIndex(l.BookingsIndex)
	return &c
}

func cloneIndex(idx models.BookingsIndex) models.BookingsIndex {
	out := make(models.BookingsIndex, len(idx))
	for y, months := range idx {
		out[y] = make(map[string]map[string]bool, len(months))
		for m, days := range months {
			out[y][m] = make(map[string]bool, len(days))
			for d, v := range days {
				out[y][m][d] = v
			}
		}
	}
	return out
}

func page[T any](items []T, limit, page int64) []T {
	skip := int64(0)
	if page > 0 {
		skip = (page - 1) * limit
	}
	if skip >= int64(len(items)) {
		return []T{}
	}
	end := int64(len(items))
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}
	return items[skip:end]
}

func sortByPrice(listings []models.Listing, dir int) {
	sort.SliceStable(listings, func(i, j int) bool {
		if dir < 0 {
			return listings[i].Price > listings[j].Price
		}
		return listings[i].Price < listings[j].Price
	})
}
