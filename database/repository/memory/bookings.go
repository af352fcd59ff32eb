package memoryRepo

import (
	"context"
	"fmt"

	bookingRepo "homesweethome/database/repository/booking"
	"homesweethome/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingRepo implements bookingRepo.BookingRepository over a Store. Commit
// is all-or-nothing unless FailStage is set.
type BookingRepo struct {
	s *Store
	// FailStage makes Commit stop with a PartialCommitError at the named
	// stage after the listing swap has been applied.
	FailStage string
}

func NewBookingRepo(s *Store) *BookingRepo { return &BookingRepo{s: s} }

func (r *BookingRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if b, ok := r.s.bookings[id]; ok {
		c := *b
		return &c, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *BookingRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID, limit, pg int64) ([]models.Booking, int64, error) {
	r.s.mu.RLock()
	var matches []models.Booking
	for _, id := range ids {
		if b, ok := r.s.bookings[id]; ok {
			matches = append(matches, *b)
		}
	}
	r.s.mu.RUnlock()
	return page(matches, limit, pg), int64(len(matches)), nil
}

func (r *BookingRepo) Commit(_ context.Context, c bookingRepo.Commit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	l, ok := r.s.listings[c.Booking.Listing]
	if !ok || l.BookingsVersion != c.ExpectedVersion {
		return bookingRepo.ErrIndexVersionConflict
	}
	host, ok := r.s.users[c.HostID]
	if !ok {
		return fmt.Errorf("host %s not found", c.HostID)
	}
	tenant, ok := r.s.users[c.Booking.Tenant]
	if !ok {
		return fmt.Errorf("tenant %s not found", c.Booking.Tenant)
	}

	l.BookingsIndex = cloneIndex(c.Index)
	l.BookingsVersion++
	l.Bookings = append(l.Bookings, c.Booking.ID)
	if r.FailStage == bookingRepo.StageBooking {
		return &bookingRepo.PartialCommitError{Stage: r.FailStage, Err: fmt.Errorf("injected failure")}
	}

	b := *c.Booking
	r.s.bookings[b.ID] = &b
	host.Income += b.Total
	tenant.Bookings = append(tenant.Bookings, b.ID)
	return nil
}
