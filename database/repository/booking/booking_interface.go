package bookingRepo

import (
	"context"
	"errors"
	"fmt"

	"homesweethome/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrBookingNotFound is returned when no booking matches the lookup.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrIndexVersionConflict means another booking replaced the listing's
	// availability index after it was read.
	ErrIndexVersionConflict = errors.New("listing availability changed concurrently")
)

// Commit is everything written when a paid booking is persisted.
type Commit struct {
	Booking *models.Booking
	HostID  string
	// Index replaces the listing's bookingsIndex when its version still
	// equals ExpectedVersion.
	Index           models.BookingsIndex
	ExpectedVersion int64
}

// PartialCommitError reports that some, but not all, commit writes landed.
// Stage names the first write that failed.
type PartialCommitError struct {
	Stage string
	Err   error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("booking partially committed, failed at %s: %v", e.Stage, e.Err)
}

func (e *PartialCommitError) Unwrap() error { return e.Err }

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// GetByID retrieves a booking by its unique ID.
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	// FindByIDs returns one page of the given bookings and their total count.
	FindByIDs(ctx context.Context, ids []primitive.ObjectID, limit, page int64) ([]models.Booking, int64, error)
	// Commit persists a booking together with the host, tenant and listing
	// updates it implies.
	Commit(ctx context.Context, c Commit) error
}
