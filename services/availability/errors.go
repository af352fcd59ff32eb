package availability

import "errors"

var (
	// ErrConflict means at least one requested day is already booked.
	ErrConflict = errors.New("requested range overlaps an existing booking")
	// ErrInvalidRange means check-out precedes check-in.
	ErrInvalidRange = errors.New("check out date can't be before check in date")
)
