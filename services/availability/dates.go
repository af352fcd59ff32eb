package availability

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// ParseDate accepts a plain YYYY-MM-DD date or an RFC 3339 timestamp, whose
// UTC calendar day is used.
func ParseDate(s string) (civil.Date, error) {
	if d, err := civil.ParseDate(s); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid date %q", s)
	}
	return civil.DateOf(t.UTC()), nil
}

// Nights counts the billable nights of an inclusive range. A same day range
// is one night.
func Nights(checkIn, checkOut civil.Date) int {
	return checkOut.DaysSince(checkIn) + 1
}

func civilMonth(zeroBased int) time.Month {
	return time.Month(zeroBased + 1)
}
