// Package availability records which calendar days of a listing are booked.
//
// The index is a nested map year -> month -> day, keyed by decimal strings,
// with zero based months to stay compatible with stored documents. Days are
// walked with civil dates so no time of day or zone ever enters the math.
package availability

import (
	"sort"
	"strconv"

	"homesweethome/models"

	"cloud.google.com/go/civil"
)

// Reserve marks every day from checkIn to checkOut inclusive as booked and
// returns the new index. The input index is never modified, so a caller can
// drop the result if a later step fails.
func Reserve(index models.BookingsIndex, checkIn, checkOut civil.Date) (models.BookingsIndex, error) {
	if checkOut.Before(checkIn) {
		return nil, ErrInvalidRange
	}

	next := Clone(index)
	for d := checkIn; !d.After(checkOut); d = d.AddDays(1) {
		y, m, day := keys(d)

		months, ok := next[y]
		if !ok {
			months = map[string]map[string]bool{}
			next[y] = months
		}
		days, ok := months[m]
		if !ok {
			days = map[string]bool{}
			months[m] = days
		}
		if days[day] {
			return nil, ErrConflict
		}
		days[day] = true
	}
	return next, nil
}

// IsBooked reports whether d is marked in the index.
func IsBooked(index models.BookingsIndex, d civil.Date) bool {
	y, m, day := keys(d)
	return index[y][m][day]
}

// IsFree reports whether no day in the inclusive range is booked.
func IsFree(index models.BookingsIndex, checkIn, checkOut civil.Date) bool {
	for d := checkIn; !d.After(checkOut); d = d.AddDays(1) {
		if IsBooked(index, d) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy. A nil index clones to an empty one.
func Clone(index models.BookingsIndex) models.BookingsIndex {
	out := make(models.BookingsIndex, len(index))
	for y, months := range index {
		mc := make(map[string]map[string]bool, len(months))
		for m, days := range months {
			dc := make(map[string]bool, len(days))
			for d, booked := range days {
				dc[d] = booked
			}
			mc[m] = dc
		}
		out[y] = mc
	}
	return out
}

// BookedDays lists every booked day in ascending order. Malformed keys are
// skipped.
func BookedDays(index models.BookingsIndex) []civil.Date {
	var out []civil.Date
	for ys, months := range index {
		y, err := strconv.Atoi(ys)
		if err != nil {
			continue
		}
		for ms, days := range months {
			m, err := strconv.Atoi(ms)
			if err != nil || m < 0 || m > 11 {
				continue
			}
			for ds, booked := range days {
				d, err := strconv.Atoi(ds)
				if err != nil || !booked {
					continue
				}
				date := civil.Date{Year: y, Month: civilMonth(m), Day: d}
				if date.IsValid() {
					out = append(out, date)
				}
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

func keys(d civil.Date) (year, month, day string) {
	return strconv.Itoa(d.Year), strconv.Itoa(int(d.Month) - 1), strconv.Itoa(d.Day)
}
