package booking

import (
	"homesweethome/services/availability"

	"cloud.google.com/go/civil"
)

// TotalPrice bills every day of the inclusive range at the nightly price.
func TotalPrice(pricePerNight int64, checkIn, checkOut civil.Date) int64 {
	return int64(availability.Nights(checkIn, checkOut)) * pricePerNight
}
