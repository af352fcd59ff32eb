package geocoder

import (
	"context"
	"errors"
)

// ErrNoResult means the address matched nothing.
var ErrNoResult = errors.New("address could not be geocoded")

// Location is the administrative breakdown of an address. Any part may be
// empty when the provider does not know it.
type Location struct {
	City    string `json:"city"`
	Admin   string `json:"admin"`
	Country string `json:"country"`
}

// Geocoder resolves free text addresses.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*Location, error)
}

// normalizeCountry maps provider country names onto the names used in stored
// listings.
func normalizeCountry(country string) string {
	if country == "United States of America" {
		return "United States"
	}
	return country
}
