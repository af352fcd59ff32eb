package models

// ListingsPage is one page of a listing search. Region is set when the
// search was narrowed by location.
type ListingsPage struct {
	Region string
	Total  int64
	Result []Listing
}

// BookingsPage is one page of a user's or listing's bookings.
type BookingsPage struct {
	Total  int64
	Result []Booking
}
