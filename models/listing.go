package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type ListingType string

const (
	ListingTypeApartment ListingType = "APARTMENT"
	ListingTypeHouse     ListingType = "HOUSE"
)

func (t ListingType) Valid() bool {
	return t == ListingTypeApartment || t == ListingTypeHouse
}

// BookingsIndex maps year -> month -> day -> booked. Months are zero based
// (January is "0"). Absent days are free.
type BookingsIndex map[string]map[string]map[string]bool

// Listing is a rentable property owned by a host.
type Listing struct {
	ID              primitive.ObjectID   `bson:"_id" json:"id"`
	Title           string               `bson:"title" json:"title"`
	Description     string               `bson:"description" json:"description"`
	Image           string               `bson:"image" json:"image"` // Hosted image URL
	Host            string               `bson:"host" json:"host"`   // Owner user id
	Type            ListingType          `bson:"type" json:"type"`
	Address         string               `bson:"address" json:"address"`
	Country         string               `bson:"country" json:"country"`
	Admin           string               `bson:"admin" json:"admin"` // State or province
	City            string               `bson:"city" json:"city"`
	Bookings        []primitive.ObjectID `bson:"bookings" json:"bookings"`
	BookingsIndex   BookingsIndex        `bson:"bookingsIndex" json:"bookingsIndex"`
	BookingsVersion int64                `bson:"bookingsVersion" json:"-"` // Bumped on every index replacement
	Price           int64                `bson:"price" json:"price"`       // Nightly price in cents
	NumOfGuests     int                  `bson:"numOfGuests" json:"numOfGuests"`
}
