package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking is an immutable reservation of a listing for an inclusive date range.
type Booking struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Listing   primitive.ObjectID `bson:"listing" json:"listing"`
	Tenant    string             `bson:"tenant" json:"tenant"`     // Booking user id
	CheckIn   string             `bson:"checkIn" json:"checkIn"`   // YYYY-MM-DD
	CheckOut  string             `bson:"checkOut" json:"checkOut"` // YYYY-MM-DD, inclusive
	Total     int64              `bson:"total" json:"total"`       // Amount charged in cents
	ChargeID  string             `bson:"chargeId,omitempty" json:"chargeId,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
