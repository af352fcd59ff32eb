package listingRepo

import (
	"context"
	"fmt"
	"time"

	"homesweethome/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new listing document with an empty availability index.
func (r *MongoListingRepo) Create(ctx context.Context, listing *models.Listing) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if listing.ID.IsZero() {
		listing.ID = primitive.NewObjectID()
	}
	if listing.BookingsIndex == nil {
		listing.BookingsIndex = models.BookingsIndex{}
	}
	if listing.Bookings == nil {
		listing.Bookings = []primitive.ObjectID{}
	}

	if _, err := r.coll.InsertOne(ctx, listing); err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

// DeleteByHost removes the listing only when hostID owns it.
func (r *MongoListingRepo) DeleteByHost(ctx context.Context, id primitive.ObjectID, hostID string) (*models.Listing, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var listing models.Listing
	err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id, "host": hostID}).Decode(&listing)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to delete listing with id %s: %w", id.Hex(), err)
	}
	return &listing, nil
}
