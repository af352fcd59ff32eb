package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"homesweethome/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByID retrieves a booking by its unique ID.
func (r *MongoBookingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.bookingColl.FindOne(ctx, bson.M{"_id": id}).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id.Hex(), err)
	}
	return &booking, nil
}

// FindByIDs returns one page of the given bookings and their total count.
func (r *MongoBookingRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID, limit, page int64) ([]models.Booking, int64, error) {
	if len(ids) == 0 {
		return []models.Booking{}, 0, nil
	}

	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": bson.M{"$in": ids}}
	total, err := r.bookingColl.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	if limit < 0 {
		limit = 0
	}
	skip := int64(0)
	if page > 0 {
		skip = (page - 1) * limit
	}
	opts := options.Find().SetSkip(skip).SetLimit(limit)

	cursor, err := r.bookingColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, total, nil
}
