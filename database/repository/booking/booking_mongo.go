package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MongoBookingRepo implements BookingRepository using MongoDB. Commit touches
// the bookings, users and listings collections.
type MongoBookingRepo struct {
	bookingColl     *mongo.Collection
	userColl        *mongo.Collection
	listingColl     *mongo.Collection
	useTransactions bool
	logger          *zap.Logger
}

// NewMongoBookingRepo creates a new instance of BookingRepository using
// MongoDB. useTransactions requires a replica set or sharded cluster.
func NewMongoBookingRepo(db *mongo.Database, useTransactions bool, logger *zap.Logger) BookingRepository {
	repo := &MongoBookingRepo{
		bookingColl:     db.Collection("bookings"),
		userColl:        db.Collection("users"),
		listingColl:     db.Collection("listings"),
		useTransactions: useTransactions,
		logger:          logger,
	}

	if err := repo.ensureIndexes(); err != nil {
		logger.Warn("failed to create booking indexes", zap.Error(err))
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "listing", Value: 1}}},
		{Keys: bson.D{{Key: "tenant", Value: 1}}},
	}

	_, err := r.bookingColl.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
