package listingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoListingRepo implements ListingRepository using MongoDB.
type MongoListingRepo struct {
	coll *mongo.Collection
}

// NewMongoListingRepo creates a new instance of ListingRepository using MongoDB.
func NewMongoListingRepo(db *mongo.Database, logger *zap.Logger) ListingRepository {
	repo := &MongoListingRepo{coll: db.Collection("listings")}

	if err := repo.ensureIndexes(); err != nil {
		logger.Warn("failed to create listing indexes", zap.Error(err))
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// ensureIndexes creates indexes for the location and guest filters.
func (r *MongoListingRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "country", Value: 1}, {Key: "admin", Value: 1}, {Key: "city", Value: 1}}},
		{Keys: bson.D{{Key: "host", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "numOfGuests", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// buildFilter turns a Query into a Mongo filter.
func buildFilter(q Query) bson.M {
	filter := bson.M{}
	if q.City != "" {
		filter["city"] = q.City
	}
	if q.Admin != "" {
		filter["admin"] = q.Admin
	}
	if q.Country != "" {
		filter["country"] = q.Country
	}
	if q.NumOfGuests != nil {
		filter["numOfGuests"] = *q.NumOfGuests
	} else if q.MinNumOfGuests != nil {
		filter["numOfGuests"] = bson.M{"$gt": *q.MinNumOfGuests}
	}
	return filter
}

func findOptions(limit, page int64, priceSort int) *options.FindOptions {
	if limit < 0 {
		limit = 0
	}
	opts := options.Find().SetSkip(Skip(limit, page)).SetLimit(limit)
	if priceSort != SortNone {
		opts.SetSort(bson.D{{Key: "price", Value: priceSort}})
	}
	return opts
}
