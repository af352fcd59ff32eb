package listingRepo

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

// GetByID retrieves a listing by its unique ID.
func (r *MongoListingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Listing, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var listing models.Listing
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&listing); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to fetch listing with id %s: %w", id.Hex(), err)
	}
	return &listing, nil
}

// Find returns one page of matching listings and the total match count.
func (r *MongoListingRepo) Find(ctx context.Context, q Query) ([]models.Listing, int64, error) {
	return r.findPage(ctx, buildFilter(q), findOptions(q.Limit, q.Page, q.PriceSort))
}

// FindByIDs returns one page of the given listings and their total count.
func (r *MongoListingRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID, limit, page int64) ([]models.Listing, int64, error) {
	if len(ids) == 0 {
		return []models.Listing{}, 0, nil
	}
	filter := bson.M{"_id": bson.M{"$in": ids}}
	return r.findPage(ctx, filter, findOptions(limit, page, SortNone))
}

func (r *MongoListingRepo) findPage(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Listing, int64, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve listings: %w", err)
	}
	defer cursor.Close(ctx)

	listings := []models.Listing{}
	for cursor.Next(ctx) {
		var l models.Listing
		if err := cursor.Decode(&l); err != nil {
			return nil, 0, fmt.Errorf("failed to decode listing: %w", err)
		}
		listings = append(listings, l)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("listing cursor failed: %w", err)
	}
	return listings, total, nil
}
