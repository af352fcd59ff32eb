package userRepo

import (
	"context"
	"fmt"
	"time"

	"homesweethome/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpsertProfile sets the profile and token, inserting a fresh user with zero
// income and empty lists when none exists.
func (r *MongoUserRepo) UpsertProfile(ctx context.Context, p ProfileUpdate) (*models.User, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"name":    p.Name,
			"avatar":  p.Avatar,
			"contact": p.Contact,
			"token":   p.Token,
		},
		"$setOnInsert": bson.M{
			"income":   int64(0),
			"bookings": bson.A{},
			"listings": bson.A{},
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var user models.User
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": p.ID}, update, opts).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to upsert user with id %s: %w", p.ID, err)
	}
	return &user, nil
}

// RotateToken replaces the session token of an existing user.
func (r *MongoUserRepo) RotateToken(ctx context.Context, id, token string) (*models.User, error) {
	return r.updateAndReturn(ctx, id, bson.M{"$set": bson.M{"token": token}})
}

// SetWallet links a payout account.
func (r *MongoUserRepo) SetWallet(ctx context.Context, id, walletID string) (*models.User, error) {
	return r.updateAndReturn(ctx, id, bson.M{"$set": bson.M{"walletId": walletID}})
}

// ClearWallet unlinks the payout account.
func (r *MongoUserRepo) ClearWallet(ctx context.Context, id string) (*models.User, error) {
	return r.updateAndReturn(ctx, id, bson.M{"$unset": bson.M{"walletId": ""}})
}

// AddListing records a newly hosted listing.
func (r *MongoUserRepo) AddListing(ctx context.Context, id string, listingID primitive.ObjectID) error {
	return r.updateOne(ctx, id, bson.M{"$push": bson.M{"listings": listingID}})
}

// RemoveListing drops a listing from the host's list.
func (r *MongoUserRepo) RemoveListing(ctx context.Context, id string, listingID primitive.ObjectID) error {
	return r.updateOne(ctx, id, bson.M{"$pull": bson.M{"listings": listingID}})
}

func (r *MongoUserRepo) updateAndReturn(ctx context.Context, id string, update bson.M) (*models.User, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user); err != nil {
		return nil, wrapNotFound(err, id)
	}
	return &user, nil
}

func (r *MongoUserRepo) updateOne(ctx context.Context, id string, update bson.M) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update user with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
