package userRepo

import (
	"context"
	"time"

	"homesweethome/models"

	"go.mongodb.org/mongo-driver/bson"
)

// GetByID retrieves a user by its unique ID.
func (r *MongoUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, wrapNotFound(err, id)
	}
	return &user, nil
}

// GetBySession matches on both the id and the current token, so a rotated
// token no longer resolves.
func (r *MongoUserRepo) GetBySession(ctx context.Context, id, token string) (*models.User, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"_id": id, "token": token}).Decode(&user); err != nil {
		return nil, wrapNotFound(err, id)
	}
	return &user, nil
}
