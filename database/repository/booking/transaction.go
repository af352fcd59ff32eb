package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Commit stages, in the order they run without transactions.
const (
	StageListing = "listing"
	StageBooking = "booking"
	StageHost    = "host"
	StageTenant  = "tenant"
)

// Commit persists the booking. With transactions every write is atomic and
// a failure leaves nothing behind. Without them the listing swap runs first,
// so a lost race is detected before anything else is written, and a failure
// in a later stage is returned as *PartialCommitError.
func (r *MongoBookingRepo) Commit(ctx context.Context, c Commit) error {
	if r.useTransactions {
		return r.commitTransactionally(ctx, c)
	}
	return r.commitSequentially(ctx, c)
}

func (r *MongoBookingRepo) commitTransactionally(ctx context.Context, c Commit) error {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	client := r.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if err := r.swapIndex(sc, c); err != nil {
			return err
		}
		if _, err := r.bookingColl.InsertOne(sc, c.Booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		if err := r.creditHost(sc, c); err != nil {
			return err
		}
		return r.appendTenantBooking(sc, c)
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("booking transaction failed: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) commitSequentially(ctx context.Context, c Commit) error {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	if err := r.swapIndex(ctx, c); err != nil {
		return err
	}

	stages := []struct {
		name string
		run  func(context.Context, Commit) error
	}{
		{StageBooking, r.insertBooking},
		{StageHost, r.creditHost},
		{StageTenant, r.appendTenantBooking},
	}
	for _, s := range stages {
		if err := s.run(ctx, c); err != nil {
			r.logger.Error("booking commit stopped part way",
				zap.String("stage", s.name),
				zap.String("bookingId", c.Booking.ID.Hex()),
				zap.Error(err),
			)
			return &PartialCommitError{Stage: s.name, Err: err}
		}
	}
	return nil
}

// swapIndex replaces the availability index only if no other booking has
// replaced it since it was read.
func (r *MongoBookingRepo) swapIndex(ctx context.Context, c Commit) error {
	filter := bson.M{
		"_id":             c.Booking.Listing,
		"bookingsVersion": c.ExpectedVersion,
	}
	// A listing created before versioning has no bookingsVersion field.
	if c.ExpectedVersion == 0 {
		filter = bson.M{
			"_id": c.Booking.Listing,
			"$or": bson.A{
				bson.M{"bookingsVersion": int64(0)},
				bson.M{"bookingsVersion": bson.M{"$exists": false}},
			},
		}
	}
	update := bson.M{
		"$set":  bson.M{"bookingsIndex": c.Index},
		"$inc":  bson.M{"bookingsVersion": 1},
		"$push": bson.M{"bookings": c.Booking.ID},
	}

	res, err := r.listingColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("listing index update failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrIndexVersionConflict
	}
	return nil
}

func (r *MongoBookingRepo) insertBooking(ctx context.Context, c Commit) error {
	if _, err := r.bookingColl.InsertOne(ctx, c.Booking); err != nil {
		return fmt.Errorf("insert booking failed: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) creditHost(ctx context.Context, c Commit) error {
	res, err := r.userColl.UpdateOne(ctx,
		bson.M{"_id": c.HostID},
		bson.M{"$inc": bson.M{"income": c.Booking.Total}},
	)
	if err != nil {
		return fmt.Errorf("host income update failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("host %s not found", c.HostID)
	}
	return nil
}

func (r *MongoBookingRepo) appendTenantBooking(ctx context.Context, c Commit) error {
	res, err := r.userColl.UpdateOne(ctx,
		bson.M{"_id": c.Booking.Tenant},
		bson.M{"$push": bson.M{"bookings": c.Booking.ID}},
	)
	if err != nil {
		return fmt.Errorf("tenant bookings update failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("tenant %s not found", c.Booking.Tenant)
	}
	return nil
}
