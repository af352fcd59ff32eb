package bookingRepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"homesweethome/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap"
)

func newTestRepo(mt *mtest.T) *MongoBookingRepo {
	return &MongoBookingRepo{
		bookingColl: mt.DB.Collection("bookings"),
		userColl:    mt.DB.Collection("users"),
		listingColl: mt.DB.Collection("listings"),
		logger:      zap.NewNop(),
	}
}

func testCommit() Commit {
	return Commit{
		Booking: &models.Booking{
			ID:        primitive.NewObjectID(),
			Listing:   primitive.NewObjectID(),
			Tenant:    "tenant-1",
			CheckIn:   "2024-03-01",
			CheckOut:  "2024-03-02",
			Total:     100,
			CreatedAt: time.Now(),
		},
		HostID:          "host-1",
		Index:           models.BookingsIndex{"2024": {"2": {"1": true, "2": true}}},
		ExpectedVersion: 3,
	}
}

func matched(n int) bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "n", Value: n}, bson.E{Key: "nModified", Value: n})
}

func TestSequentialCommit(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("all stages succeed", func(mt *mtest.T) {
		repo := newTestRepo(mt)
		mt.AddMockResponses(
			matched(1),                    // listing swap
			mtest.CreateSuccessResponse(), // booking insert
			matched(1),                    // host income
			matched(1),                    // tenant bookings
		)

		require.NoError(mt, repo.Commit(context.Background(), testCommit()))
	})

	mt.Run("lost race writes nothing else", func(mt *mtest.T) {
		repo := newTestRepo(mt)
		mt.AddMockResponses(matched(0))

		err := repo.Commit(context.Background(), testCommit())
		assert.ErrorIs(mt, err, ErrIndexVersionConflict)

		var partial *PartialCommitError
		assert.False(mt, errors.As(err, &partial))
	})

	mt.Run("tenant missing is a partial commit", func(mt *mtest.T) {
		repo := newTestRepo(mt)
		mt.AddMockResponses(
			matched(1),
			mtest.CreateSuccessResponse(),
			matched(1),
			matched(0),
		)

		err := repo.Commit(context.Background(), testCommit())
		var partial *PartialCommitError
		require.ErrorAs(mt, err, &partial)
		assert.Equal(mt, StageTenant, partial.Stage)
	})

	mt.Run("booking insert failure is a partial commit", func(mt *mtest.T) {
		repo := newTestRepo(mt)
		mt.AddMockResponses(
			matched(1),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}),
		)

		err := repo.Commit(context.Background(), testCommit())
		var partial *PartialCommitError
		require.ErrorAs(mt, err, &partial)
		assert.Equal(mt, StageBooking, partial.Stage)
	})
}

func TestTransactionalCommit(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("all writes commit together", func(mt *mtest.T) {
		repo := newTestRepo(mt)
		repo.useTransactions = true
		mt.AddMockResponses(
			matched(1),                    // listing swap
			mtest.CreateSuccessResponse(), // booking insert
			matched(1),                    // host income
			matched(1),                    // tenant bookings
			mtest.CreateSuccessResponse(), // commitTransaction
		)

		require.NoError(mt, repo.Commit(context.Background(), testCommit()))
	})

	mt.Run("lost race aborts without a partial commit", func(mt *mtest.T) {
		repo := newTestRepo(mt)
		repo.useTransactions = true
		mt.AddMockResponses(
			matched(0),                    // listing swap
			mtest.CreateSuccessResponse(), // abortTransaction
		)

		err := repo.Commit(context.Background(), testCommit())
		assert.ErrorIs(mt, err, ErrIndexVersionConflict)

		var partial *PartialCommitError
		assert.False(mt, errors.As(err, &partial))
	})
}

func TestFindByIDs(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("empty ids skip the store", func(mt *mtest.T) {
		repo := newTestRepo(mt)
		bookings, total, err := repo.FindByIDs(context.Background(), nil, 10, 1)
		require.NoError(mt, err)
		assert.Empty(mt, bookings)
		assert.Zero(mt, total)
	})

	mt.Run("page of bookings", func(mt *mtest.T) {
		repo := newTestRepo(mt)
		id := primitive.NewObjectID()
		ns := mt.DB.Name() + ".bookings"
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(4)}}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
				{Key: "_id", Value: id},
				{Key: "tenant", Value: "tenant-1"},
				{Key: "checkIn", Value: "2024-03-01"},
				{Key: "checkOut", Value: "2024-03-02"},
				{Key: "total", Value: int64(100)},
			}),
		)

		bookings, total, err := repo.FindByIDs(context.Background(), []primitive.ObjectID{id}, 1, 2)
		require.NoError(mt, err)
		assert.Equal(mt, int64(4), total)
		require.Len(mt, bookings, 1)
		assert.Equal(mt, id, bookings[0].ID)
		assert.Equal(mt, int64(100), bookings[0].Total)
	})
}

func TestGetByIDNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("no documents", func(mt *mtest.T) {
		repo := newTestRepo(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".bookings", mtest.FirstBatch))

		_, err := repo.GetByID(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, ErrBookingNotFound)
	})
}
