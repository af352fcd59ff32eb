package listingRepo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func intPtr(v int) *int { return &v }

func TestBuildFilter(t *testing.T) {
	f := buildFilter(Query{City: "Toronto", Admin: "Ontario", Country: "Canada", NumOfGuests: intPtr(2)})
	assert.Equal(t, bson.M{"city": "Toronto", "admin": "Ontario", "country": "Canada", "numOfGuests": 2}, f)

	f = buildFilter(Query{MinNumOfGuests: intPtr(2)})
	assert.Equal(t, bson.M{"numOfGuests": bson.M{"$gt": 2}}, f)

	assert.Empty(t, buildFilter(Query{}))
}

func TestSkip(t *testing.T) {
	assert.Equal(t, int64(0), Skip(10, 0))
	assert.Equal(t, int64(0), Skip(10, 1))
	assert.Equal(t, int64(20), Skip(10, 3))
	assert.Equal(t, int64(0), Skip(-10, 3))
}

func TestMongoListingRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("get by id", func(mt *mtest.T) {
		repo := &MongoListingRepo{coll: mt.Coll}
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+"."+mt.Coll.Name(), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "title", Value: "Cozy loft"},
			{Key: "host", Value: "host-1"},
			{Key: "price", Value: int64(12000)},
			{Key: "bookingsVersion", Value: int64(2)},
			{Key: "bookingsIndex", Value: bson.D{{Key: "2024", Value: bson.D{{Key: "0", Value: bson.D{{Key: "1", Value: true}}}}}}},
		}))

		listing, err := repo.GetByID(context.Background(), id)
		require.NoError(mt, err)
		assert.Equal(mt, "Cozy loft", listing.Title)
		assert.Equal(mt, int64(2), listing.BookingsVersion)
		assert.True(mt, listing.BookingsIndex["2024"]["0"]["1"])
	})

	mt.Run("get by id not found", func(mt *mtest.T) {
		repo := &MongoListingRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+"."+mt.Coll.Name(), mtest.FirstBatch))

		_, err := repo.GetByID(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, ErrListingNotFound)
	})

	mt.Run("find returns page and total", func(mt *mtest.T) {
		repo := &MongoListingRepo{coll: mt.Coll}
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(7)}}),
			mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
				bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "price", Value: int64(100)}},
				bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "price", Value: int64(200)}},
			),
		)

		listings, total, err := repo.Find(context.Background(), Query{Country: "Canada", PriceSort: SortPriceAsc, Limit: 2, Page: 1})
		require.NoError(mt, err)
		assert.Equal(mt, int64(7), total)
		assert.Len(mt, listings, 2)
	})

	mt.Run("delete by someone else", func(mt *mtest.T) {
		repo := &MongoListingRepo{coll: mt.Coll}
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})

		_, err := repo.DeleteByHost(context.Background(), primitive.NewObjectID(), "intruder")
		assert.ErrorIs(mt, err, ErrListingNotFound)
	})
}
