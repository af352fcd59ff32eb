package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	bookingRepo "homesweethome/database/repository/booking"
	memoryRepo "homesweethome/database/repository/memory"
	"homesweethome/models"
	"homesweethome/services/auth"
	"homesweethome/services/events"
	"homesweethome/services/payment"
	"homesweethome/utils"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type staticAuthorizer struct{ user *models.User }

func (a staticAuthorizer) Authorize(context.Context, auth.Credentials) (*models.User, error) {
	return a.user, nil
}

type fakePayments struct {
	calls  []payment.ChargeRequest
	ctxErr error
	err    error
}

func (f *fakePayments) Charge(ctx context.Context, req payment.ChargeRequest) (*payment.ChargeResult, error) {
	f.calls = append(f.calls, req)
	f.ctxErr = ctx.Err()
	if f.err != nil {
		return nil, f.err
	}
	return &payment.ChargeResult{ID: "ch_test"}, nil
}

func (f *fakePayments) ConnectAccount(context.Context, string) (string, error) { return "", nil }

func (f *fakePayments) DisconnectAccount(context.Context, string) error { return nil }

type fixture struct {
	svc       *DefaultBookingService
	store     *memoryRepo.Store
	bookings  *memoryRepo.BookingRepo
	payments  *fakePayments
	events    *events.Recorder
	listingID primitive.ObjectID
}

func newFixture(t *testing.T, viewer string) *fixture {
	t.Helper()
	store := memoryRepo.NewStore()
	store.PutUser(models.User{ID: "host", WalletID: "acct_host"})
	store.PutUser(models.User{ID: "tenant", Token: "tok"})

	listingID := primitive.NewObjectID()
	store.PutListing(models.Listing{
		ID:            listingID,
		Title:         "Cozy loft",
		Host:          "host",
		Price:         50,
		NumOfGuests:   2,
		BookingsIndex: models.BookingsIndex{},
	})

	f := &fixture{
		store:     store,
		bookings:  memoryRepo.NewBookingRepo(store),
		payments:  &fakePayments{},
		events:    &events.Recorder{},
		listingID: listingID,
	}
	f.svc = &DefaultBookingService{
		Auth:           staticAuthorizer{user: store.User(viewer)},
		Listings:       memoryRepo.NewListingRepo(store),
		Users:          memoryRepo.NewUserRepo(store),
		Bookings:       f.bookings,
		Payments:       f.payments,
		Events:         f.events,
		Logger:         zap.NewNop(),
		PaymentTimeout: time.Second,
		Now:            func() time.Time { return time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC) },
	}
	return f
}

func (f *fixture) input(checkIn, checkOut string) CreateBookingInput {
	return CreateBookingInput{ListingID: f.listingID.Hex(), Source: "tok_visa", CheckIn: checkIn, CheckOut: checkOut}
}

func TestCreateBookingEndToEnd(t *testing.T) {
	f := newFixture(t, "tenant")

	b, err := f.svc.CreateBooking(context.Background(), auth.Credentials{}, f.input("2024-03-01", "2024-03-02"))
	require.NoError(t, err)

	assert.Equal(t, int64(100), b.Total)
	assert.Equal(t, "2024-03-01", b.CheckIn)
	assert.Equal(t, "2024-03-02", b.CheckOut)
	assert.Equal(t, "ch_test", b.ChargeID)

	require.Len(t, f.payments.calls, 1)
	assert.Equal(t, payment.ChargeRequest{Amount: 100, Source: "tok_visa", Destination: "acct_host"}, f.payments.calls[0])

	assert.Equal(t, int64(100), f.store.User("host").Income)
	assert.Contains(t, f.store.User("tenant").Bookings, b.ID)

	listing := f.store.Listing(f.listingID)
	assert.Contains(t, listing.Bookings, b.ID)
	assert.True(t, listing.BookingsIndex["2024"]["2"]["1"])
	assert.True(t, listing.BookingsIndex["2024"]["2"]["2"])
	assert.Equal(t, int64(1), listing.BookingsVersion)

	published := f.events.Events()
	require.Len(t, published, 1)
	assert.Equal(t, events.BookingCreated, published[0].Subject)
}

func TestCreateBookingSelfBooking(t *testing.T) {
	f := newFixture(t, "host")

	_, err := f.svc.CreateBooking(context.Background(), auth.Credentials{}, f.input("2024-03-01", "2024-03-02"))
	assert.Equal(t, utils.KindInvalidOperation, utils.KindOf(err))
	assert.Empty(t, f.payments.calls)
	assert.Empty(t, f.store.Listing(f.listingID).BookingsIndex)
}

func TestCreateBookingUnauthenticated(t *testing.T) {
	f := newFixture(t, "nobody")

	_, err := f.svc.CreateBooking(context.Background(), auth.Credentials{}, f.input("2024-03-01", "2024-03-02"))
	assert.Equal(t, utils.KindUnauthenticated, utils.KindOf(err))
}

func TestCreateBookingRejectsBadInput(t *testing.T) {
	f := newFixture(t, "tenant")
	ctx := context.Background()

	cases := []struct {
		name string
		in   CreateBookingInput
		kind utils.ErrorKind
	}{
		{"bad listing id", CreateBookingInput{ListingID: "nope", CheckIn: "2024-03-01", CheckOut: "2024-03-02"}, utils.KindInvalidInput},
		{"unknown listing", CreateBookingInput{ListingID: primitive.NewObjectID().Hex(), CheckIn: "2024-03-01", CheckOut: "2024-03-02"}, utils.KindNotFound},
		{"reversed dates", f.input("2024-03-02", "2024-03-01"), utils.KindInvalidInput},
		{"unparseable date", f.input("tomorrow", "2024-03-01"), utils.KindInvalidInput},
	}
	for _, tc := range cases {
		_, err := f.svc.CreateBooking(ctx, auth.Credentials{}, tc.in)
		assert.Equal(t, tc.kind, utils.KindOf(err), tc.name)
	}
	assert.Empty(t, f.payments.calls)
}

func TestCreateBookingConflict(t *testing.T) {
	f := newFixture(t, "tenant")
	ctx := context.Background()

	_, err := f.svc.CreateBooking(ctx, auth.Credentials{}, f.input("2024-03-01", "2024-03-05"))
	require.NoError(t, err)
	before := f.store.Listing(f.listingID).BookingsIndex

	_, err = f.svc.CreateBooking(ctx, auth.Credentials{}, f.input("2024-03-05", "2024-03-06"))
	assert.Equal(t, utils.KindConflict, utils.KindOf(err))
	assert.Len(t, f.payments.calls, 1)
	assert.Equal(t, before, f.store.Listing(f.listingID).BookingsIndex)

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.False(t, appErr.Partial)
}

func TestCreateBookingHostWithoutWallet(t *testing.T) {
	f := newFixture(t, "tenant")
	f.store.PutUser(models.User{ID: "host"})

	_, err := f.svc.CreateBooking(context.Background(), auth.Credentials{}, f.input("2024-03-01", "2024-03-02"))
	assert.Equal(t, utils.KindPreconditionFailed, utils.KindOf(err))
	assert.Empty(t, f.payments.calls)
}

func TestCreateBookingPaymentFailure(t *testing.T) {
	f := newFixture(t, "tenant")
	f.payments.err = errors.New("card_declined")

	_, err := f.svc.CreateBooking(context.Background(), auth.Credentials{}, f.input("2024-03-01", "2024-03-02"))
	assert.Equal(t, utils.KindUpstreamFailure, utils.KindOf(err))
	assert.Zero(t, f.store.BookingCount())
	assert.Empty(t, f.store.Listing(f.listingID).BookingsIndex)
	assert.Zero(t, f.store.User("host").Income)
}

func TestCreateBookingChargeIgnoresCallerCancellation(t *testing.T) {
	f := newFixture(t, "tenant")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.CreateBooking(ctx, auth.Credentials{}, f.input("2024-03-01", "2024-03-02"))
	require.NoError(t, err)
	assert.NoError(t, f.payments.ctxErr)
}

// deadlineBookings records whether the commit ran under a deadline.
type deadlineBookings struct {
	*memoryRepo.BookingRepo
	hasDeadline bool
	ctxErr      error
}

func (d *deadlineBookings) Commit(ctx context.Context, c bookingRepo.Commit) error {
	_, d.hasDeadline = ctx.Deadline()
	d.ctxErr = ctx.Err()
	return d.BookingRepo.Commit(ctx, c)
}

func TestCreateBookingCommitIsBounded(t *testing.T) {
	f := newFixture(t, "tenant")
	rec := &deadlineBookings{BookingRepo: f.bookings}
	f.svc.Bookings = rec

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	cancel()

	_, err := f.svc.CreateBooking(ctx, auth.Credentials{}, f.input("2024-03-01", "2024-03-02"))
	require.NoError(t, err)
	assert.True(t, rec.hasDeadline)
	assert.NoError(t, rec.ctxErr)
	assert.Equal(t, 1, f.store.BookingCount())
}

// racingListings hands out the listing and then lets another booking bump
// its version before the commit.
type racingListings struct {
	*memoryRepo.ListingRepo
	store *memoryRepo.Store
}

func (r racingListings) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Listing, error) {
	l, err := r.ListingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	bumped := *l
	bumped.BookingsVersion++
	r.store.PutListing(bumped)
	return l, nil
}

func TestCreateBookingLostRaceIsPartialConflict(t *testing.T) {
	f := newFixture(t, "tenant")
	f.svc.Listings = racingListings{ListingRepo: memoryRepo.NewListingRepo(f.store), store: f.store}

	_, err := f.svc.CreateBooking(context.Background(), auth.Credentials{}, f.input("2024-03-01", "2024-03-02"))

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, utils.KindConflict, appErr.Kind)
	assert.True(t, appErr.Partial)
	assert.Equal(t, "ch_test", appErr.ChargeID)
	assert.Len(t, f.payments.calls, 1)
	assert.Zero(t, f.store.BookingCount())
}

func TestCreateBookingPartialCommit(t *testing.T) {
	f := newFixture(t, "tenant")
	f.bookings.FailStage = bookingRepo.StageBooking

	_, err := f.svc.CreateBooking(context.Background(), auth.Credentials{}, f.input("2024-03-01", "2024-03-02"))

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, utils.KindStoreFailure, appErr.Kind)
	assert.True(t, appErr.Partial)
	assert.Equal(t, true, appErr.Extensions()["partial"])
	assert.Equal(t, "ch_test", appErr.Extensions()["chargeId"])
	assert.Empty(t, f.events.Events())
}

func TestCreateBookingEventFailureDoesNotFailBooking(t *testing.T) {
	f := newFixture(t, "tenant")
	f.events.Err = errors.New("nats down")

	_, err := f.svc.CreateBooking(context.Background(), auth.Credentials{}, f.input("2024-03-01", "2024-03-01"))
	assert.NoError(t, err)
}

func TestTotalPrice(t *testing.T) {
	d := func(s string) civil.Date {
		v, err := civil.ParseDate(s)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, int64(100), TotalPrice(100, d("2024-01-01"), d("2024-01-01")))
	assert.Equal(t, int64(300), TotalPrice(100, d("2024-01-01"), d("2024-01-03")))
	assert.Equal(t, int64(100), TotalPrice(50, d("2024-03-01"), d("2024-03-02")))
	assert.Equal(t, int64(3*75), TotalPrice(75, d("2024-02-28"), d("2024-03-01")))
}
