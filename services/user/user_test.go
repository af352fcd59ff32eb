package user

import (
	"context"
	"errors"
	"testing"

	memoryRepo "homesweethome/database/repository/memory"
	"homesweethome/models"
	"homesweethome/services/auth"
	"homesweethome/services/payment"
	"homesweethome/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// storeAuthorizer resolves every request to the current state of one user.
type storeAuthorizer struct {
	store *memoryRepo.Store
	id    string
}

func (a storeAuthorizer) Authorize(context.Context, auth.Credentials) (*models.User, error) {
	return a.store.User(a.id), nil
}

type fakePayments struct {
	account      string
	err          error
	disconnected []string
}

func (f *fakePayments) Charge(context.Context, payment.ChargeRequest) (*payment.ChargeResult, error) {
	return nil, errors.New("not used")
}

func (f *fakePayments) ConnectAccount(_ context.Context, code string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.account, nil
}

func (f *fakePayments) DisconnectAccount(_ context.Context, accountID string) error {
	if f.err != nil {
		return f.err
	}
	f.disconnected = append(f.disconnected, accountID)
	return nil
}

func newService(store *memoryRepo.Store, viewerID string, payments *fakePayments) *DefaultUserService {
	return &DefaultUserService{
		Auth:     storeAuthorizer{store: store, id: viewerID},
		Users:    memoryRepo.NewUserRepo(store),
		Listings: memoryRepo.NewListingRepo(store),
		Bookings: memoryRepo.NewBookingRepo(store),
		Payments: payments,
		Logger:   zap.NewNop(),
	}
}

func TestGetUser(t *testing.T) {
	store := memoryRepo.NewStore()
	store.PutUser(models.User{ID: "u1", Name: "Ada"})
	svc := newService(store, "", &fakePayments{})

	u, err := svc.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.Name)

	_, err = svc.GetUser(context.Background(), "missing")
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
}

func TestUserListingsPaginates(t *testing.T) {
	store := memoryRepo.NewStore()
	var ids []primitive.ObjectID
	for i := 0; i < 3; i++ {
		l := models.Listing{ID: primitive.NewObjectID(), Host: "u1", Price: int64(100 * (i + 1))}
		store.PutListing(l)
		ids = append(ids, l.ID)
	}
	u := &models.User{ID: "u1", Listings: ids}
	svc := newService(store, "", &fakePayments{})

	page, err := svc.UserListings(context.Background(), u, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Result, 1)
	assert.Equal(t, ids[2], page.Result[0].ID)
}

func TestUserBookingsEmpty(t *testing.T) {
	svc := newService(memoryRepo.NewStore(), "", &fakePayments{})

	page, err := svc.UserBookings(context.Background(), &models.User{ID: "u1"}, 4, 1)
	require.NoError(t, err)
	assert.Zero(t, page.Total)
	assert.Empty(t, page.Result)
}

func TestUserPagingRejectsNegatives(t *testing.T) {
	svc := newService(memoryRepo.NewStore(), "", &fakePayments{})
	u := &models.User{ID: "u1", Listings: []primitive.ObjectID{primitive.NewObjectID()}}

	_, err := svc.UserBookings(context.Background(), u, -1, 1)
	assert.Equal(t, utils.KindInvalidInput, utils.KindOf(err))

	_, err = svc.UserListings(context.Background(), u, 4, -1)
	assert.Equal(t, utils.KindInvalidInput, utils.KindOf(err))
}

func TestConnectWallet(t *testing.T) {
	store := memoryRepo.NewStore()
	store.PutUser(models.User{ID: "u1", Token: "tok"})
	payments := &fakePayments{account: "acct_1"}
	svc := newService(store, "u1", payments)

	viewer, err := svc.ConnectWallet(context.Background(), auth.Credentials{}, "code")
	require.NoError(t, err)
	assert.Equal(t, "acct_1", viewer.WalletID)
	assert.True(t, viewer.DidRequest)
	assert.True(t, store.User("u1").HasWallet())
}

func TestConnectWalletFailures(t *testing.T) {
	store := memoryRepo.NewStore()
	store.PutUser(models.User{ID: "u1"})

	_, err := newService(store, "", &fakePayments{}).ConnectWallet(context.Background(), auth.Credentials{}, "code")
	assert.Equal(t, utils.KindUnauthenticated, utils.KindOf(err))

	_, err = newService(store, "u1", &fakePayments{}).ConnectWallet(context.Background(), auth.Credentials{}, "")
	assert.Equal(t, utils.KindInvalidInput, utils.KindOf(err))

	failing := &fakePayments{err: errors.New("invalid_grant")}
	_, err = newService(store, "u1", failing).ConnectWallet(context.Background(), auth.Credentials{}, "code")
	assert.Equal(t, utils.KindUpstreamFailure, utils.KindOf(err))
	assert.False(t, store.User("u1").HasWallet())
}

func TestDisconnectWallet(t *testing.T) {
	store := memoryRepo.NewStore()
	store.PutUser(models.User{ID: "u1", WalletID: "acct_1"})
	payments := &fakePayments{}
	svc := newService(store, "u1", payments)

	viewer, err := svc.DisconnectWallet(context.Background(), auth.Credentials{})
	require.NoError(t, err)
	assert.Empty(t, viewer.WalletID)
	assert.Equal(t, []string{"acct_1"}, payments.disconnected)
	assert.False(t, store.User("u1").HasWallet())

	_, err = svc.DisconnectWallet(context.Background(), auth.Credentials{})
	assert.Equal(t, utils.KindInvalidOperation, utils.KindOf(err))
}
