package memoryRepo

import (
	"context"

	userRepo "homesweethome/database/repository/user"
	"homesweethome/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepo implements userRepo.UserRepository over a Store.
type UserRepo struct{ s *Store }

func NewUserRepo(s *Store) *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if u := r.s.User(id); u != nil {
		return u, nil
	}
	return nil, userRepo.ErrUserNotFound
}

func (r *UserRepo) GetBySession(_ context.Context, id, token string) (*models.User, error) {
	u := r.s.User(id)
	if u == nil || u.Token != token {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

func (r *UserRepo) UpsertProfile(_ context.Context, p userRepo.ProfileUpdate) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[p.ID]
	if !ok {
		u = &models.User{ID: p.ID, Bookings: []primitive.ObjectID{}, Listings: []primitive.ObjectID{}}
		r.s.users[p.ID] = u
	}
	u.Name, u.Avatar, u.Contact, u.Token = p.Name, p.Avatar, p.Contact, p.Token
	return cloneUser(u), nil
}

func (r *UserRepo) RotateToken(_ context.Context, id, token string) (*models.User, error) {
	return r.mutate(id, func(u *models.User) { u.Token = token })
}

func (r *UserRepo) SetWallet(_ context.Context, id, walletID string) (*models.User, error) {
	return r.mutate(id, func(u *models.User) { u.WalletID = walletID })
}

func (r *UserRepo) ClearWallet(_ context.Context, id string) (*models.User, error) {
	return r.mutate(id, func(u *models.User) { u.WalletID = "" })
}

func (r *UserRepo) AddListing(_ context.Context, id string, listingID primitive.ObjectID) error {
	_, err := r.mutate(id, func(u *models.User) { u.Listings = append(u.Listings, listingID) })
	return err
}

func (r *UserRepo) RemoveListing(_ context.Context, id string, listingID primitive.ObjectID) error {
	_, err := r.mutate(id, func(u *models.User) {
		kept := u.Listings[:0]
		for _, l := range u.Listings {
			if l != listingID {
				kept = append(kept, l)
			}
		}
		u.Listings = kept
	})
	return err
}

func (r *UserRepo) mutate(id string, fn func(*models.User)) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	fn(u)
	return cloneUser(u), nil
}
