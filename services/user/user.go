package user

import (
	"context"
	"errors"

	userRepo "homesweethome/database/repository/user"
	"homesweethome/models"
	"homesweethome/utils"
)

func (s *DefaultUserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, utils.NotFound("user can't be found")
		}
		return nil, utils.StoreFailure("failed to query user", err)
	}
	return u, nil
}

// UserBookings pages through the bookings the user made as a tenant.
func (s *DefaultUserService) UserBookings(ctx context.Context, u *models.User, limit, page int64) (*models.BookingsPage, error) {
	if appErr := utils.CheckPage(limit, page); appErr != nil {
		return nil, appErr
	}
	result, total, err := s.Bookings.FindByIDs(ctx, u.Bookings, limit, page)
	if err != nil {
		return nil, utils.StoreFailure("failed to query user bookings", err)
	}
	return &models.BookingsPage{Total: total, Result: result}, nil
}

// UserListings pages through the listings the user hosts.
func (s *DefaultUserService) UserListings(ctx context.Context, u *models.User, limit, page int64) (*models.ListingsPage, error) {
	if appErr := utils.CheckPage(limit, page); appErr != nil {
		return nil, appErr
	}
	result, total, err := s.Listings.FindByIDs(ctx, u.Listings, limit, page)
	if err != nil {
		return nil, utils.StoreFailure("failed to query user listings", err)
	}
	return &models.ListingsPage{Total: total, Result: result}, nil
}
