package listing

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	listingRepo "homesweethome/database/repository/listing"
	"homesweethome/models"
	"homesweethome/services/auth"
	"homesweethome/services/events"
	"homesweethome/services/geocoder"
	"homesweethome/services/storage"
	"homesweethome/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	maxTitleLength       = 100
	maxDescriptionLength = 5000
)

func validateHostListing(in HostListingInput) error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return utils.InvalidInput("listing title is required")
	case utf8.RuneCountInString(in.Title) > maxTitleLength:
		return utils.InvalidInput("listing title must be under 100 characters")
	case utf8.RuneCountInString(in.Description) > maxDescriptionLength:
		return utils.InvalidInput("listing description must be under 5000 characters")
	case !in.Type.Valid():
		return utils.InvalidInput("listing type must be either an apartment or house")
	case in.Price <= 0:
		return utils.InvalidInput("price must be greater than 0")
	case in.NumOfGuests <= 0:
		return utils.InvalidInput("number of guests must be greater than 0")
	case strings.TrimSpace(in.Address) == "":
		return utils.InvalidInput("address is required")
	}
	return nil
}

// HostListing creates a listing owned by the viewer.
func (s *DefaultListingService) HostListing(ctx context.Context, creds auth.Credentials, in HostListingInput) (*models.Listing, error) {
	viewer, err := s.viewer(ctx, creds)
	if err != nil {
		return nil, err
	}
	if err := validateHostListing(in); err != nil {
		return nil, err
	}

	loc, err := s.Geocoder.Geocode(ctx, in.Address)
	if err != nil && !errors.Is(err, geocoder.ErrNoResult) {
		s.Logger.Warn("Geocoding listing address failed", zap.String("userId", viewer.ID), zap.Error(err))
		return nil, utils.Upstream("failed to geocode address", err)
	}
	if loc == nil || loc.Country == "" || loc.Admin == "" || loc.City == "" {
		return nil, utils.InvalidInput("invalid address input")
	}

	imageURL, err := s.Images.UploadImage(ctx, in.Image)
	if err != nil {
		if errors.Is(err, storage.ErrNotAnImage) {
			return nil, utils.InvalidInput(err.Error())
		}
		s.Logger.Warn("Listing image upload failed", zap.String("userId", viewer.ID), zap.Error(err))
		return nil, utils.Upstream("failed to upload listing image", err)
	}

	listing := &models.Listing{
		ID:            primitive.NewObjectID(),
		Title:         in.Title,
		Description:   in.Description,
		Image:         imageURL,
		Host:          viewer.ID,
		Type:          in.Type,
		Address:       in.Address,
		Country:       loc.Country,
		Admin:         loc.Admin,
		City:          loc.City,
		Bookings:      []primitive.ObjectID{},
		BookingsIndex: models.BookingsIndex{},
		Price:         in.Price,
		NumOfGuests:   in.NumOfGuests,
	}
	if err := s.Listings.Create(ctx, listing); err != nil {
		return nil, utils.StoreFailure("failed to create listing", err)
	}
	if err := s.Users.AddListing(ctx, viewer.ID, listing.ID); err != nil {
		s.Logger.Error("Listing created but not linked to host",
			zap.String("listingId", listing.ID.Hex()),
			zap.String("hostId", viewer.ID),
			zap.Error(err),
		)
		return nil, utils.StoreFailure("failed to link listing to host", err)
	}

	s.Logger.Info("Listing hosted", zap.String("listingId", listing.ID.Hex()), zap.String("hostId", viewer.ID))
	s.publish(ctx, events.ListingHosted, listing)
	return listing, nil
}

// DeleteListing removes a listing. Only its host may do so.
func (s *DefaultListingService) DeleteListing(ctx context.Context, creds auth.Credentials, id string) (*models.Listing, error) {
	viewer, err := s.viewer(ctx, creds)
	if err != nil {
		return nil, err
	}
	listing, err := s.GetListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.Host != viewer.ID {
		return nil, utils.InvalidOperation("viewer can't delete a listing they don't host")
	}

	deleted, err := s.Listings.DeleteByHost(ctx, listing.ID, viewer.ID)
	if err != nil {
		if errors.Is(err, listingRepo.ErrListingNotFound) {
			return nil, utils.NotFound("listing can't be found")
		}
		return nil, utils.StoreFailure("failed to delete listing", err)
	}
	if err := s.Users.RemoveListing(ctx, viewer.ID, deleted.ID); err != nil {
		return nil, utils.StoreFailure("failed to unlink listing from host", err)
	}

	s.Logger.Info("Listing deleted", zap.String("listingId", deleted.ID.Hex()), zap.String("hostId", viewer.ID))
	s.publish(ctx, events.ListingDeleted, deleted)
	return deleted, nil
}

func (s *DefaultListingService) viewer(ctx context.Context, creds auth.Credentials) (*models.User, error) {
	u, err := s.Auth.Authorize(ctx, creds)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, utils.Unauthenticated("viewer cannot be found")
	}
	return u, nil
}

func (s *DefaultListingService) publish(ctx context.Context, subject string, l *models.Listing) {
	if s.Events == nil {
		return
	}
	evt := events.ListingEvent{ListingID: l.ID.Hex(), HostID: l.Host, OccurredAt: time.Now().UTC()}
	if err := s.Events.Publish(ctx, subject, evt); err != nil {
		s.Logger.Warn("Failed to publish listing event", zap.String("subject", subject), zap.Error(err))
	}
}
