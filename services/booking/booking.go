package booking

import (
	"context"
	"errors"
	"time"

	bookingRepo "homesweethome/database/repository/booking"
	listingRepo "homesweethome/database/repository/listing"
	userRepo "homesweethome/database/repository/user"
	"homesweethome/models"
	"homesweethome/services/auth"
	"homesweethome/services/availability"
	"homesweethome/services/events"
	"homesweethome/services/payment"
	"homesweethome/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// commitTimeout bounds the commit and the event that follows it once the
// caller's own deadline has been dropped.
const commitTimeout = 15 * time.Second

// CreateBooking runs the booking workflow. Every step before the charge is
// free of side effects. Once the charge succeeds the booking is committed;
// a failure from then on is returned as a partial AppError carrying the
// charge id.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, creds auth.Credentials, in CreateBookingInput) (*models.Booking, error) {
	tenant, err := s.Auth.Authorize(ctx, creds)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, utils.Unauthenticated(msgUnauthenticated)
	}

	listingID, err := primitive.ObjectIDFromHex(in.ListingID)
	if err != nil {
		return nil, utils.InvalidInput("invalid listing id")
	}
	listing, err := s.Listings.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, listingRepo.ErrListingNotFound) {
			return nil, utils.NotFound(msgListingNotFound)
		}
		return nil, utils.StoreFailure("failed to load listing", err)
	}

	if listing.Host == tenant.ID {
		return nil, utils.InvalidOperation(msgSelfBooking)
	}

	checkIn, err := availability.ParseDate(in.CheckIn)
	if err != nil {
		return nil, utils.InvalidInput("invalid check in date")
	}
	checkOut, err := availability.ParseDate(in.CheckOut)
	if err != nil {
		return nil, utils.InvalidInput("invalid check out date")
	}
	if checkOut.Before(checkIn) {
		return nil, utils.InvalidInput(msgDateOrder)
	}

	index, err := availability.Reserve(listing.BookingsIndex, checkIn, checkOut)
	if err != nil {
		if errors.Is(err, availability.ErrConflict) {
			return nil, &utils.AppError{Kind: utils.KindConflict, Message: msgConflict, Err: err}
		}
		return nil, utils.InvalidInput(err.Error())
	}

	total := TotalPrice(listing.Price, checkIn, checkOut)

	host, err := s.Users.GetByID(ctx, listing.Host)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, &utils.AppError{Kind: utils.KindPreconditionFailed, Message: msgHostNotFound}
		}
		return nil, utils.StoreFailure("failed to load host", err)
	}
	if !host.HasWallet() {
		return nil, &utils.AppError{Kind: utils.KindPreconditionFailed, Message: msgHostNoWallet}
	}

	charge, err := s.charge(ctx, payment.ChargeRequest{
		Amount:      total,
		Source:      in.Source,
		Destination: host.WalletID,
	})
	if err != nil {
		s.Logger.Warn("Booking charge failed",
			zap.String("listingId", listing.ID.Hex()),
			zap.String("tenantId", tenant.ID),
			zap.Error(err),
		)
		return nil, utils.Upstream(msgPaymentFailed, err)
	}

	booking := &models.Booking{
		ID:        primitive.NewObjectID(),
		Listing:   listing.ID,
		Tenant:    tenant.ID,
		CheckIn:   checkIn.String(),
		CheckOut:  checkOut.String(),
		Total:     total,
		ChargeID:  charge.ID,
		CreatedAt: s.now(),
	}

	// The charge cannot be undone, so the commit must not be cut short by
	// the caller going away.
	commitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), commitTimeout)
	defer cancel()
	err = s.Bookings.Commit(commitCtx, bookingRepo.Commit{
		Booking:         booking,
		HostID:          host.ID,
		Index:           index,
		ExpectedVersion: listing.BookingsVersion,
	})
	if err != nil {
		appErr := commitError(err, charge.ID)
		s.Logger.Error("Booking charged but not committed",
			zap.String("bookingId", booking.ID.Hex()),
			zap.String("listingId", listing.ID.Hex()),
			zap.String("tenantId", tenant.ID),
			zap.String("chargeId", charge.ID),
			zap.Int64("total", total),
			zap.String("kind", string(appErr.Kind)),
			zap.Error(err),
		)
		return nil, appErr
	}

	s.Logger.Info("Booking created",
		zap.String("bookingId", booking.ID.Hex()),
		zap.String("listingId", listing.ID.Hex()),
		zap.String("tenantId", tenant.ID),
		zap.Int64("total", total),
	)
	s.publish(commitCtx, booking, host.ID)
	return booking, nil
}

// charge runs the payment detached from caller cancellation and bounded by
// PaymentTimeout.
func (s *DefaultBookingService) charge(ctx context.Context, req payment.ChargeRequest) (*payment.ChargeResult, error) {
	ctx = context.WithoutCancel(ctx)
	if s.PaymentTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.PaymentTimeout)
		defer cancel()
	}
	return s.Payments.Charge(ctx, req)
}

func (s *DefaultBookingService) publish(ctx context.Context, b *models.Booking, hostID string) {
	if s.Events == nil {
		return
	}
	evt := events.BookingCreatedEvent{
		BookingID:  b.ID.Hex(),
		ListingID:  b.Listing.Hex(),
		TenantID:   b.Tenant,
		HostID:     hostID,
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		Total:      b.Total,
		ChargeID:   b.ChargeID,
		OccurredAt: b.CreatedAt,
	}
	if err := s.Events.Publish(ctx, events.BookingCreated, evt); err != nil {
		s.Logger.Warn("Failed to publish booking event", zap.String("bookingId", b.ID.Hex()), zap.Error(err))
	}
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
