package booking

import (
	"errors"

	bookingRepo "homesweethome/database/repository/booking"
	"homesweethome/utils"
)

// Messages returned to API callers.
const (
	msgUnauthenticated = "viewer cannot be found"
	msgListingNotFound = "listing can't be found"
	msgSelfBooking     = "viewer can't book own listing"
	msgDateOrder       = "check out date can't be before check in date"
	msgConflict        = "selected dates can't overlap dates that have already been booked"
	msgHostNotFound    = "the host can't be found"
	msgHostNoWallet    = "the host is not connected with Stripe"
	msgPaymentFailed   = "failed to charge the payment source"
	msgPartialCommit   = "payment was captured but the booking was not fully recorded"
	msgRaceLost        = "payment was captured but the dates were booked by someone else first"
)

// commitError classifies a failure that happened after the charge went
// through. Every such failure is partial from the caller's point of view.
func commitError(err error, chargeID string) *utils.AppError {
	appErr := &utils.AppError{
		Kind:     utils.KindStoreFailure,
		Message:  msgPartialCommit,
		Err:      err,
		Partial:  true,
		ChargeID: chargeID,
	}
	if errors.Is(err, bookingRepo.ErrIndexVersionConflict) {
		appErr.Kind = utils.KindConflict
		appErr.Message = msgRaceLost
	}
	return appErr
}
